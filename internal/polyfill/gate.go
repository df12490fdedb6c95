package polyfill

import (
	"retarget/internal/ast"
	"retarget/internal/diag"
)

// InsufficientOutputVersion is advisory: a statically-referenced polyfill
// requires a newer implementation baseline than the output target, which
// usually means the symbol will misbehave rather than fail to compile. Off
// by default.
var InsufficientOutputVersion = diag.NewDisabled(
	"RT_INSUFFICIENT_OUTPUT_VERSION",
	"Built-in '%s' not supported in output version %s")

// polyfillCallee is the runtime initializer every injected library calls
// once per symbol it provides.
const polyfillCallee = "$jscomp.polyfill"

// Injector is the external library-injection primitive. EnsureInjected is
// idempotent: injecting an already-injected library is a no-op that still
// yields the insertion-point marker (the last statement belonging to the
// library's injected code).
type Injector interface {
	EnsureInjected(library string) *ast.Node
}

// Gate decides, per detected symbol usage, whether a backing library must
// be retained, then materializes the required libraries once and prunes
// initializations the output target already satisfies. Collection runs
// once per full traversal; Finalize runs once after it.
type Gate struct {
	output   FeatureSet
	reporter diag.Reporter
	injector Injector

	// libraries in first-seen order; seen backs the set test.
	libraries []string
	seen      map[string]bool
}

// NewGate builds a Gate targeting the given output feature set.
func NewGate(output FeatureSet, reporter diag.Reporter, injector Injector) *Gate {
	return &Gate{
		output:   output,
		reporter: reporter,
		injector: injector,
		seen:     make(map[string]bool),
	}
}

// Evaluate is the collection-phase callback, invoked once per usage.
func (g *Gate) Evaluate(u Usage) {
	p := u.Polyfill
	if p.Kind == Static && !g.output.Contains(p.required) {
		g.reporter.Report(diag.Make(InsufficientOutputVersion, u.Node, u.Name, g.output.Version()))
	}

	// The question here is: "does the target platform already have the
	// symbol this polyfill provides?" We approximate it by asking whether
	// the target supports the language version that introduced the symbol.
	if !g.output.Contains(p.native) && p.Library != "" {
		if !g.seen[p.Library] {
			g.seen[p.Library] = true
			g.libraries = append(g.libraries, p.Library)
		}
	}
}

// Finalize materializes every required library in first-seen order, then
// scans the freshly injected statement range and removes $jscomp.polyfill
// initializations whose native version the output target already contains.
// It must run exactly once, after all usages have been evaluated.
func (g *Gate) Finalize() {
	if len(g.libraries) == 0 {
		return
	}
	var last *ast.Node
	for _, library := range g.libraries {
		last = g.injector.EnsureInjected(library)
	}
	if last == nil || last.Parent() == nil {
		return
	}
	parent := last.Parent()
	g.removeSatisfiedPolyfills(parent, last.Next())
	g.reporter.ReportChangeToEnclosingScope(parent)
}

// removeSatisfiedPolyfills drops statements shaped
// $jscomp.polyfill(name, impl, nativeVersion, ...) whose nativeVersion is
// already contained in the output feature set, scanning siblings from the
// start of parent up to (exclusive) runtimeEnd. Functions defined by a
// removed statement are marked deleted for liveness bookkeeping.
func (g *Gate) removeSatisfiedPolyfills(parent, runtimeEnd *ast.Node) {
	node := parent.FirstChild()
	for node != nil && node != runtimeEnd {
		next := node.Next()
		if g.isSatisfiedPolyfillCall(node) {
			parent.RemoveChild(node)
			markFunctionsDeleted(node, g.reporter)
		}
		node = next
	}
}

func (g *Gate) isSatisfiedPolyfillCall(stmt *ast.Node) bool {
	if !stmt.IsExprCall() {
		return false
	}
	call := stmt.FirstChild()
	callee := call.FirstChild()
	if !callee.MatchesQualifiedName(polyfillCallee) || call.ChildCount() < 4 {
		return false
	}
	nativeArg := call.Child(3)
	if nativeArg.Kind != ast.String {
		return false
	}
	native, err := FeatureSetOf(nativeArg.Value)
	if err != nil {
		return false
	}
	return g.output.Contains(native)
}

func markFunctionsDeleted(n *ast.Node, reporter diag.Reporter) {
	n.ForEach(func(d *ast.Node) {
		if d.Kind == ast.Function {
			reporter.ReportFunctionDeleted(d)
		}
	})
}
