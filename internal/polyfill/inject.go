package polyfill

import (
	"retarget/internal/ast"
)

// ScriptInjector implements Injector against a script root. Runtime code is
// inserted at the top of the script, before the first original statement,
// because polyfill initializations must run before any use of the symbols
// they provide. Statement templates are cloned on injection so a template
// can be registered once and reused across runs.
type ScriptInjector struct {
	root      *ast.Node
	templates map[string][]*ast.Node
	injected  map[string]*ast.Node
	// next is the insertion index for the next library; everything before
	// it is injected runtime code.
	next int
	last *ast.Node
}

// NewScriptInjector builds an injector targeting root, which must be a
// Script node.
func NewScriptInjector(root *ast.Node) *ScriptInjector {
	return &ScriptInjector{
		root:      root,
		templates: make(map[string][]*ast.Node),
		injected:  make(map[string]*ast.Node),
	}
}

// Register associates statement templates with a library name.
func (in *ScriptInjector) Register(library string, stmts ...*ast.Node) {
	in.templates[library] = stmts
}

// EnsureInjected inserts the library's statements after any previously
// injected code and returns the last statement of the library's injected
// code as the insertion-point marker. Repeat requests return the original
// marker without injecting again. An unregistered library injects nothing
// and yields the marker of the code injected so far, if any.
func (in *ScriptInjector) EnsureInjected(library string) *ast.Node {
	if marker, ok := in.injected[library]; ok {
		return marker
	}
	for _, stmt := range in.templates[library] {
		clone := stmt.Clone()
		in.root.InsertAt(in.next, clone)
		in.next++
		in.last = clone
	}
	in.injected[library] = in.last
	return in.last
}
