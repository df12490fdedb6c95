// Package diag carries diagnostics and structural-change notifications from
// the rewriting passes to the enclosing driver. Passes never abort on a
// diagnostic; each failed site recovers locally and the driver decides what
// to surface.
package diag

import (
	"fmt"

	"retarget/internal/ast"
)

// Severity classifies a diagnostic type.
type Severity uint8

const (
	Error Severity = iota
	Warning
	// Off marks advisory diagnostics that are not reported unless a
	// consumer opts in.
	Off
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Off:
		return "off"
	default:
		return "unknown"
	}
}

// Type is a diagnostic category with a stable key and a default severity.
// Passes declare their types as package-level variables.
type Type struct {
	Key      string
	Severity Severity
	Format   string
}

// NewError declares an error-severity diagnostic type.
func NewError(key, format string) *Type {
	return &Type{Key: key, Severity: Error, Format: format}
}

// NewDisabled declares a diagnostic type that is off by default.
func NewDisabled(key, format string) *Type {
	return &Type{Key: key, Severity: Off, Format: format}
}

// Diagnostic is one finding attached to a node.
type Diagnostic struct {
	Type *Type
	Node *ast.Node
	Args []any
}

// Make builds a diagnostic of type t at node n.
func Make(t *Type, n *ast.Node, args ...any) Diagnostic {
	return Diagnostic{Type: t, Node: n, Args: args}
}

// Message renders the human-readable text.
func (d Diagnostic) Message() string {
	return fmt.Sprintf(d.Type.Format, d.Args...)
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("[%s] %s: %s", d.Type.Severity, d.Type.Key, d.Message())
}

// Reporter receives findings and change notifications from the passes.
type Reporter interface {
	// Report records one diagnostic.
	Report(d Diagnostic)
	// ReportChangeToEnclosingScope notes that the smallest function or
	// script enclosing n was structurally modified.
	ReportChangeToEnclosingScope(n *ast.Node)
	// ReportFunctionDeleted notes that a function definition was removed
	// from the tree, for downstream liveness bookkeeping.
	ReportFunctionDeleted(fn *ast.Node)
}

// Collector is a Reporter that records everything it receives. Used by the
// CLI driver and by tests.
type Collector struct {
	Diagnostics      []Diagnostic
	ChangedScopes    []*ast.Node
	DeletedFunctions []*ast.Node
}

var _ Reporter = (*Collector)(nil)

func (c *Collector) Report(d Diagnostic) {
	c.Diagnostics = append(c.Diagnostics, d)
}

func (c *Collector) ReportChangeToEnclosingScope(n *ast.Node) {
	if scope := n.EnclosingScopeRoot(); scope != nil {
		c.ChangedScopes = append(c.ChangedScopes, scope)
	}
}

func (c *Collector) ReportFunctionDeleted(fn *ast.Node) {
	c.DeletedFunctions = append(c.DeletedFunctions, fn)
}

// ErrorCount returns the number of collected diagnostics whose type defaults
// to Error severity.
func (c *Collector) ErrorCount() int {
	n := 0
	for _, d := range c.Diagnostics {
		if d.Type.Severity == Error {
			n++
		}
	}
	return n
}
