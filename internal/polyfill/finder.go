package polyfill

import (
	"retarget/internal/ast"
)

// Usage is one detected, non-guarded use of a cataloged symbol.
type Usage struct {
	// Name is the full symbol name from the catalog, which for a
	// prototype-method match differs from the text at the use site.
	Name     string
	Node     *ast.Node
	Polyfill *Polyfill
}

// UsageFinder locates uses of cataloged symbols in a program tree.
type UsageFinder struct {
	table *Table
}

// NewUsageFinder builds a finder over the given catalog.
func NewUsageFinder(table *Table) *UsageFinder {
	return &UsageFinder{table: table}
}

// TraverseExcludingGuarded walks root and invokes visit once per detected
// usage. Usages under a typeof operand are existence guards, not real uses,
// and are skipped.
func (f *UsageFinder) TraverseExcludingGuarded(root *ast.Node, visit func(Usage)) {
	f.traverse(root, visit)
}

func (f *UsageFinder) traverse(n *ast.Node, visit func(Usage)) {
	if n.Kind == ast.Typeof {
		return
	}
	switch n.Kind {
	case ast.Name:
		if referencesGlobal(n) {
			if p, ok := f.table.Static(n.Value); ok {
				visit(Usage{Name: p.Name, Node: n, Polyfill: p})
			}
		}
	case ast.GetProp:
		if qname := n.QualifiedName(); qname != "" {
			if p, ok := f.table.Static(qname); ok {
				visit(Usage{Name: p.Name, Node: n, Polyfill: p})
				return
			}
		}
		// The receiver's type is unknown, so a property access matches
		// every prototype polyfill with that method name.
		for _, p := range f.table.Methods(n.Value) {
			visit(Usage{Name: p.Name, Node: n, Polyfill: p})
		}
	}
	for _, c := range n.Children() {
		f.traverse(c, visit)
	}
}

// referencesGlobal reports whether a Name node can be a reference to a
// global symbol: declaration positions (var names, parameters, function
// names, object keys) do not count.
func referencesGlobal(n *ast.Node) bool {
	p := n.Parent()
	if p == nil {
		return true
	}
	switch p.Kind {
	case ast.Var, ast.ParamList:
		return false
	case ast.Function:
		return p.FirstChild() != n
	default:
		return true
	}
}
