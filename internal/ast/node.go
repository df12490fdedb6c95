// Package ast defines the mutable program tree the rewriting passes operate
// on. Nodes form a tagged union: a Kind, an optional string value, and an
// ordered child list. Parsing is out of scope; trees arrive pre-built from
// the frontend or from fixture files (see sexpr.go).
package ast

import "strings"

// Kind identifies the syntactic shape of a node.
type Kind uint8

const (
	// Script is the root of a compilation unit; children are statements.
	Script Kind = iota
	// Var is a variable declaration; children are Name nodes whose first
	// child, if any, is the initializer.
	Var
	// ExprResult wraps an expression used as a statement.
	ExprResult
	// Function has exactly three children: Name, ParamList, Block.
	Function
	// Name is an identifier; Value holds the identifier text.
	Name
	// ParamList holds Name children.
	ParamList
	// Block holds statement children.
	Block
	// Return holds at most one expression child.
	Return
	// String is a string literal; Value holds the text.
	String
	// TemplateLit is a template literal with no substitutions; Value holds
	// the cooked text.
	TemplateLit
	// Add is binary +; exactly two children.
	Add
	// Call has the callee as first child followed by arguments.
	Call
	// GetProp is a property access; Value holds the property name and the
	// single child is the receiver.
	GetProp
	// ObjectLit holds StringKey children.
	ObjectLit
	// StringKey is an object-literal entry; Value holds the key and the
	// single child is the entry value.
	StringKey
	// True and False are boolean literals.
	True
	False
	// Typeof is the typeof operator with a single operand child.
	Typeof
)

var kindNames = map[Kind]string{
	Script:      "script",
	Var:         "var",
	ExprResult:  "exprres",
	Function:    "function",
	Name:        "name",
	ParamList:   "params",
	Block:       "block",
	Return:      "return",
	String:      "string",
	TemplateLit: "template",
	Add:         "add",
	Call:        "call",
	GetProp:     "getprop",
	ObjectLit:   "objlit",
	StringKey:   "key",
	True:        "true",
	False:       "false",
	Typeof:      "typeof",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Node is one vertex of the program tree. The zero value is not useful;
// construct nodes with the builder functions below so parent links stay
// consistent.
type Node struct {
	Kind     Kind
	Value    string
	parent   *Node
	children []*Node
}

// New builds a node of the given kind with the given children attached.
func New(kind Kind, children ...*Node) *Node {
	n := &Node{Kind: kind}
	for _, c := range children {
		n.Append(c)
	}
	return n
}

// NewValue builds a leaf-style node carrying a string value.
func NewValue(kind Kind, value string, children ...*Node) *Node {
	n := New(kind, children...)
	n.Value = value
	return n
}

// NewString builds a string literal node.
func NewString(text string) *Node { return NewValue(String, text) }

// NewName builds an identifier node.
func NewName(name string) *Node { return NewValue(Name, name) }

// NewAdd builds a binary + node.
func NewAdd(left, right *Node) *Node { return New(Add, left, right) }

// NewGetProp builds a property access receiver.prop.
func NewGetProp(receiver *Node, prop string) *Node {
	return NewValue(GetProp, prop, receiver)
}

// NewCall builds a call with the given callee and arguments.
func NewCall(callee *Node, args ...*Node) *Node {
	n := New(Call, callee)
	for _, a := range args {
		n.Append(a)
	}
	return n
}

// NewQualifiedName builds a Name or GetProp chain from a dotted path like
// "$jscomp.polyfill".
func NewQualifiedName(path string) *Node {
	parts := strings.Split(path, ".")
	n := NewName(parts[0])
	for _, p := range parts[1:] {
		n = NewGetProp(n, p)
	}
	return n
}

// Parent returns the node's parent, or nil for a detached node.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the node's child slice. Callers must not mutate it
// directly; use Append, Detach, ReplaceWith, RemoveChild.
func (n *Node) Children() []*Node { return n.children }

// ChildCount returns the number of children.
func (n *Node) ChildCount() int { return len(n.children) }

// Child returns the i-th child, or nil when out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// FirstChild returns the first child or nil.
func (n *Node) FirstChild() *Node { return n.Child(0) }

// LastChild returns the last child or nil.
func (n *Node) LastChild() *Node { return n.Child(len(n.children) - 1) }

// Append attaches c as the last child of n. c must be detached.
func (n *Node) Append(c *Node) {
	if c.parent != nil {
		panic("ast: appending an attached node")
	}
	c.parent = n
	n.children = append(n.children, c)
}

// InsertAt attaches c as the i-th child of n, shifting later children
// right. c must be detached.
func (n *Node) InsertAt(i int, c *Node) {
	if c.parent != nil {
		panic("ast: inserting an attached node")
	}
	if i < 0 || i > len(n.children) {
		panic("ast: insert index out of range")
	}
	c.parent = n
	n.children = append(n.children, nil)
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = c
}

// IndexOf returns the position of c among n's children, or -1.
func (n *Node) IndexOf(c *Node) int {
	for i, ch := range n.children {
		if ch == c {
			return i
		}
	}
	return -1
}

// Next returns the sibling immediately after n, or nil.
func (n *Node) Next() *Node {
	if n.parent == nil {
		return nil
	}
	i := n.parent.IndexOf(n)
	return n.parent.Child(i + 1)
}

// Detach removes n from its parent and returns n.
func (n *Node) Detach() *Node {
	if n.parent == nil {
		return n
	}
	p := n.parent
	i := p.IndexOf(n)
	p.children = append(p.children[:i], p.children[i+1:]...)
	n.parent = nil
	return n
}

// RemoveChild detaches c from n.
func (n *Node) RemoveChild(c *Node) {
	if c.parent != n {
		panic("ast: removing a non-child")
	}
	c.Detach()
}

// ReplaceWith substitutes repl for n in n's parent. repl must be detached
// and n must be attached.
func (n *Node) ReplaceWith(repl *Node) {
	if n.parent == nil {
		panic("ast: replacing a detached node")
	}
	if repl.parent != nil {
		panic("ast: replacement is attached")
	}
	p := n.parent
	i := p.IndexOf(n)
	p.children[i] = repl
	repl.parent = p
	n.parent = nil
}

// Clone returns a deep copy of n's subtree. The copy is detached and shares
// no state with the original.
func (n *Node) Clone() *Node {
	c := &Node{Kind: n.Kind, Value: n.Value}
	for _, ch := range n.children {
		c.Append(ch.Clone())
	}
	return c
}

// Equivalent reports whether two subtrees have identical structure, kinds,
// and values. It ignores node identity and parentage.
func (n *Node) Equivalent(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.Kind != o.Kind || n.Value != o.Value || len(n.children) != len(o.children) {
		return false
	}
	for i, ch := range n.children {
		if !ch.Equivalent(o.children[i]) {
			return false
		}
	}
	return true
}

// QualifiedName renders a Name or GetProp chain as a dotted path, or ""
// when the subtree is not a plain qualified name.
func (n *Node) QualifiedName() string {
	switch n.Kind {
	case Name:
		return n.Value
	case GetProp:
		base := n.FirstChild().QualifiedName()
		if base == "" {
			return ""
		}
		return base + "." + n.Value
	default:
		return ""
	}
}

// MatchesQualifiedName reports whether n is a qualified name equal to path.
func (n *Node) MatchesQualifiedName(path string) bool {
	return n.QualifiedName() == path
}

// IsStringLiteral reports whether n is a string or substitution-free
// template literal.
func (n *Node) IsStringLiteral() bool {
	return n.Kind == String || n.Kind == TemplateLit
}

// IsExprCall reports whether n is an expression statement wrapping a call.
func (n *Node) IsExprCall() bool {
	return n.Kind == ExprResult && n.ChildCount() == 1 && n.FirstChild().Kind == Call
}

// EnclosingScopeRoot walks up to the nearest Function or Script ancestor,
// including n itself. Consumers use the result to invalidate incremental
// analyses after a structural change.
func (n *Node) EnclosingScopeRoot() *Node {
	for cur := n; cur != nil; cur = cur.parent {
		if cur.Kind == Function || cur.Kind == Script {
			return cur
		}
	}
	return nil
}

// ForEach visits n's subtree in pre-order.
func (n *Node) ForEach(visit func(*Node)) {
	visit(n)
	for _, c := range n.children {
		c.ForEach(visit)
	}
}
