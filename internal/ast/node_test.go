package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retarget/internal/ast"
)

func TestCloneIsIndependent(t *testing.T) {
	orig := ast.NewAdd(ast.NewString("Hi "), ast.NewName("user"))
	clone := orig.Clone()

	require.True(t, orig.Equivalent(clone))
	assert.Nil(t, clone.Parent())

	// Mutating the clone must not leak into the original.
	clone.Child(0).Value = "Yo "
	assert.Equal(t, "Hi ", orig.Child(0).Value)

	// And vice versa.
	orig.Child(1).Value = "admin"
	assert.Equal(t, "user", clone.Child(1).Value)
}

func TestEquivalent(t *testing.T) {
	tests := []struct {
		name string
		a    *ast.Node
		b    *ast.Node
		want bool
	}{
		{
			name: "identical adds",
			a:    ast.NewAdd(ast.NewString("a"), ast.NewName("x")),
			b:    ast.NewAdd(ast.NewString("a"), ast.NewName("x")),
			want: true,
		},
		{
			name: "different values",
			a:    ast.NewString("a"),
			b:    ast.NewString("b"),
			want: false,
		},
		{
			name: "different kinds",
			a:    ast.NewString("a"),
			b:    ast.NewName("a"),
			want: false,
		},
		{
			name: "different arity",
			a:    ast.New(ast.Block),
			b:    ast.New(ast.Block, ast.New(ast.Return)),
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Equivalent(tt.b))
		})
	}
}

func TestReplaceWithAndDetach(t *testing.T) {
	oldChild := ast.NewString("old")
	parent := ast.New(ast.Return, oldChild)

	repl := ast.NewString("new")
	oldChild.ReplaceWith(repl)

	assert.Same(t, repl, parent.FirstChild())
	assert.Same(t, parent, repl.Parent())
	assert.Nil(t, oldChild.Parent())

	repl.Detach()
	assert.Equal(t, 0, parent.ChildCount())
	assert.Nil(t, repl.Parent())
}

func TestSiblingOrderAfterRemoval(t *testing.T) {
	a := ast.NewString("a")
	b := ast.NewString("b")
	c := ast.NewString("c")
	script := ast.New(ast.Script, a, b, c)

	assert.Same(t, b, a.Next())
	script.RemoveChild(b)
	assert.Same(t, c, a.Next())
	assert.Nil(t, c.Next())
}

func TestQualifiedName(t *testing.T) {
	tests := []struct {
		name string
		node *ast.Node
		want string
	}{
		{"plain name", ast.NewName("Map"), "Map"},
		{"two levels", ast.NewQualifiedName("goog.getMsg"), "goog.getMsg"},
		{"three levels", ast.NewQualifiedName("$jscomp.polyfill"), "$jscomp.polyfill"},
		{"not a name chain", ast.NewGetProp(ast.NewCall(ast.NewName("f")), "x"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.node.QualifiedName())
		})
	}
	assert.True(t, ast.NewQualifiedName("$jscomp.polyfill").MatchesQualifiedName("$jscomp.polyfill"))
	assert.False(t, ast.NewQualifiedName("$jscomp.other").MatchesQualifiedName("$jscomp.polyfill"))
}

func TestEnclosingScopeRoot(t *testing.T) {
	str := ast.NewString("x")
	ret := ast.New(ast.Return, str)
	block := ast.New(ast.Block, ret)
	fn := ast.New(ast.Function, ast.NewName("f"), ast.New(ast.ParamList), block)
	script := ast.New(ast.Script, ast.New(ast.ExprResult, fn))

	assert.Same(t, fn, str.EnclosingScopeRoot())
	assert.Same(t, script, fn.Parent().EnclosingScopeRoot())

	detached := ast.NewString("loose")
	assert.Nil(t, detached.EnclosingScopeRoot())
}
