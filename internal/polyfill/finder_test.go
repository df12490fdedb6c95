package polyfill_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retarget/internal/ast"
	"retarget/internal/polyfill"
)

func findUsages(t *testing.T, src string) []string {
	t.Helper()
	table, err := polyfill.ParseTable(tableSrc)
	require.NoError(t, err)
	root, err := ast.Parse(src)
	require.NoError(t, err)

	var names []string
	polyfill.NewUsageFinder(table).TraverseExcludingGuarded(root, func(u polyfill.Usage) {
		names = append(names, u.Name)
	})
	return names
}

func TestFinderDetectsUsages(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "global name",
			src:  `(script (exprres (call (name Map))))`,
			want: []string{"Map"},
		},
		{
			name: "qualified static",
			src:  `(script (exprres (call (getprop (name Array) from) (name xs))))`,
			want: []string{"Array.from"},
		},
		{
			name: "prototype method by property name",
			src:  `(script (exprres (call (getprop (name arr) flat))))`,
			want: []string{"Array.prototype.flat"},
		},
		{
			name: "uncataloged symbols",
			src:  `(script (exprres (call (getprop (name console) log) (name WeakRef))))`,
			want: nil,
		},
		{
			name: "each usage reported",
			src: `(script
  (exprres (call (name Map)))
  (exprres (call (getprop (name s) includes) (string "x"))))`,
			want: []string{"Map", "String.prototype.includes"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, findUsages(t, tt.src))
		})
	}
}

func TestFinderSkipsGuardedAndDeclarationPositions(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "typeof guard",
			src:  `(script (exprres (typeof (name Map))))`,
			want: nil,
		},
		{
			name: "typeof guard over property access",
			src:  `(script (exprres (typeof (getprop (name arr) flat))))`,
			want: nil,
		},
		{
			name: "var declaration shadows",
			src:  `(script (var (name Map)))`,
			want: nil,
		},
		{
			name: "parameter name",
			src: `(script (exprres (function
  (name f)
  (params (name Map))
  (block))))`,
			want: nil,
		},
		{
			name: "initializer is still a usage",
			src:  `(script (var (name m (call (name Map)))))`,
			want: []string{"Map"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, findUsages(t, tt.src))
		})
	}
}
