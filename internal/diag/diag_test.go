package diag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retarget/internal/ast"
	"retarget/internal/diag"
)

func TestDiagnosticRendering(t *testing.T) {
	typ := diag.NewError("RT_TEST", "thing %s broke at %d")
	d := diag.Make(typ, ast.NewName("x"), "widget", 7)

	assert.Equal(t, "thing widget broke at 7", d.Message())
	assert.Equal(t, "[error] RT_TEST: thing widget broke at 7", d.String())
}

func TestSeverityDefaults(t *testing.T) {
	assert.Equal(t, diag.Error, diag.NewError("RT_A", "x").Severity)
	assert.Equal(t, diag.Off, diag.NewDisabled("RT_B", "x").Severity)
	assert.Equal(t, "off", diag.Off.String())
}

func TestCollector(t *testing.T) {
	errType := diag.NewError("RT_ERR", "boom")
	offType := diag.NewDisabled("RT_OFF", "meh")

	str := ast.NewString("x")
	ret := ast.New(ast.Return, str)
	block := ast.New(ast.Block, ret)
	fn := ast.New(ast.Function, ast.NewName("f"), ast.New(ast.ParamList), block)
	ast.New(ast.Script, ast.New(ast.ExprResult, fn))

	c := &diag.Collector{}
	c.Report(diag.Make(errType, str))
	c.Report(diag.Make(offType, str))
	c.ReportChangeToEnclosingScope(str)
	c.ReportFunctionDeleted(fn)

	require.Len(t, c.Diagnostics, 2)
	assert.Equal(t, 1, c.ErrorCount())

	// The change is attributed to the nearest function scope, not the leaf.
	require.Len(t, c.ChangedScopes, 1)
	assert.Same(t, fn, c.ChangedScopes[0])

	require.Len(t, c.DeletedFunctions, 1)
	assert.Same(t, fn, c.DeletedFunctions[0])
}
