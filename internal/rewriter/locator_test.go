package rewriter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retarget/internal/ast"
	"retarget/internal/diag"
	"retarget/internal/message"
	"retarget/internal/rewriter"
)

func processScript(t *testing.T, src string, bundle message.Bundle, alternates map[string]string) (*ast.Node, *diag.Collector) {
	t.Helper()
	root, err := ast.Parse(src)
	require.NoError(t, err)
	collector := &diag.Collector{}
	r := rewriter.New(bundle, false, collector)
	rewriter.NewLocator(r, collector, alternates).Process(root)
	return root, collector
}

func TestLocatorRewritesScript(t *testing.T) {
	src := `(script
  (var (name MSG_HELLO (call
    (getprop (name goog) getMsg)
    (string "Hi {$userName}")
    (objlit (key userName (name user))))))
  (var (name MSG_BYE (string "Bye")))
  (var (name notAMessage (string "left alone")))
  (var (name MSG_FN (function
    (name "")
    (params (name who))
    (block (return (add (string "Hey ") (name who)))))))
  (exprres (call
    (getprop (name goog) getMsgWithFallback)
    (name MSG_HELLO)
    (name MSG_BYE))))`
	bundle := message.MapBundle{
		"MSG_HELLO": msg(t, "MSG_HELLO", "Salut {$userName}"),
		"MSG_FN":    msg(t, "MSG_FN", "Oy {$WHO}"),
	}

	root, collector := processScript(t, src, bundle, nil)

	assert.Empty(t, collector.Diagnostics)
	want := `(script
  (var (name MSG_HELLO (add (string "Salut ") (name user))))
  (var (name MSG_BYE (string "Bye")))
  (var (name notAMessage (string "left alone")))
  (var (name MSG_FN (function
    (name "")
    (params (name who))
    (block (return (add (string "Oy ") (name who)))))))
  (exprres (name MSG_HELLO)))`
	wantTree, err := ast.Parse(want)
	require.NoError(t, err)
	assert.Equal(t, ast.Print(wantTree), ast.Print(root))
}

func TestLocatorAppliesAlternates(t *testing.T) {
	src := `(script
  (var (name MSG_NEW (string "Hello"))))`
	bundle := message.MapBundle{"MSG_OLD": msg(t, "MSG_OLD", "Bonjour")}

	root, collector := processScript(t, src, bundle, map[string]string{"MSG_NEW": "MSG_OLD"})

	assert.Empty(t, collector.Diagnostics)
	got := root.FirstChild().FirstChild().FirstChild()
	assert.Equal(t, "Bonjour", got.Value)
}

func TestLocatorReportsMalformedDefinition(t *testing.T) {
	src := `(script
  (var (name MSG_BAD (objlit (key a (true))))))`

	_, collector := processScript(t, src, message.MapBundle{}, nil)

	require.Len(t, collector.Diagnostics, 1)
	assert.Same(t, rewriter.MessageTreeMalformed, collector.Diagnostics[0].Type)
}

func TestLocatorReportsUndefinedFallbackReference(t *testing.T) {
	src := `(script
  (exprres (call
    (getprop (name goog) getMsgWithFallback)
    (name MSG_MISSING)
    (name MSG_ALSO_MISSING))))`

	root, collector := processScript(t, src, message.MapBundle{}, nil)

	// One diagnostic per undefined reference; the call is left in place.
	assert.Len(t, collector.Diagnostics, 2)
	assert.Equal(t, ast.Call, root.FirstChild().FirstChild().Kind)
}

func TestLocatorExtractsFromConcatenation(t *testing.T) {
	src := `(script
  (var (name MSG_CAT (add (string "Hi ") (string "there")))))`
	bundle := message.MapBundle{"MSG_CAT": msg(t, "MSG_CAT", "Bonjour")}

	root, collector := processScript(t, src, bundle, nil)

	assert.Empty(t, collector.Diagnostics)
	got := root.FirstChild().FirstChild().FirstChild()
	require.Equal(t, ast.String, got.Kind)
	assert.Equal(t, "Bonjour", got.Value)
}

func TestLocatorSkipsUninitializedDeclarations(t *testing.T) {
	src := `(script
  (var (name MSG_DECLARED_ONLY)))`

	_, collector := processScript(t, src, message.MapBundle{}, nil)

	assert.Empty(t, collector.Diagnostics)
}
