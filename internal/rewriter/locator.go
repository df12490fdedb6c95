package rewriter

import (
	"strings"

	"retarget/internal/ast"
	"retarget/internal/diag"
	"retarget/internal/message"
	"retarget/rterr"
)

// getMsgCallee and fallback callee are the qualified names the locator
// recognizes as message-introducing calls.
const (
	getMsgCallee   = "goog.getMsg"
	fallbackCallee = "goog.getMsgWithFallback"
)

// Locator finds message definition sites and fallback call sites in a
// script and drives a MessageRewriter over them. A definition site is a
// `var MSG_* = <value>` declaration where the value has one of the
// recognized shapes.
type Locator struct {
	rewriter *MessageRewriter
	reporter diag.Reporter
	// alternates maps message id to alternate id, as collected from source
	// annotations by the frontend.
	alternates map[string]string
	known      map[string]*message.Message
}

// NewLocator builds a Locator. alternates may be nil.
func NewLocator(r *MessageRewriter, reporter diag.Reporter, alternates map[string]string) *Locator {
	if alternates == nil {
		alternates = map[string]string{}
	}
	return &Locator{
		rewriter:   r,
		reporter:   reporter,
		alternates: alternates,
		known:      make(map[string]*message.Message),
	}
}

// Process locates every message definition and fallback call under root and
// rewrites them. Definitions are collected before any mutation so that a
// fallback call may reference a message declared later in the script.
func (l *Locator) Process(root *ast.Node) {
	type site struct {
		msg  *message.Message
		node *ast.Node
	}
	var definitions []site
	var fallbacks []*ast.Node

	root.ForEach(func(n *ast.Node) {
		switch {
		case n.Kind == ast.Var:
			for _, nameNode := range n.Children() {
				if nameNode.Kind != ast.Name || !strings.HasPrefix(nameNode.Value, "MSG_") {
					continue
				}
				value := nameNode.FirstChild()
				if value == nil {
					continue
				}
				msg, err := l.extractMessage(nameNode.Value, value)
				if err != nil {
					l.reportMalformed(value, err)
					continue
				}
				msg.AlternateID = l.alternates[msg.ID]
				l.known[msg.ID] = msg
				definitions = append(definitions, site{msg: msg, node: value})
			}
		case n.Kind == ast.Call && n.FirstChild() != nil &&
			n.FirstChild().MatchesQualifiedName(fallbackCallee):
			fallbacks = append(fallbacks, n)
		}
	})

	for _, d := range definitions {
		l.rewriter.ReplaceMessage(Definition{Message: d.msg, Node: d.node})
	}
	for _, call := range fallbacks {
		l.processFallback(call)
	}
}

func (l *Locator) processFallback(call *ast.Node) {
	msgA := l.fallbackArg(call, 1)
	msgB := l.fallbackArg(call, 2)
	if msgA == nil || msgB == nil {
		return
	}
	l.rewriter.ReplaceFallback(call, msgA, msgB)
}

func (l *Locator) fallbackArg(call *ast.Node, i int) *message.Message {
	arg := call.Child(i)
	if arg == nil || arg.Kind != ast.Name {
		l.reportMalformed(call, rterr.NewStructural(call,
			"Fallback arguments must be message references"))
		return nil
	}
	msg, ok := l.known[arg.Value]
	if !ok {
		l.reportMalformed(arg, rterr.NewStructuralf(arg,
			"Fallback references undefined message: %s", arg.Value))
		return nil
	}
	return msg
}

// extractMessage parses message metadata out of a definition site's value
// node: literal text (with {$NAME} references), a concatenation of such
// text, a getMsg call whose first argument carries the text, or a function
// whose returned concatenation mixes literals and parameter references.
func (l *Locator) extractMessage(id string, value *ast.Node) (*message.Message, error) {
	var parts []message.Part
	var err error
	switch value.Kind {
	case ast.String, ast.TemplateLit:
		parts, err = message.ParseText(value.Value)
	case ast.Add:
		var text string
		text, err = flattenStringConcat(value)
		if err == nil {
			parts, err = message.ParseText(text)
		}
	case ast.Call:
		callee := value.FirstChild()
		if callee == nil || !callee.MatchesQualifiedName(getMsgCallee) {
			return nil, rterr.NewStructuralf(value, "Message must be initialized using %s", getMsgCallee)
		}
		var text string
		text, err = flattenStringConcat(value.Child(1))
		if err == nil {
			parts, err = message.ParseText(text)
		}
	case ast.Function:
		parts, err = extractFunctionParts(value)
	default:
		return nil, rterr.NewStructuralf(value,
			"Expected FUNCTION, STRING, or ADD node; found: %s", value.Kind)
	}
	if err != nil {
		if _, ok := err.(*rterr.Malformed); !ok {
			err = rterr.NewStructural(value, err.Error())
		}
		return nil, err
	}
	return &message.Message{ID: id, Parts: parts}, nil
}

func flattenStringConcat(n *ast.Node) (string, error) {
	if err := checkStringExprNode(n); err != nil {
		return "", err
	}
	var sb strings.Builder
	var walk func(*ast.Node)
	walk = func(n *ast.Node) {
		if n.Kind == ast.Add {
			walk(n.Child(0))
			walk(n.Child(1))
			return
		}
		sb.WriteString(n.Value)
	}
	walk(n)
	return sb.String(), nil
}

func extractFunctionParts(fn *ast.Node) ([]message.Part, error) {
	if err := checkNode(fn.Child(1), ast.ParamList); err != nil {
		return nil, err
	}
	block := fn.Child(2)
	if err := checkNode(block, ast.Block); err != nil {
		return nil, err
	}
	if block.ChildCount() == 0 {
		return nil, nil
	}
	ret := block.FirstChild()
	if err := checkNode(ret, ast.Return); err != nil {
		return nil, err
	}
	expr := ret.FirstChild()
	if expr == nil {
		return nil, nil
	}

	var parts []message.Part
	var walk func(*ast.Node) error
	walk = func(n *ast.Node) error {
		switch n.Kind {
		case ast.Add:
			if n.ChildCount() != 2 {
				return rterr.NewStructural(n, "Expected a string; found: malformed ADD")
			}
			if err := walk(n.Child(0)); err != nil {
				return err
			}
			return walk(n.Child(1))
		case ast.String, ast.TemplateLit:
			parts = append(parts, message.Literal{Text: n.Value})
			return nil
		case ast.Name:
			parts = append(parts, message.PlaceholderRef{Name: n.Value})
			return nil
		default:
			return rterr.NewStructuralf(n, "Expected a string or placeholder; found: %s", n.Kind)
		}
	}
	if err := walk(expr); err != nil {
		return nil, err
	}
	return parts, nil
}

func (l *Locator) reportMalformed(node *ast.Node, err error) {
	text := err.Error()
	if malformed, ok := err.(*rterr.Malformed); ok {
		text = malformed.Msg
		if n, ok := malformed.Node.(*ast.Node); ok && n != nil {
			node = n
		}
	}
	l.reporter.Report(diag.Make(MessageTreeMalformed, node, text))
}
