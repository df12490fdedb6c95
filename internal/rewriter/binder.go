package rewriter

import (
	"strings"

	"retarget/internal/ast"
	"retarget/internal/message"
	"retarget/rterr"
)

// msgOptions are escaping controls for translated call-form messages,
// parsed from the optional options object literal.
type msgOptions struct {
	// escapeLessThan replaces `<` with `&lt;` in literal segments. `&` is
	// left alone because the translation may contain HTML entities.
	escapeLessThan bool
	// unescapeHtmlEntities replaces escaped entities with their literal
	// characters (overrides escapeLessThan for entities it produces).
	unescapeHtmlEntities bool
}

// bindCall replaces a getMsg-style CALL value with an inlined string
// expression. For input like
//
//	goog.getMsg('Hi {$userName}! Welcome to {$product}.',
//	    {'userName': someUserName, 'product': getProductName()})
//
// the result is
//
//	'Hi ' + someUserName + '! Welcome to ' + getProductName() + '.'
func (r *MessageRewriter) bindCall(msg *message.Message, call *ast.Node) (*ast.Node, error) {
	if err := checkNode(call, ast.Call); err != nil {
		return nil, err
	}
	// `goog.getMsg`
	if err := checkNode(call.Child(0), ast.GetProp); err != nil {
		return nil, err
	}
	if err := checkStringExprNode(call.Child(1)); err != nil {
		return nil, err
	}
	// optional `{key1: value1, key2: value2}` replacements
	objLit := call.Child(2)
	// optional replacement options, e.g. `{html: true}`
	var optionsNode *ast.Node
	if objLit != nil {
		optionsNode = call.Child(3)
	}
	options, err := parseMsgOptions(optionsNode)
	if err != nil {
		return nil, err
	}

	bindings := make(map[string]*ast.Node)
	if objLit != nil {
		if objLit.Kind != ast.ObjectLit {
			return nil, rterr.NewStructural(objLit, "OBJLIT node expected")
		}
		for _, key := range objLit.Children() {
			if key.Kind != ast.StringKey || key.ChildCount() != 1 {
				return nil, rterr.NewStructural(key, "STRING_KEY node with a value expected as OBJLIT key")
			}
			if _, seen := bindings[key.Value]; seen {
				return nil, rterr.NewConsistency(key, "Duplicate placeholder name")
			}
			bindings[key.Value] = key.FirstChild()
		}
	}

	placeholders := msg.Placeholders()
	if len(bindings) == 0 && len(placeholders) > 0 {
		return nil, rterr.NewConsistency(call,
			"Empty placeholder value map for a translated message with placeholders.")
	}
	for _, name := range msg.PlaceholderNames() {
		if _, ok := bindings[name]; !ok {
			return nil, rterr.NewStructuralf(call,
				"Unrecognized message placeholder referenced: %s", name)
		}
	}

	return constructStringExprNode(mergeLiteralParts(msg.Parts), bindings, options), nil
}

// constructStringExprNode folds message parts left-to-right into a single
// expression: STRING nodes for literal segments, cloned binding expressions
// for placeholder segments, combined with left-associated ADD nodes. Zero
// parts yield an empty string literal; a single part yields itself.
func constructStringExprNode(parts []message.Part, bindings map[string]*ast.Node, options msgOptions) *ast.Node {
	if len(parts) == 0 {
		return ast.NewString("")
	}
	var result *ast.Node
	for _, part := range parts {
		partNode := nodeForMsgPart(part, options, bindings)
		if result == nil {
			result = partNode
		} else {
			result = ast.NewAdd(result, partNode)
		}
	}
	return result
}

func nodeForMsgPart(part message.Part, options msgOptions, bindings map[string]*ast.Node) *ast.Node {
	switch p := part.(type) {
	case message.PlaceholderRef:
		// One binding may back several placeholder uses, and the source
		// node may be mutated or discarded after this pass; every
		// occurrence gets its own deep clone.
		return bindings[p.Name].Clone()
	case message.Literal:
		s := p.Text
		if options.escapeLessThan {
			s = strings.ReplaceAll(s, "<", "&lt;")
		}
		if options.unescapeHtmlEntities {
			// Unescape entities that had to be escaped when embedding
			// HTML/XML in data or attributes. `&amp;` must come last to
			// avoid manufacturing new entities from the prior
			// replacements' output; to keep an entity in the result,
			// double-escape it (`&amp;amp;`).
			s = strings.ReplaceAll(s, "&lt;", "<")
			s = strings.ReplaceAll(s, "&gt;", ">")
			s = strings.ReplaceAll(s, "&apos;", "'")
			s = strings.ReplaceAll(s, "&quot;", `"`)
			s = strings.ReplaceAll(s, "&amp;", "&")
		}
		return ast.NewString(s)
	default:
		return ast.NewString("")
	}
}

// parseMsgOptions validates the optional options object literal: every
// entry must be a boolean literal under one of the two recognized keys.
func parseMsgOptions(optionsNode *ast.Node) (msgOptions, error) {
	var options msgOptions
	if optionsNode == nil {
		return options, nil
	}
	if optionsNode.Kind != ast.ObjectLit {
		return options, rterr.NewStructural(optionsNode, "OBJLIT node expected")
	}
	for _, entry := range optionsNode.Children() {
		if entry.Kind != ast.StringKey {
			return options, rterr.NewStructural(entry, "STRING_KEY node expected as OBJLIT key")
		}
		value := entry.FirstChild()
		if value == nil || (value.Kind != ast.True && value.Kind != ast.False) {
			return options, rterr.NewStructural(entry, "Literal true or false expected")
		}
		switch entry.Value {
		case "html":
			options.escapeLessThan = value.Kind == ast.True
		case "unescapeHtmlEntities":
			options.unescapeHtmlEntities = value.Kind == ast.True
		default:
			return options, rterr.NewStructural(entry, "Unexpected option")
		}
	}
	return options, nil
}

// mergeLiteralParts merges consecutive literal parts. Placeholder
// references are never merged across.
func mergeLiteralParts(parts []message.Part) []message.Part {
	var result []message.Part
	for _, part := range parts {
		lit, ok := part.(message.Literal)
		if !ok {
			result = append(result, part)
			continue
		}
		if len(result) > 0 {
			if last, ok := result[len(result)-1].(message.Literal); ok {
				result[len(result)-1] = message.Literal{Text: last.Text + lit.Text}
				continue
			}
		}
		result = append(result, lit)
	}
	return result
}

// checkStringExprNode validates that a node is a string expression: a
// string or template literal, or an ADD tree whose leaves are themselves
// valid string expressions.
func checkStringExprNode(n *ast.Node) error {
	if n == nil {
		return rterr.NewStructural(nil, "Expected a string; found: none")
	}
	switch {
	case n.IsStringLiteral():
		return nil
	case n.Kind == ast.Add:
		if n.ChildCount() != 2 {
			return rterr.NewStructural(n, "Expected a string; found: malformed ADD")
		}
		if err := checkStringExprNode(n.Child(0)); err != nil {
			return err
		}
		return checkStringExprNode(n.Child(1))
	default:
		return rterr.NewStructuralf(n, "Expected a string; found: %s", n.Kind)
	}
}
