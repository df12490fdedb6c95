package rewriter

import (
	"strings"

	"retarget/internal/ast"
	"retarget/internal/message"
	"retarget/rterr"
)

// synthesize constructs a node representing msg's value, or, if possible,
// just modifies orig in place so that it accurately represents the value.
// Dispatch is exhaustive over the recognized value shapes; anything else is
// a Malformed failure with no mutation.
func (r *MessageRewriter) synthesize(msg *message.Message, orig *ast.Node) (*ast.Node, error) {
	switch orig.Kind {
	case ast.Function:
		// The message is a function. Modify the function node.
		if err := r.updateFunctionNode(msg, orig); err != nil {
			return nil, err
		}
		return orig, nil
	case ast.String:
		// The message is a simple string. Modify the string node.
		newText := msg.Flatten()
		if orig.Value != newText {
			orig.Value = newText
			r.reporter.ReportChangeToEnclosingScope(orig)
		}
		return orig, nil
	case ast.Add:
		// The message is a simple string. Create a string node.
		return ast.NewString(msg.Flatten()), nil
	case ast.Call:
		// The message is a function call. Replace it with a string expression.
		return r.bindCall(msg, orig)
	default:
		return nil, rterr.NewStructuralf(orig,
			"Expected FUNCTION, STRING, or ADD node; found: %s", orig.Kind)
	}
}

// updateFunctionNode rebuilds the body of a FUNCTION value so that its
// single return expression spells out msg's parts, resolving placeholder
// references against the function's parameters. The body is replaced only
// when the rebuilt block is not tree-equivalent to the old one.
//
// The tree looks like:
//
//	function
//	 |-- name
//	 |-- params
//	 |   |-- name <arg1>
//	 |    -- name <arg2>
//	  -- block
//	     |
//	      -- return
//	          |
//	           -- add
//	              |-- string foo
//	               -- name <arg1>
func (r *MessageRewriter) updateFunctionNode(msg *message.Message, fn *ast.Node) error {
	if err := checkNode(fn, ast.Function); err != nil {
		return err
	}
	nameNode := fn.Child(0)
	if err := checkNode(nameNode, ast.Name); err != nil {
		return err
	}
	paramList := fn.Child(1)
	if err := checkNode(paramList, ast.ParamList); err != nil {
		return err
	}
	oldBlock := fn.Child(2)
	if err := checkNode(oldBlock, ast.Block); err != nil {
		return err
	}

	valueNode, err := constructAddOrStringNode(msg.Parts, paramList)
	if err != nil {
		return err
	}
	newBlock := ast.New(ast.Block, ast.New(ast.Return, valueNode))

	if !newBlock.Equivalent(oldBlock) {
		oldBlock.ReplaceWith(newBlock)
		r.reporter.ReportChangeToEnclosingScope(newBlock)
	}
	return nil
}

// constructAddOrStringNode builds the return expression for a FUNCTION
// value: STRING leaves for literal parts and NAME leaves for placeholder
// references, combined with ADD nodes. Zero parts yield an empty string.
//
// Placeholder references match parameter names case-insensitively, because
// translation tooling uppercases placeholder names while function arguments
// keep whatever case the source used.
func constructAddOrStringNode(parts []message.Part, paramList *ast.Node) (*ast.Node, error) {
	if len(parts) == 0 {
		return ast.NewString(""), nil
	}

	var partNode *ast.Node
	switch part := parts[0].(type) {
	case message.PlaceholderRef:
		for _, param := range paramList.Children() {
			if param.Kind != ast.Name {
				continue
			}
			if strings.EqualFold(param.Value, part.Name) {
				partNode = ast.NewName(param.Value)
			}
		}
		if partNode == nil {
			return nil, rterr.NewStructuralf(paramList,
				"Unrecognized message placeholder referenced: %s", part.Name)
		}
	case message.Literal:
		partNode = ast.NewString(part.Text)
	}

	if len(parts) == 1 {
		return partNode, nil
	}
	rest, err := constructAddOrStringNode(parts[1:], paramList)
	if err != nil {
		return nil, err
	}
	return ast.NewAdd(partNode, rest), nil
}

// checkNode asserts the expected kind of a shape being validated.
func checkNode(n *ast.Node, kind ast.Kind) error {
	if n == nil {
		return rterr.NewStructuralf(nil, "Expected %s node; found none", kind)
	}
	if n.Kind != kind {
		return rterr.NewStructuralf(n, "Expected %s node; found %s", kind, n.Kind)
	}
	return nil
}
