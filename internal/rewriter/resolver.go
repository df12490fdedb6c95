package rewriter

import (
	"errors"

	"retarget/internal/ast"
	"retarget/internal/diag"
	"retarget/internal/message"
	"retarget/rterr"
)

// Definition is one located message definition site: the parsed message
// metadata and the original value node, supplied by a locator that already
// validated the defining pattern.
type Definition struct {
	Message *message.Message
	Node    *ast.Node
}

// lookupMessage resolves msg against the bundle. The primary id wins when
// present. Otherwise the alternate id is tried; an alternate is usable only
// when its placeholder set equals the original's exactly, else the mismatch
// is reported at ref and the alternate is discarded.
func (r *MessageRewriter) lookupMessage(ref *ast.Node, msg *message.Message) *message.Message {
	if translated, ok := r.bundle.Get(msg.ID); ok {
		return translated
	}
	if msg.AlternateID == "" {
		return nil
	}
	alternate, ok := r.bundle.Get(msg.AlternateID)
	if !ok {
		return nil
	}
	if !msg.SamePlaceholders(alternate) {
		r.reporter.Report(diag.Make(InvalidAlternateMessagePlaceholders, ref,
			msg.AlternateID, alternate.PlaceholderNames(),
			msg.ID, msg.PlaceholderNames()))
		return nil
	}
	return alternate
}

// ReplaceMessage resolves a translation for one definition site and splices
// a synthesized value subtree in its place. On any failure the site's
// subtree is left unmodified and exactly one diagnostic is emitted.
func (r *MessageRewriter) ReplaceMessage(def Definition) {
	valueNode := def.Node

	replacement := r.lookupMessage(valueNode, def.Message)
	if replacement == nil {
		if r.strict {
			r.reporter.Report(diag.Make(BundleDoesNotHaveTheMessage, valueNode, def.Message.ID))
			return
		}
		// Lenient mode: keep the source-language message.
		replacement = def.Message
	}

	newValue, err := r.synthesize(replacement, valueNode)
	if err != nil {
		node := valueNode
		text := err.Error()
		var malformed *rterr.Malformed
		if errors.As(err, &malformed) {
			text = malformed.Msg
			if n, ok := malformed.Node.(*ast.Node); ok && n != nil {
				node = n
			}
		}
		r.reporter.Report(diag.Make(MessageTreeMalformed, node, text))
		newValue = valueNode
	}

	if newValue != valueNode {
		valueNode.ReplaceWith(newValue)
		r.reporter.ReportChangeToEnclosingScope(newValue)
	}
}
