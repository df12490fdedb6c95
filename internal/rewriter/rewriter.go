// Package rewriter replaces localizable-message definitions in a program
// tree with translated value subtrees drawn from a message bundle. It
// validates structure and placeholder consistency per site; a failed site
// produces one diagnostic and keeps its original subtree.
package rewriter

import (
	"retarget/internal/diag"
	"retarget/internal/message"
)

var (
	// BundleDoesNotHaveTheMessage fires in strict mode when neither the
	// primary nor a usable alternate id is present in the bundle.
	BundleDoesNotHaveTheMessage = diag.NewError(
		"RT_BUNDLE_DOES_NOT_HAVE_THE_MESSAGE",
		"Message with id = %s could not be found in replacement bundle")

	// InvalidAlternateMessagePlaceholders fires when an alternate message
	// exists but declares a different placeholder set than the original.
	InvalidAlternateMessagePlaceholders = diag.NewError(
		"RT_INVALID_ALTERNATE_MESSAGE_PLACEHOLDERS",
		"Alternate message ID=%s placeholders (%v) differs from %s placeholders (%v).")

	// MessageTreeMalformed fires when a definition site's subtree does not
	// have one of the recognized value shapes.
	MessageTreeMalformed = diag.NewError(
		"RT_MESSAGE_TREE_MALFORMED",
		"Message parse tree malformed. %s")
)

// MessageRewriter performs message replacement against one bundle. It is
// single-threaded and mutates the tree synchronously; run one instance per
// transformation request.
type MessageRewriter struct {
	bundle   message.Bundle
	strict   bool
	reporter diag.Reporter
}

// New builds a MessageRewriter. In strict mode a missing translation is an
// error and the site keeps its source-language value; otherwise the source
// message round-trips through synthesis as its own translation.
func New(bundle message.Bundle, strict bool, reporter diag.Reporter) *MessageRewriter {
	return &MessageRewriter{
		bundle:   bundle,
		strict:   strict,
		reporter: reporter,
	}
}
