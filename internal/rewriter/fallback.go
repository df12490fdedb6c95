package rewriter

import (
	"retarget/internal/ast"
	"retarget/internal/message"
)

// ReplaceFallback resolves a two-branch fallback call such as
//
//	goog.getMsgWithFallback(MSG_A, MSG_B)
//
// to whichever branch has a usable translation. Branch B (the second
// argument) wins only when B resolves and A does not; in every other case
// branch A wins. The chosen branch is detached and spliced in place of the
// whole call expression.
func (r *MessageRewriter) ReplaceFallback(call *ast.Node, msgA, msgB *message.Message) {
	firstResolved := r.lookupMessage(call, msgA) != nil
	secondResolved := r.lookupMessage(call, msgB) != nil

	var replacement *ast.Node
	if secondResolved && !firstResolved {
		replacement = call.Child(2)
	} else {
		replacement = call.Child(1)
	}
	replacement.Detach()
	call.ReplaceWith(replacement)
	r.reporter.ReportChangeToEnclosingScope(replacement)
}
