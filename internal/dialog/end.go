package dialog

import (
	"context"

	"github.com/m3rciful/liftbot/internal/session"
)

// handleEnd is the post-workout menu.
func (e *Engine) handleEnd(ctx context.Context, sess *session.Session, text string) error {
	switch firstToken(text) {
	case cmdQuit:
		sess.ClearDay()
		sess.State = session.StateAuthenticated
		return e.replyMenu(ctx, sess, "See you next time. Choose a command.")
	case cmdStats:
		return e.replyMenu(ctx, sess, "Stats are not available yet.")
	case cmdSuggestions:
		return e.replyMenu(ctx, sess, "Suggestions are not available yet.")
	}
	return e.unknownCommand(ctx, sess)
}
