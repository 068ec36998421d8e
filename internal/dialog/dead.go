package dialog

import (
	"context"

	"github.com/m3rciful/liftbot/internal/session"
)

// handleDead accepts only /start; everything else gets a registration hint
// and changes nothing.
func (e *Engine) handleDead(ctx context.Context, sess *session.Session, text string) error {
	if firstToken(text) != cmdStart {
		return e.replyMenu(ctx, sess, "You are not registered yet. Send /start to begin.")
	}
	sess.State = session.StateLogin
	sess.LoginSub = session.LoginNone
	sess.Attempts = 0
	return e.replyPrompt(ctx, sess, "Welcome! Please enter your username.")
}
