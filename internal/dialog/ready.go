package dialog

import (
	"context"

	"github.com/m3rciful/liftbot/internal/session"
)

// handleReady waits for the workout to begin or the day to be cancelled.
func (e *Engine) handleReady(ctx context.Context, sess *session.Session, text string) error {
	switch firstToken(text) {
	case cmdStartWorkout:
		sess.Exercise = 1
		sess.Set = 1
		sess.ClearUpdates()
		sess.State = session.StateStarted
		return e.showCurrent(ctx, sess)
	case cmdCancel:
		// The program stays selected; only the day is dropped.
		sess.ClearDay()
		sess.State = session.StateAuthenticated
		return e.replyMenu(ctx, sess, "Day cancelled. Choose a command.")
	}
	return e.unknownCommand(ctx, sess)
}
