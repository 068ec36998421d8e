package dialog

import (
	"context"
	"strconv"
	"strings"

	"github.com/m3rciful/liftbot/internal/session"
)

// handleTypeDay treats the whole message as a 1-based day ordinal. Failure
// clears the selection entirely so program and day are never half set.
func (e *Engine) handleTypeDay(ctx context.Context, sess *session.Session, text string) error {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || sess.Program == nil || n < 1 || n > sess.Program.NumDays() {
		sess.ClearSelection()
		sess.State = session.StateAuthenticated
		return e.replyMenu(ctx, sess, "That is not a valid day. Selection cancelled.")
	}

	sess.DayIndex = n - 1
	sess.State = session.StateReady
	day := sess.CurrentDay()
	return e.replyMenu(ctx, sess,
		"Selected:\n"+day.String()+"\nSend /start_workout when you are ready.")
}
