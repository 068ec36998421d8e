package dialog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/m3rciful/liftbot/internal/session"
	"github.com/m3rciful/liftbot/internal/store"
)

// handleTypeProgram treats the whole message as a program id. Any failure
// drops back to the main menu without a selection.
func (e *Engine) handleTypeProgram(ctx context.Context, sess *session.Session, text string) error {
	id, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil {
		sess.State = session.StateAuthenticated
		return e.replyMenu(ctx, sess, "That is not a program id. Selection cancelled.")
	}

	owned, err := e.store.ProgramBelongsToUser(ctx, sess.UserID, id)
	if err != nil {
		sess.State = session.StateAuthenticated
		return e.reportStoreError(ctx, sess, "program.select", err)
	}
	if !owned {
		sess.State = session.StateAuthenticated
		return e.replyMenu(ctx, sess, "No such program. Selection cancelled.")
	}

	prog, err := e.store.LoadProgram(ctx, sess.UserID, id)
	if err != nil {
		sess.State = session.StateAuthenticated
		if errors.Is(err, store.ErrNotFound) {
			return e.replyMenu(ctx, sess, "No such program. Selection cancelled.")
		}
		return e.reportStoreError(ctx, sess, "program.load", err)
	}

	sess.Program = prog
	sess.DayIndex = -1
	sess.State = session.StateTypeDay
	return e.replyPrompt(ctx, sess,
		fmt.Sprintf("Program %q selected. Which day do you want to train? (1-%d)",
			prog.Name, prog.NumDays()))
}
