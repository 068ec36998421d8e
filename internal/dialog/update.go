package dialog

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"log/slog"

	"github.com/m3rciful/liftbot/core/logger"
	"github.com/m3rciful/liftbot/internal/program"
	"github.com/m3rciful/liftbot/internal/session"
)

// handleUpdateSetStep advances the three-step set edit dialog. Each step
// re-prompts on bad input without leaving the step.
func (e *Engine) handleUpdateSetStep(ctx context.Context, sess *session.Session, text string) error {
	switch sess.UpdateSetSub {
	case session.UpdateSetTypeSet:
		return e.updateChooseSet(ctx, sess, text)
	case session.UpdateSetTypeWhat:
		return e.updateChooseField(ctx, sess, text)
	case session.UpdateSetTypeNewValue:
		return e.updateTakeValue(ctx, sess, text)
	}
	return fmt.Errorf("dialog: unexpected update sub-state %q", sess.UpdateSetSub)
}

func (e *Engine) updateChooseSet(ctx context.Context, sess *session.Session, text string) error {
	day := sess.CurrentDay()
	if day == nil {
		sess.ClearUpdates()
		return e.reply(ctx, sess, "No day selected.")
	}
	ex, err := day.Exercise(sess.Exercise)
	if err != nil {
		sess.ClearUpdates()
		return e.reply(ctx, sess, "No current exercise.")
	}

	n, convErr := strconv.Atoi(strings.TrimSpace(text))
	if convErr != nil || n < 1 || n > ex.NumSets() {
		return e.replyPrompt(ctx, sess,
			fmt.Sprintf("Please enter a set number between 1 and %d.", ex.NumSets()))
	}

	if sess.Pending == nil {
		sess.Pending = &program.PendingUpdate{ChatID: sess.ChatID}
	}
	sess.Pending.Exercise = sess.Exercise
	sess.Pending.Set = n
	sess.UpdateSetSub = session.UpdateSetTypeWhat
	return e.replyPrompt(ctx, sess,
		"What do you want to update?\n1 - reps\n2 - rest\n3 - weight\n0 - cancel")
}

func (e *Engine) updateChooseField(ctx context.Context, sess *session.Session, text string) error {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return e.replyPrompt(ctx, sess, "Please enter 1, 2, 3 or 0.")
	}
	if n == 0 {
		sess.ClearUpdates()
		return e.replyMenu(ctx, sess, "Update cancelled.")
	}
	field, ok := program.FieldFromSelector(n)
	if !ok {
		return e.replyPrompt(ctx, sess, "Please enter 1, 2, 3 or 0.")
	}
	sess.Pending.Field = field
	sess.UpdateSetSub = session.UpdateSetTypeNewValue
	return e.replyPrompt(ctx, sess, fmt.Sprintf("Enter the new %s value.", field))
}

func (e *Engine) updateTakeValue(ctx context.Context, sess *session.Session, text string) error {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n < 0 {
		return e.replyPrompt(ctx, sess, "Please enter a non-negative number.")
	}
	sess.Pending.SetValue(n)
	sess.UpdateSetSub = session.UpdateSetNone
	return e.commitPendingUpdate(ctx, sess)
}

// commitPendingUpdate persists the finished update, reloads the snapshot and
// redisplays the current set. Failure keeps cursor and state untouched.
func (e *Engine) commitPendingUpdate(ctx context.Context, sess *session.Session) error {
	upd := sess.Pending
	sess.Pending = nil
	if !upd.Complete() {
		return e.replyMenu(ctx, sess, "Nothing to update.")
	}

	err := e.store.CommitSetUpdate(ctx, sess.UserID, sess.Program.ID,
		sess.DayIndex, upd.Exercise, upd.Set, upd.Field, *upd.Value)
	if err != nil {
		return e.reportStoreError(ctx, sess, "set.update", err)
	}

	prog, err := e.store.LoadProgram(ctx, sess.UserID, sess.Program.ID)
	if err != nil {
		logger.Dialog.LogAttrs(ctx, slog.LevelError, "snapshot reload failed",
			slog.String("event", "set.update"),
			slog.Int64("chat_id", sess.ChatID),
			slog.String("err", err.Error()),
		)
		return e.replyMenu(ctx, sess, "Saved, but refreshing the program failed.")
	}
	sess.Program = prog

	if err := e.reply(ctx, sess, "Updated ✅"); err != nil {
		return err
	}
	return e.showCurrent(ctx, sess)
}

// handleUpdateExpression accepts the expression and acknowledges that
// expression updates are not applied yet.
// TODO: parse "<set>x<reps>@<weight>" expressions once the format settles.
func (e *Engine) handleUpdateExpression(ctx context.Context, sess *session.Session, text string) error {
	sess.UpdateExerciseSub = session.UpdateExerciseNone
	return e.replyMenu(ctx, sess,
		"Got it, but exercise expressions are not supported yet.")
}
