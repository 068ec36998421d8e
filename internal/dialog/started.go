package dialog

import (
	"context"
	"fmt"
	"strings"

	"github.com/m3rciful/liftbot/internal/program"
	"github.com/m3rciful/liftbot/internal/session"
)

// handleStarted is the in-workout phase. An active update sub-dialog
// captures every message before command dispatch.
func (e *Engine) handleStarted(ctx context.Context, sess *session.Session, text string) error {
	if sess.UpdateSetSub != session.UpdateSetNone {
		return e.handleUpdateSetStep(ctx, sess, text)
	}
	if sess.UpdateExerciseSub != session.UpdateExerciseNone {
		return e.handleUpdateExpression(ctx, sess, text)
	}

	switch firstToken(text) {
	case cmdNextExercise:
		return e.nextExercise(ctx, sess)
	case cmdPrevExercise:
		return e.prevExercise(ctx, sess)
	case cmdNextSet:
		return e.nextSet(ctx, sess)
	case cmdPrevSet:
		return e.prevSet(ctx, sess)
	case cmdUpdateSet:
		return e.beginUpdateSet(ctx, sess)
	case cmdUpdateExercise:
		return e.beginUpdateExercise(ctx, sess)
	}
	return e.unknownCommand(ctx, sess)
}

func (e *Engine) nextExercise(ctx context.Context, sess *session.Session) error {
	day := sess.CurrentDay()
	if day == nil {
		return e.reply(ctx, sess, "No day selected.")
	}
	if sess.Exercise >= day.NumExercises() {
		return e.finishWorkout(ctx, sess)
	}
	sess.Exercise++
	sess.Set = 1
	return e.showCurrent(ctx, sess)
}

func (e *Engine) prevExercise(ctx context.Context, sess *session.Session) error {
	if sess.Exercise <= 1 {
		return e.replyMenu(ctx, sess, "Already at the first exercise.")
	}
	// The set cursor is intentionally kept; showCurrent clamps it if the
	// previous exercise has fewer sets.
	sess.Exercise--
	return e.showCurrent(ctx, sess)
}

func (e *Engine) nextSet(ctx context.Context, sess *session.Session) error {
	day := sess.CurrentDay()
	if day == nil {
		return e.reply(ctx, sess, "No day selected.")
	}
	ex, err := day.Exercise(sess.Exercise)
	if err != nil {
		return e.reply(ctx, sess, "No current exercise.")
	}
	if sess.Set >= ex.NumSets() {
		if err := e.reply(ctx, sess, "Exercise finished!"); err != nil {
			return err
		}
		return e.nextExercise(ctx, sess)
	}
	sess.Set++
	return e.showCurrent(ctx, sess)
}

func (e *Engine) prevSet(ctx context.Context, sess *session.Session) error {
	if sess.Set <= 1 {
		return e.replyMenu(ctx, sess, "Already at the first set.")
	}
	sess.Set--
	return e.showCurrent(ctx, sess)
}

func (e *Engine) finishWorkout(ctx context.Context, sess *session.Session) error {
	sess.ClearUpdates()
	sess.State = session.StateEnd
	return e.replyMenu(ctx, sess, "Workout complete! 🎉 Well done.")
}

// showCurrent renders the exercise header and the current set with the
// in-workout keyboard.
func (e *Engine) showCurrent(ctx context.Context, sess *session.Session) error {
	day := sess.CurrentDay()
	if day == nil {
		return e.reply(ctx, sess, "No day selected.")
	}
	ex, err := day.Exercise(sess.Exercise)
	if err != nil {
		return e.reply(ctx, sess, "No current exercise.")
	}
	if sess.Set > ex.NumSets() {
		sess.Set = ex.NumSets()
	}
	set, err := ex.Set(sess.Set)
	if err != nil {
		return e.reply(ctx, sess, "No current set.")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Exercise %d/%d: %s\n", sess.Exercise, day.NumExercises(), ex.Name)
	if ex.Comment != "" {
		b.WriteString(ex.Comment + "\n")
	}
	if ex.ExtraInfo != "" {
		b.WriteString(ex.ExtraInfo + "\n")
	}
	fmt.Fprintf(&b, "Set %d/%d\n%s", sess.Set, ex.NumSets(), set.String())
	return e.replyMenu(ctx, sess, b.String())
}

func (e *Engine) beginUpdateSet(ctx context.Context, sess *session.Session) error {
	day := sess.CurrentDay()
	if day == nil {
		return e.reply(ctx, sess, "No day selected.")
	}
	ex, err := day.Exercise(sess.Exercise)
	if err != nil {
		return e.reply(ctx, sess, "No current exercise.")
	}
	sess.UpdateSetSub = session.UpdateSetTypeSet
	sess.Pending = &program.PendingUpdate{ChatID: sess.ChatID}
	return e.replyPrompt(ctx, sess,
		fmt.Sprintf("Which set do you want to update? (1-%d)", ex.NumSets()))
}

func (e *Engine) beginUpdateExercise(ctx context.Context, sess *session.Session) error {
	sess.UpdateExerciseSub = session.UpdateExerciseTypeExpression
	return e.replyPrompt(ctx, sess, "Enter the update expression.")
}
