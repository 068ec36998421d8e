package dialog

import (
	"context"
	"fmt"
	"strings"

	"github.com/m3rciful/liftbot/internal/session"
)

// handleAuthenticated is the main menu.
func (e *Engine) handleAuthenticated(ctx context.Context, sess *session.Session, text string) error {
	switch firstToken(text) {
	case cmdPrograms:
		return e.listPrograms(ctx, sess)
	case cmdDetails:
		return e.programDetails(ctx, sess)
	case cmdSelectProgram:
		sess.State = session.StateTypeProgram
		return e.replyPrompt(ctx, sess, "Enter the program id. Use /programs to see your programs.")
	}
	return e.unknownCommand(ctx, sess)
}

func (e *Engine) listPrograms(ctx context.Context, sess *session.Session) error {
	refs, err := e.store.ListPrograms(ctx, sess.UserID)
	if err != nil {
		return e.reportStoreError(ctx, sess, "programs.list", err)
	}
	if len(refs) == 0 {
		return e.replyMenu(ctx, sess, "You have no programs yet.")
	}
	var b strings.Builder
	b.WriteString("Your programs:\n")
	for _, ref := range refs {
		fmt.Fprintf(&b, "%d - %s\n", ref.ID, ref.Name)
	}
	return e.replyMenu(ctx, sess, b.String())
}

func (e *Engine) programDetails(ctx context.Context, sess *session.Session) error {
	details, err := e.store.ProgramDetails(ctx, sess.UserID)
	if err != nil {
		return e.reportStoreError(ctx, sess, "programs.details", err)
	}
	if details == "" {
		return e.replyMenu(ctx, sess, "You have no programs yet.")
	}
	return e.replyMenu(ctx, sess, details)
}
