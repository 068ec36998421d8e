package dialog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"log/slog"

	"github.com/m3rciful/liftbot/core/logger"
	"github.com/m3rciful/liftbot/internal/session"
	"github.com/m3rciful/liftbot/internal/store"
)

// handleLogin drives the two-turn credential dialog. The sub-state records
// which answer the next message is.
func (e *Engine) handleLogin(ctx context.Context, sess *session.Session, text string) error {
	switch sess.LoginSub {
	case session.LoginNone:
		return e.loginUsername(ctx, sess, strings.TrimSpace(text))
	case session.LoginUsername:
		return e.loginPassword(ctx, sess, strings.TrimSpace(text))
	}
	return fmt.Errorf("dialog: unexpected login sub-state %q", sess.LoginSub)
}

func (e *Engine) loginUsername(ctx context.Context, sess *session.Session, username string) error {
	if username == "" {
		return e.replyPrompt(ctx, sess, "Please enter your username.")
	}
	exists, err := e.store.UsernameExists(ctx, username)
	if err != nil {
		return e.reportStoreError(ctx, sess, "login.username", err)
	}
	if !exists {
		return e.replyPrompt(ctx, sess, "Unknown username. Please try again.")
	}
	sess.LoginName = username
	sess.LoginSub = session.LoginUsername
	return e.replyPrompt(ctx, sess, "Please enter your password.")
}

func (e *Engine) loginPassword(ctx context.Context, sess *session.Session, password string) error {
	userID, err := e.store.VerifyCredentials(ctx, sess.LoginName, password)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return e.reportStoreError(ctx, sess, "login.password", err)
	}
	if err == nil {
		sess.UserID = userID
		sess.State = session.StateAuthenticated
		sess.LoginSub = session.LoginAuthenticated
		sess.Attempts = 0
		logger.Dialog.LogAttrs(ctx, slog.LevelInfo, "login",
			slog.String("event", "login"),
			slog.String("status", "ok"),
			slog.Int64("chat_id", sess.ChatID),
			slog.Int64("user_id", userID),
		)
		return e.replyMenu(ctx, sess, "You are logged in. Choose a command.")
	}

	sess.Attempts++
	if sess.Attempts >= e.loginAttempts {
		logger.Dialog.LogAttrs(ctx, slog.LevelWarn, "login",
			slog.String("event", "login"),
			slog.String("status", "fail"),
			slog.Int64("chat_id", sess.ChatID),
			slog.Int("attempts", sess.Attempts),
		)
		sess.Deregister()
		return e.replyMenu(ctx, sess,
			"Too many failed attempts. You have been deregistered; send /start to begin again.")
	}
	remaining := e.loginAttempts - sess.Attempts
	return e.replyPrompt(ctx, sess,
		fmt.Sprintf("Wrong password. %d attempt(s) left.", remaining))
}
