// Package dialog is the conversation engine: it walks one inbound message
// through the session's state machine, enforces state-dependent command
// legality and drives the guided edit dialogs.
package dialog

import (
	"context"
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/liftbot/core/logger"
	"github.com/m3rciful/liftbot/core/telegram/keyboard"
	"log/slog"

	"github.com/m3rciful/liftbot/internal/session"
	"github.com/m3rciful/liftbot/internal/store"
)

// Commands recognized by the state handlers. Which of them are legal at any
// moment is decided by the owning state's dispatch table.
const (
	cmdStart          = "/start"
	cmdPrograms       = "/programs"
	cmdDetails        = "/details"
	cmdSelectProgram  = "/select_program"
	cmdStartWorkout   = "/start_workout"
	cmdCancel         = "/cancel"
	cmdNextExercise   = "/next_exercise"
	cmdPrevExercise   = "/prev_exercise"
	cmdNextSet        = "/next_set"
	cmdPrevSet        = "/prev_set"
	cmdUpdateSet      = "/update_set"
	cmdUpdateExercise = "/update_exercise"
	cmdQuit           = "/quit"
	cmdStats          = "/stats"
	cmdSuggestions    = "/suggestions"
)

const defaultLoginAttempts = 3

// Sender delivers outbound messages to a chat. The Telegram runtime
// provides the real implementation; tests provide a recording fake.
type Sender interface {
	Send(ctx context.Context, chatID int64, text string, markup *tele.ReplyMarkup) error
}

// Options configures a new Engine.
type Options struct {
	Sessions *session.Store
	Store    store.Store
	Sender   Sender
	// LoginAttempts bounds failed password attempts before the chat is
	// deregistered; 0 selects the default of 3.
	LoginAttempts int
}

// Engine dispatches inbound messages by conversation state.
type Engine struct {
	sessions      *session.Store
	store         store.Store
	sender        Sender
	loginAttempts int
}

// NewEngine constructs the engine.
func NewEngine(opts Options) *Engine {
	attempts := opts.LoginAttempts
	if attempts <= 0 {
		attempts = defaultLoginAttempts
	}
	return &Engine{
		sessions:      opts.Sessions,
		store:         opts.Store,
		sender:        opts.Sender,
		loginAttempts: attempts,
	}
}

// HandleMessage processes one inbound text message to completion. Messages
// from distinct chats may be processed concurrently; the transport delivers
// messages of one chat in order.
func (e *Engine) HandleMessage(ctx context.Context, chatID int64, text string) error {
	sess := e.sessions.Get(chatID)

	logger.Dialog.LogAttrs(ctx, slog.LevelDebug, "message",
		slog.String("event", "dispatch"),
		slog.Int64("chat_id", chatID),
		slog.String("state", string(sess.State)),
	)

	switch sess.State {
	case session.StateDead:
		return e.handleDead(ctx, sess, text)
	case session.StateLogin:
		return e.handleLogin(ctx, sess, text)
	case session.StateAuthenticated:
		return e.handleAuthenticated(ctx, sess, text)
	case session.StateTypeProgram:
		return e.handleTypeProgram(ctx, sess, text)
	case session.StateTypeDay:
		return e.handleTypeDay(ctx, sess, text)
	case session.StateReady:
		return e.handleReady(ctx, sess, text)
	case session.StateStarted:
		return e.handleStarted(ctx, sess, text)
	case session.StateEnd:
		return e.handleEnd(ctx, sess, text)
	}
	return fmt.Errorf("dialog: unhandled state %q", sess.State)
}

// firstToken extracts the command key from a message.
func firstToken(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func (e *Engine) reply(ctx context.Context, sess *session.Session, text string) error {
	return e.sender.Send(ctx, sess.ChatID, text, nil)
}

func (e *Engine) replyMenu(ctx context.Context, sess *session.Session, text string) error {
	return e.sender.Send(ctx, sess.ChatID, text, stateKeyboard(sess.State))
}

// replyPrompt asks for free-form input with a forced reply.
func (e *Engine) replyPrompt(ctx context.Context, sess *session.Session, text string) error {
	return e.sender.Send(ctx, sess.ChatID, text, keyboard.ForceReply())
}

func (e *Engine) unknownCommand(ctx context.Context, sess *session.Session) error {
	return e.replyMenu(ctx, sess, "Invalid command. Please try again.")
}

func (e *Engine) reportStoreError(ctx context.Context, sess *session.Session, op string, err error) error {
	logger.Dialog.LogAttrs(ctx, slog.LevelError, "store call failed",
		slog.String("event", op),
		slog.String("status", "fail"),
		slog.Int64("chat_id", sess.ChatID),
		slog.String("err", err.Error()),
	)
	return e.reply(ctx, sess, "Something went wrong on our side. Please try again later.")
}
