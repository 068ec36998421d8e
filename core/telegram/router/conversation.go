package router

import (
	"time"

	tg "github.com/m3rciful/liftbot/core/telegram"
	"github.com/m3rciful/liftbot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// Conversation is the minimal interface for a state-first dialog engine.
// Every text update is handed to the engine; command recognition happens
// inside it based on the sender's conversation state.
type Conversation interface {
	HandleText(c tele.Context) error
}

// ConversationOptions controls fallback behaviour for non-text updates.
type ConversationOptions struct {
	UnknownDocument tele.HandlerFunc
}

// ConversationRoutes builds the routes that feed inbound updates into the
// dialog engine. Unlike a command router there is no global command table:
// state decides what a message means.
func ConversationRoutes(conv Conversation, opts ConversationOptions) []tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		return handleWithSummary(c, "dialog", start, "", "", func() error {
			return conv.HandleText(c)
		})
	}

	docHandler := func(c tele.Context) error {
		start := time.Now()
		if opts.UnknownDocument != nil {
			return handleWithSummary(c, "unexpected_document", start, "", "", func() error {
				return opts.UnknownDocument(c)
			})
		}
		logHandlerSummary(c, "unexpected_document", start, "skip", "ok", nil)
		return nil
	}

	return []tg.Route{
		{
			Endpoint: tele.OnText,
			Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(handler)),
		},
		{
			Endpoint: tele.OnDocument,
			Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(docHandler)),
		},
	}
}
