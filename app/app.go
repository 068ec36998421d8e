// Package app wires the conversation engine, the Postgres store and the
// Telegram runtime together.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/jmoiron/sqlx"
	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/liftbot/core/bootstrap"
	corecmd "github.com/m3rciful/liftbot/core/cmd"
	coretelegram "github.com/m3rciful/liftbot/core/telegram"
	"github.com/m3rciful/liftbot/core/telegram/commands"
	tghelpers "github.com/m3rciful/liftbot/core/telegram/helpers"
	"github.com/m3rciful/liftbot/core/telegram/router"
	tgsender "github.com/m3rciful/liftbot/core/telegram/sender"
	"github.com/m3rciful/liftbot/internal/dialog"
	"github.com/m3rciful/liftbot/internal/session"
	"github.com/m3rciful/liftbot/internal/store"
)

// App owns the long-lived components of the bot process.
type App struct {
	cfg    *Config
	db     *sqlx.DB
	sender *telegramSender
	engine *dialog.Engine
}

// Bootstrap initializes logging, database and migrations, then builds the
// dialog engine on top.
func Bootstrap(carrier corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
	cfg, ok := carrier.(*Config)
	if !ok {
		return nil, fmt.Errorf("app: unexpected config type %T", carrier)
	}

	res, err := bootstrap.Run(bootstrap.Options{
		Config:   cfg.CoreConfig(),
		Database: cfg.Database,
	})
	if err != nil {
		return nil, err
	}

	sender := &telegramSender{}
	engine := dialog.NewEngine(dialog.Options{
		Sessions:      session.NewStore(),
		Store:         store.NewPostgres(res.DB),
		Sender:        sender,
		LoginAttempts: cfg.Bot.LoginAttempts,
	})

	return &App{
		cfg:    cfg,
		db:     res.DB,
		sender: sender,
		engine: engine,
	}, nil
}

// TelegramRunOptions builds the runtime options consumed by the core runner.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	reg := coretelegram.NewRegistry()
	registerCommands(reg)

	routes := router.ConversationRoutes(conversation{engine: a.engine}, router.ConversationOptions{
		UnknownDocument: func(c tele.Context) error {
			return tghelpers.SendText(c, "Please send text messages only.")
		},
	})

	return coretelegram.RunOptions{
		Config:      a.cfg.CoreConfig(),
		Registry:    reg,
		Middlewares: coretelegram.DefaultMiddlewares(a.cfg.CoreConfig(), nil),
		Routes:      routes,
		OnStart: func(ctx context.Context, rt coretelegram.Runtime) error {
			a.sender.bind(rt.Bot, rt.Dispatcher)
			return nil
		},
		OnStop: func(ctx context.Context, rt coretelegram.Runtime) error {
			return a.db.Close()
		},
	}, nil
}

// registerCommands publishes the command menu. Legality of each command is
// decided by the conversation state, not here.
func registerCommands(reg *coretelegram.Registry) {
	reg.RegisterCommand("/start", commands.Command{Description: "Register and log in"})
	reg.RegisterCommand("/programs", commands.Command{Description: "List your programs"})
	reg.RegisterCommand("/details", commands.Command{Description: "Show full program breakdown"})
	reg.RegisterCommand("/select_program", commands.Command{Description: "Select a program"})
	reg.RegisterCommand("/start_workout", commands.Command{Description: "Start the selected day"})
	reg.RegisterCommand("/cancel", commands.Command{Description: "Cancel the selected day"})
	reg.RegisterCommand("/prev_exercise", commands.Command{Description: "Previous exercise", Hidden: true})
	reg.RegisterCommand("/next_exercise", commands.Command{Description: "Next exercise", Hidden: true})
	reg.RegisterCommand("/prev_set", commands.Command{Description: "Previous set", Hidden: true})
	reg.RegisterCommand("/next_set", commands.Command{Description: "Next set", Hidden: true})
	reg.RegisterCommand("/update_set", commands.Command{Description: "Update a set value", Hidden: true})
	reg.RegisterCommand("/update_exercise", commands.Command{Description: "Update an exercise", Hidden: true})
	reg.RegisterCommand("/quit", commands.Command{Description: "Back to the menu", Hidden: true})
	reg.RegisterCommand("/stats", commands.Command{Description: "Workout stats", Hidden: true})
	reg.RegisterCommand("/suggestions", commands.Command{Description: "Workout suggestions", Hidden: true})
}

// conversation adapts the dialog engine to the text route.
type conversation struct {
	engine *dialog.Engine
}

func (cv conversation) HandleText(c tele.Context) error {
	chat := c.Chat()
	if chat == nil {
		return nil
	}
	ctx := tghelpers.BuildContext(c)
	return cv.engine.HandleMessage(ctx, chat.ID, c.Text())
}

// telegramSender delivers engine replies through the async dispatcher. The
// bot handle becomes available only after the runtime is built, hence the
// atomic late binding.
type telegramSender struct {
	bot        atomic.Pointer[tele.Bot]
	dispatcher atomic.Pointer[tgsender.Dispatcher]
}

func (s *telegramSender) bind(bot *tele.Bot, d *tgsender.Dispatcher) {
	s.bot.Store(bot)
	s.dispatcher.Store(d)
}

// Send implements dialog.Sender.
func (s *telegramSender) Send(ctx context.Context, chatID int64, text string, markup *tele.ReplyMarkup) error {
	bot := s.bot.Load()
	if bot == nil {
		return fmt.Errorf("app: telegram sender not bound")
	}

	run := func() error {
		var opts []any
		if markup != nil {
			opts = append(opts, markup)
		}
		_, err := bot.Send(tele.ChatID(chatID), text, opts...)
		return err
	}

	d := s.dispatcher.Load()
	if d == nil {
		return run()
	}
	if err := d.Enqueue(ctx, "send.text", "sendMessage", run); err != nil {
		if errors.Is(err, tgsender.ErrQueueFull) || errors.Is(err, tgsender.ErrQueueClosed) {
			return run()
		}
		return err
	}
	return nil
}
