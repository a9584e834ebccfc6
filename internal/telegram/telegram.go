// Library repository: https://github.com/tucnak/telebot

package telegram

import (
	"context"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/plugfox/foxy-fib/internal/calculator"
	config "github.com/plugfox/foxy-fib/internal/config"
	"github.com/plugfox/foxy-fib/internal/fib"
	log "github.com/plugfox/foxy-fib/internal/log"
	tele "gopkg.in/telebot.v3"
	mw "gopkg.in/telebot.v3/middleware"
)

type Telegram struct {
	bot     *tele.Bot
	started atomic.Bool
}

// New connects the bot. The caller decides whether a token is configured.
func New(calc *calculator.Calculator, httpClient *http.Client, config *config.Config, logger *slog.Logger) (*Telegram, error) {
	pref := tele.Settings{
		Token:  config.Telegram.Token,
		Client: httpClient,
		Poller: &tele.LongPoller{
			Timeout: config.Telegram.Timeout,
		},
		OnError: func(err error, _ tele.Context) {
			logger.Error("telegram error", slog.String("error", err.Error()))
		},
	}

	bot, err := tele.NewBot(pref)
	if err != nil {
		return nil, err
	}

	// Global-scoped middleware:
	bot.Use(mw.Recover())
	bot.Use(mw.AutoRespond())
	bot.Use(mw.Logger(log.NewLogAdapter(logger)))
	if config.Telegram.IgnoreVia {
		bot.Use(mw.IgnoreVia())
	}
	if len(config.Telegram.Whitelist) > 0 {
		bot.Use(mw.Whitelist(config.Telegram.Whitelist...))
	}
	if len(config.Telegram.Blacklist) > 0 {
		bot.Use(mw.Blacklist(config.Telegram.Blacklist...))
	}

	defaultAlgorithm, err := fib.ParseAlgorithm(config.Fib.Algorithm)
	if err != nil {
		defaultAlgorithm = fib.AlgorithmRecursive
	}

	cmd := &commands{calc: calc, defaultAlgorithm: defaultAlgorithm}

	bot.Handle("/start", func(c tele.Context) error {
		return c.Send(helpText)
	})
	bot.Handle("/help", func(c tele.Context) error {
		return c.Send(helpText)
	})
	bot.Handle("/fib", func(c tele.Context) error {
		return c.Send(cmd.fibReply(context.Background(), c.Args()))
	})
	bot.Handle("/table", func(c tele.Context) error {
		return c.Send(cmd.tableReply(context.Background(), c.Args()))
	})

	return &Telegram{
		bot: bot,
	}, nil
}

// Start polls for updates in the background until Stop is called.
func (t *Telegram) Start() {
	if !t.started.CompareAndSwap(false, true) {
		return
	}
	go t.bot.Start()
}

// Stop waits for the poller to finish or ctx to expire.
// A bot that was never started returns immediately.
func (t *Telegram) Stop(ctx context.Context) error {
	if !t.started.CompareAndSwap(true, false) {
		return nil
	}

	stopped := make(chan struct{})
	go func() {
		t.bot.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Username of the bot account.
func (t *Telegram) Username() string {
	if t.bot.Me == nil {
		return ""
	}
	return t.bot.Me.Username
}
