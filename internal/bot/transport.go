package bot

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	tele "gopkg.in/telebot.v4"

	"github.com/JOHAALETRADER/Postbotjoha/internal/logger"
	"github.com/JOHAALETRADER/Postbotjoha/internal/post"
)

// errNotReady is returned when delivery is attempted before the bot is up.
var errNotReady = errors.New("transport not connected")

// LazyPublisher defers to a real publisher bound once the bot is built.
// The flow is constructed before the transport exists, so delivery goes
// through this indirection.
type LazyPublisher struct {
	mu    sync.RWMutex
	inner post.Publisher
}

// Bind installs the real publisher.
func (l *LazyPublisher) Bind(p post.Publisher) {
	l.mu.Lock()
	l.inner = p
	l.mu.Unlock()
}

func (l *LazyPublisher) Publish(ctx context.Context, s post.Snapshot) error {
	l.mu.RLock()
	inner := l.inner
	l.mu.RUnlock()
	if inner == nil {
		return errNotReady
	}
	return inner.Publish(ctx, s)
}

// LazyNotifier defers operator notifications until the bot is bound.
type LazyNotifier struct {
	mu  sync.RWMutex
	bot *tele.Bot
}

// Bind installs the connected bot.
func (l *LazyNotifier) Bind(bot *tele.Bot) {
	l.mu.Lock()
	l.bot = bot
	l.mu.Unlock()
}

// Notify sends a plain text to the chat, best-effort.
func (l *LazyNotifier) Notify(chatID int64, text string) {
	l.mu.RLock()
	bot := l.bot
	l.mu.RUnlock()
	if bot == nil {
		logger.Warn(logger.Background(), "tg", "notify skipped",
			slog.Int64("chat_id", chatID),
			slog.String("reason", "not_connected"),
		)
		return
	}
	if _, err := bot.Send(tele.ChatID(chatID), text); err != nil {
		logger.Error(logger.Background(), "tg", "notify failed",
			slog.Int64("chat_id", chatID),
			slog.String("err", err.Error()),
		)
	}
}
