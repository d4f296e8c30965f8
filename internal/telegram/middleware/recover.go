// Package middleware holds the global update-processing chain: panic
// recovery, the operator allow-list, receipt logging and rate limiting.
package middleware

import (
	"log/slog"
	"runtime/debug"

	sentry "github.com/getsentry/sentry-go"
	tele "gopkg.in/telebot.v4"

	"github.com/JOHAALETRADER/Postbotjoha/internal/logger"
)

// RecoverMiddleware catches panics in handlers so one bad update cannot
// crash the bot.
func RecoverMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		defer func() {
			if r := recover(); r != nil {
				sentry.CurrentHub().Recover(r)
				logger.Error(logger.Background(), "tg", "panic recovered",
					slog.String("event", "tg.panic"),
					slog.Any("err", r),
					slog.String("stack", string(debug.Stack())),
				)
			}
		}()
		return next(c)
	}
}
