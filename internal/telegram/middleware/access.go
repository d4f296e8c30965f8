package middleware

import (
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/JOHAALETRADER/Postbotjoha/internal/logger"
)

// AccessOptions configures the single-operator allow-list.
type AccessOptions struct {
	// AdminID is the only account allowed through. Zero disables the check.
	AdminID  int64
	OnReject tele.HandlerFunc
}

// OperatorOnlyMiddleware drops every update whose sender is not the
// configured operator. Strangers get the rejection handler, if any, and
// never reach downstream handlers.
func OperatorOnlyMiddleware(opts AccessOptions) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			if opts.AdminID == 0 || (sender != nil && sender.ID == opts.AdminID) {
				return next(c)
			}
			var userID int64
			if sender != nil {
				userID = sender.ID
			}
			logger.Warn(logger.Background(), "tg", "access denied",
				slog.String("event", "tg.access"),
				slog.Int64("user_id", userID),
			)
			if opts.OnReject != nil {
				return opts.OnReject(c)
			}
			return nil
		}
	}
}
