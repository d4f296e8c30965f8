package post

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	sentry "github.com/getsentry/sentry-go"

	"github.com/JOHAALETRADER/Postbotjoha/internal/draft"
	"github.com/JOHAALETRADER/Postbotjoha/internal/logger"

	tele "gopkg.in/telebot.v4"
)

// ErrNoContent is returned for snapshots without a deliverable body.
var ErrNoContent = errors.New("snapshot has no content")

// Publisher delivers one frozen snapshot to its destination. Delivery
// failures are reported to the caller, never retried here.
type Publisher interface {
	Publish(ctx context.Context, s Snapshot) error
}

// chat adapts a destination string ("@channel" or a numeric id) to the
// transport's recipient contract.
type chat string

func (c chat) Recipient() string { return string(c) }

type telebotPublisher struct {
	bot *tele.Bot
}

// NewPublisher wraps a connected bot as a Publisher.
func NewPublisher(bot *tele.Bot) Publisher {
	return &telebotPublisher{bot: bot}
}

func (p *telebotPublisher) Publish(ctx context.Context, s Snapshot) error {
	start := time.Now()
	body, err := sendable(s)
	if err != nil {
		return err
	}

	var opts []interface{}
	if kb := Keyboard(s.Buttons); kb != nil {
		opts = append(opts, kb)
	}
	_, err = p.bot.Send(chat(s.Destination), body, opts...)
	if err != nil {
		sentry.CaptureException(err)
		logger.Error(ctx, "tg", "post.publish",
			slog.String("status", "error"),
			slog.String("destination", s.Destination),
			slog.String("kind", string(s.Kind)),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("publish to %s: %w", s.Destination, err)
	}

	logger.Info(ctx, "tg", "post.publish",
		slog.String("status", "ok"),
		slog.String("destination", s.Destination),
		slog.String("kind", string(s.Kind)),
		slog.Int("buttons", len(s.Buttons)),
		slog.Duration("duration", logger.RoundMS(time.Since(start))),
	)
	return nil
}

// sendable maps the snapshot body onto the transport's message types.
func sendable(s Snapshot) (interface{}, error) {
	switch s.Kind {
	case draft.KindText:
		return s.Text, nil
	case draft.KindPhoto:
		return &tele.Photo{File: tele.File{FileID: s.FileID}, Caption: s.Text}, nil
	case draft.KindVideo:
		return &tele.Video{File: tele.File{FileID: s.FileID}, Caption: s.Text}, nil
	case draft.KindAudio:
		return &tele.Audio{File: tele.File{FileID: s.FileID}, Caption: s.Text}, nil
	case draft.KindVoice:
		return &tele.Voice{File: tele.File{FileID: s.FileID}, Caption: s.Text}, nil
	default:
		return nil, ErrNoContent
	}
}

// Keyboard renders link buttons as an inline keyboard, one button per row.
// A nil markup is returned for an empty list so the transport omits the
// keyboard entirely.
func Keyboard(buttons []draft.Button) *tele.ReplyMarkup {
	if len(buttons) == 0 {
		return nil
	}
	markup := &tele.ReplyMarkup{}
	rows := make([]tele.Row, 0, len(buttons))
	for _, b := range buttons {
		rows = append(rows, markup.Row(markup.URL(b.Label, b.URL)))
	}
	markup.Inline(rows...)
	return markup
}
