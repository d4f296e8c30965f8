// Package bot wires Telegram updates to the conversation flow: commands,
// text and media routing, callback handling, and reply rendering.
package bot

import (
	"log/slog"
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/JOHAALETRADER/Postbotjoha/internal/config"
	"github.com/JOHAALETRADER/Postbotjoha/internal/draft"
	"github.com/JOHAALETRADER/Postbotjoha/internal/flow"
	"github.com/JOHAALETRADER/Postbotjoha/internal/locales"
	"github.com/JOHAALETRADER/Postbotjoha/internal/logger"
	"github.com/JOHAALETRADER/Postbotjoha/internal/post"
	"github.com/JOHAALETRADER/Postbotjoha/internal/telegram"
	tghelpers "github.com/JOHAALETRADER/Postbotjoha/internal/telegram/helpers"
	"github.com/JOHAALETRADER/Postbotjoha/internal/telegram/middleware"
)

// Service translates between the transport and the flow.
type Service struct {
	flow   *flow.Flow
	pub    post.Publisher
	cfg    *config.Config
	labels map[string]flow.Action
}

// New builds the service. Locales must be initialized first, since the
// label table is resolved from the active language.
func New(flowSvc *flow.Flow, pub post.Publisher, cfg *config.Config) *Service {
	return &Service{
		flow:   flowSvc,
		pub:    pub,
		cfg:    cfg,
		labels: menuLabels(),
	}
}

// Middlewares returns the global chain: panic recovery, the operator
// allow-list, rate limiting and receipt logging.
func (s *Service) Middlewares() []telegram.Middleware {
	mws := []telegram.Middleware{
		{Name: "recover", Use: middleware.RecoverMiddleware},
		{Name: "access", Use: middleware.OperatorOnlyMiddleware(middleware.AccessOptions{
			AdminID: s.cfg.Telegram.AdminID,
			OnReject: func(c tele.Context) error {
				return c.Send(locales.T("AccessRestricted"))
			},
		})},
	}

	interval := time.Duration(s.cfg.RateLimit.IntervalMS) * time.Millisecond
	if interval > 0 {
		exclude := make(map[string]struct{}, len(s.cfg.RateLimit.ExcludeUpdates))
		for _, kind := range s.cfg.RateLimit.ExcludeUpdates {
			exclude[strings.ToLower(kind)] = struct{}{}
		}
		mws = append(mws, telegram.Middleware{
			Name: "rate_limit",
			Use: middleware.RateLimitMiddleware(middleware.RateLimitOptions{
				Interval: interval,
				Exclude:  exclude,
				OnLimited: func(c tele.Context) error {
					return c.Send(locales.T("RateLimited"))
				},
			}),
		})
	}

	mws = append(mws, telegram.Middleware{Name: "logger", Use: middleware.LoggerMiddleware})
	return mws
}

// Register binds commands and callbacks to the registry.
func (s *Service) Register(reg *telegram.Registry) {
	reg.RegisterCommand("/start", telegram.Command{
		Handler:     s.onStart,
		Description: "Reiniciar el panel",
	})
	reg.RegisterCommand("/cancel", telegram.Command{
		Handler:     s.onCancel,
		Description: "Cancelar la acción actual",
		Aliases:     []string{"cancelar"},
	})

	if err := reg.RegisterCallback(cbSource, s.onSourceCallback); err != nil {
		logger.Warn(logger.Background(), "tg", "callback registration failed",
			slog.String("key", cbSource),
			slog.String("err", err.Error()),
		)
	}
}

// Routes returns the update routes for text, media and callbacks.
func (s *Service) Routes(reg *telegram.Registry) []telegram.Route {
	return []telegram.Route{
		{Endpoint: tele.OnText, Handler: s.textRouter(reg)},
		{Endpoint: tele.OnPhoto, Handler: s.mediaHandler(draft.KindPhoto)},
		{Endpoint: tele.OnVideo, Handler: s.mediaHandler(draft.KindVideo)},
		{Endpoint: tele.OnAudio, Handler: s.mediaHandler(draft.KindAudio)},
		{Endpoint: tele.OnVoice, Handler: s.mediaHandler(draft.KindVoice)},
		{Endpoint: tele.OnCallback, Handler: s.callbackRouter(reg)},
	}
}

func (s *Service) onStart(c tele.Context) error {
	return s.handle(c, "start", func(op int64) flow.Reply {
		ctx := tghelpers.WithHandler(c, "start")
		return s.flow.Start(ctx, op)
	})
}

func (s *Service) onCancel(c tele.Context) error {
	return s.handle(c, "cancel", func(op int64) flow.Reply {
		ctx := tghelpers.WithHandler(c, "cancel")
		return s.flow.OnAction(ctx, op, flow.ActionCancel)
	})
}

// textRouter resolves slash commands not bound directly (aliases), then
// tapped menu labels, then hands free text to the current state.
func (s *Service) textRouter(reg *telegram.Registry) tele.HandlerFunc {
	return func(c tele.Context) error {
		text := c.Text()
		if strings.HasPrefix(text, "/") {
			if _, cmd, ok := reg.LookupCommand(strings.Fields(text)[0]); ok {
				return cmd.Handler(c)
			}
		}
		return s.onText(c)
	}
}

// onText resolves tapped menu labels into actions first; anything else is
// free text interpreted by the current state.
func (s *Service) onText(c tele.Context) error {
	text := c.Text()
	if action, ok := s.labels[text]; ok {
		return s.handle(c, "menu", func(op int64) flow.Reply {
			ctx := tghelpers.WithHandler(c, "menu")
			return s.flow.OnAction(ctx, op, action)
		})
	}
	return s.handle(c, "text", func(op int64) flow.Reply {
		ctx := tghelpers.WithHandler(c, "text")
		return s.flow.OnText(ctx, op, text)
	})
}

func (s *Service) mediaHandler(kind draft.ContentKind) tele.HandlerFunc {
	name := "media." + string(kind)
	return func(c tele.Context) error {
		fileID := mediaFileID(c.Message(), kind)
		if fileID == "" {
			return nil
		}
		caption := c.Message().Caption
		return s.handle(c, name, func(op int64) flow.Reply {
			ctx := tghelpers.WithHandler(c, name)
			return s.flow.OnMedia(ctx, op, kind, fileID, caption)
		})
	}
}

func mediaFileID(m *tele.Message, kind draft.ContentKind) string {
	if m == nil {
		return ""
	}
	switch kind {
	case draft.KindPhoto:
		if m.Photo != nil {
			return m.Photo.FileID
		}
	case draft.KindVideo:
		if m.Video != nil {
			return m.Video.FileID
		}
	case draft.KindAudio:
		if m.Audio != nil {
			return m.Audio.FileID
		}
	case draft.KindVoice:
		if m.Voice != nil {
			return m.Voice.FileID
		}
	}
	return ""
}

// callbackRouter dispatches callbacks through the registry.
func (s *Service) callbackRouter(reg *telegram.Registry) tele.HandlerFunc {
	return func(c tele.Context) error {
		if c.Callback() == nil {
			return nil
		}
		key, _ := middleware.ParseCallback(c.Callback())
		_ = c.Respond()

		handler, ok := reg.GetCallback(key)
		if !ok || handler == nil {
			if fallback := reg.CallbackNotFound(); fallback != nil {
				return fallback(c)
			}
			return nil
		}
		return handler(c)
	}
}

func (s *Service) onSourceCallback(c tele.Context) error {
	_, payload := middleware.ParseCallback(c.Callback())
	action, ok := sourceActions[payload]
	if !ok {
		return nil
	}
	return s.handle(c, "source", func(op int64) flow.Reply {
		ctx := tghelpers.WithHandler(c, "source")
		return s.flow.OnAction(ctx, op, action)
	})
}

// handle runs one flow turn and renders the reply, logging a summary line
// per handled update.
func (s *Service) handle(c tele.Context, name string, fn func(op int64) flow.Reply) error {
	start := time.Now()
	sender := c.Sender()
	if sender == nil {
		return nil
	}

	reply := fn(sender.ID)
	err := s.render(c, reply)

	status := "ok"
	attrs := []slog.Attr{
		slog.String("status", status),
		slog.String("handler", name),
		slog.Int("messages", len(reply.Messages)),
		slog.Int64("duration_ms", logger.RoundMS(time.Since(start)).Milliseconds()),
	}
	if err != nil {
		attrs[0] = slog.String("status", "fail")
		attrs = append(attrs, slog.String("err", logger.SanitizeLimit(err.Error(), 256)))
	}
	logger.LogEvent(tghelpers.WithHandler(c, name), logger.Component("tg"), slog.LevelInfo, "handler.handled", attrs...)
	return err
}

// render delivers the reply: preview first, then texts, attaching the menu
// keyboard to the last message.
func (s *Service) render(c tele.Context, reply flow.Reply) error {
	ctx := tghelpers.BuildContext(c)

	if reply.Preview != nil && !reply.Preview.Empty() {
		if err := s.pub.Publish(ctx, *reply.Preview); err != nil {
			logger.Error(ctx, "tg", "preview failed",
				slog.String("err", err.Error()),
			)
		}
	}

	markup := markupFor(reply.Menu)
	for i, msg := range reply.Messages {
		var opts []interface{}
		if i == len(reply.Messages)-1 && markup != nil {
			opts = append(opts, markup)
		}
		if err := c.Send(msg, opts...); err != nil {
			return err
		}
	}
	return nil
}
