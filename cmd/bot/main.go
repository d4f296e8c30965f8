package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	sentry "github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"

	"github.com/JOHAALETRADER/Postbotjoha/internal/bot"
	"github.com/JOHAALETRADER/Postbotjoha/internal/buildinfo"
	"github.com/JOHAALETRADER/Postbotjoha/internal/buttonset"
	"github.com/JOHAALETRADER/Postbotjoha/internal/config"
	"github.com/JOHAALETRADER/Postbotjoha/internal/database"
	"github.com/JOHAALETRADER/Postbotjoha/internal/draft"
	"github.com/JOHAALETRADER/Postbotjoha/internal/flow"
	"github.com/JOHAALETRADER/Postbotjoha/internal/locales"
	"github.com/JOHAALETRADER/Postbotjoha/internal/logger"
	"github.com/JOHAALETRADER/Postbotjoha/internal/post"
	"github.com/JOHAALETRADER/Postbotjoha/internal/schedule"
	"github.com/JOHAALETRADER/Postbotjoha/internal/state"
	"github.com/JOHAALETRADER/Postbotjoha/internal/telegram"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "postbot: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := logger.InitLogger(cfg); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Shutdown() }()

	if err := locales.Init(cfg.Locale); err != nil {
		return fmt.Errorf("init locales: %w", err)
	}

	if cfg.Sentry.DSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
			Release:     buildinfo.Version,
		})
		if err != nil {
			return fmt.Errorf("sentry init: %w", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	sets, closeStorage, err := buildStorage(cfg)
	if err != nil {
		return err
	}
	defer closeStorage()

	loc := time.Local
	if cfg.Scheduler.Timezone != "" {
		loc, err = time.LoadLocation(cfg.Scheduler.Timezone)
		if err != nil {
			return fmt.Errorf("load timezone %q: %w", cfg.Scheduler.Timezone, err)
		}
	}

	var jobs flow.JobScheduler
	if !cfg.Scheduler.Disabled {
		sched, err := schedule.New()
		if err != nil {
			return fmt.Errorf("init scheduler: %w", err)
		}
		sched.Start()
		defer func() { _ = sched.Stop() }()
		jobs = sched
	}

	publisher := &bot.LazyPublisher{}
	notifier := &bot.LazyNotifier{}

	flowSvc := flow.New(flow.Config{
		States:    state.NewMemoryManager(),
		Drafts:    draft.NewStore(),
		Sets:      sets,
		Publisher: publisher,
		Scheduler: jobs,
		Notifier:  notifier,
		Channel:   cfg.Telegram.Channel,
		Location:  loc,
	})

	svc := bot.New(flowSvc, publisher, cfg)
	reg := telegram.NewRegistry()
	svc.Register(reg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "app", "starting",
		slog.String("version", buildinfo.Version),
		slog.String("commit", buildinfo.Commit),
		slog.String("channel", cfg.Telegram.Channel),
		slog.String("storage", cfg.Storage.Backend),
		slog.Bool("scheduler", jobs != nil),
	)

	return telegram.RunTelegram(ctx, telegram.RunOptions{
		Config:      cfg,
		Registry:    reg,
		Middlewares: svc.Middlewares(),
		Routes:      svc.Routes(reg),
		OnStart: func(ctx context.Context, rt telegram.Runtime) error {
			publisher.Bind(post.NewPublisher(rt.Bot))
			notifier.Bind(rt.Bot)
			logger.Info(ctx, "app", "started",
				slog.String("bot", rt.Bot.Me.Username),
			)
			return nil
		},
		OnStop: func(ctx context.Context, rt telegram.Runtime) error {
			logger.Info(ctx, "app", "stopping")
			return nil
		},
	})
}

// buildStorage selects the button set repository per configuration.
func buildStorage(cfg *config.Config) (buttonset.Repository, func(), error) {
	if cfg.Storage.Backend != config.StoragePostgres {
		return buttonset.NewMemoryRepository(), func() {}, nil
	}

	if err := database.RunMigrations(cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	return buttonset.NewPostgresRepository(db), func() { _ = db.Close() }, nil
}
