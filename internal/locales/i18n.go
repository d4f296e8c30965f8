// Package locales resolves operator-facing text. Messages live in embedded
// JSON files, one per language; Spanish is the shipping default.
package locales

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/JOHAALETRADER/Postbotjoha/internal/logger"
)

//go:embed *.json
var localeFS embed.FS

var (
	mu        sync.RWMutex
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
)

// Init loads the embedded message files and selects lang as the active
// language. Unknown languages fall back to Spanish.
func Init(lang string) error {
	tag, err := language.Parse(lang)
	if err != nil {
		logger.Warn(logger.Background(), "flow", "locales.init",
			slog.String("status", "fallback"),
			slog.String("lang", lang),
		)
		tag = language.Spanish
	}

	b := i18n.NewBundle(language.Spanish)
	b.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir(".")
	if err != nil {
		return fmt.Errorf("read embedded locales: %w", err)
	}
	loaded := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		if _, err := b.LoadMessageFileFS(localeFS, e.Name()); err != nil {
			return fmt.Errorf("load message file %s: %w", e.Name(), err)
		}
		loaded++
	}
	if loaded == 0 {
		return fmt.Errorf("no message files embedded")
	}

	mu.Lock()
	bundle = b
	localizer = i18n.NewLocalizer(b, tag.String(), language.Spanish.String())
	mu.Unlock()

	logger.Info(logger.Background(), "flow", "locales.init",
		slog.String("status", "ok"),
		slog.String("lang", tag.String()),
		slog.Int("files", loaded),
	)
	return nil
}

// T resolves a message by id. Unresolvable ids come back verbatim so a
// missing translation is visible instead of silent.
func T(id string) string {
	return TD(id, nil)
}

// TD resolves a message by id with template data.
func TD(id string, data map[string]interface{}) string {
	mu.RLock()
	loc := localizer
	mu.RUnlock()
	if loc == nil {
		return id
	}
	msg, err := loc.Localize(&i18n.LocalizeConfig{MessageID: id, TemplateData: data})
	if err != nil {
		logger.Warn(logger.Background(), "flow", "locales.missing",
			slog.String("id", id),
			slog.String("err", err.Error()),
		)
		return id
	}
	return msg
}
