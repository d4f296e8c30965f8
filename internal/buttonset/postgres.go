package buttonset

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/JOHAALETRADER/Postbotjoha/internal/draft"
	"github.com/JOHAALETRADER/Postbotjoha/internal/logger"
)

// postgresRepository stores sets in the button_sets table, buttons as jsonb.
type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository wraps an open connection pool.
func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

type buttonSetRow struct {
	Name      string          `db:"name"`
	Buttons   json.RawMessage `db:"buttons"`
	UpdatedAt time.Time       `db:"updated_at"`
}

func (r *postgresRepository) Save(ctx context.Context, set ButtonSet) error {
	payload, err := json.Marshal(set.Buttons)
	if err != nil {
		return fmt.Errorf("encode buttons: %w", err)
	}
	const q = `
		INSERT INTO button_sets (name, buttons, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (name)
		DO UPDATE SET buttons = EXCLUDED.buttons, updated_at = NOW()`
	if _, err := r.db.ExecContext(ctx, q, set.Name, payload); err != nil {
		logger.Error(ctx, "db", "buttonset.save",
			slog.String("status", "error"),
			slog.String("name", set.Name),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("save button set %q: %w", set.Name, err)
	}
	logger.Debug(ctx, "db", "buttonset.save",
		slog.String("status", "ok"),
		slog.String("name", set.Name),
		slog.Int("buttons", len(set.Buttons)),
	)
	return nil
}

func (r *postgresRepository) Get(ctx context.Context, name string) (ButtonSet, error) {
	var row buttonSetRow
	const q = `SELECT name, buttons, updated_at FROM button_sets WHERE name = $1`
	if err := r.db.GetContext(ctx, &row, q, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ButtonSet{}, ErrNotFound
		}
		return ButtonSet{}, fmt.Errorf("get button set %q: %w", name, err)
	}
	return row.toSet()
}

func (r *postgresRepository) List(ctx context.Context) ([]ButtonSet, error) {
	var rows []buttonSetRow
	const q = `SELECT name, buttons, updated_at FROM button_sets ORDER BY name`
	if err := r.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, fmt.Errorf("list button sets: %w", err)
	}
	out := make([]ButtonSet, 0, len(rows))
	for _, row := range rows {
		set, err := row.toSet()
		if err != nil {
			return nil, err
		}
		out = append(out, set)
	}
	return out, nil
}

func (r *postgresRepository) Delete(ctx context.Context, name string) error {
	const q = `DELETE FROM button_sets WHERE name = $1`
	res, err := r.db.ExecContext(ctx, q, name)
	if err != nil {
		return fmt.Errorf("delete button set %q: %w", name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	logger.Debug(ctx, "db", "buttonset.delete",
		slog.String("status", "ok"),
		slog.String("name", name),
	)
	return nil
}

func (row buttonSetRow) toSet() (ButtonSet, error) {
	var buttons []draft.Button
	if len(row.Buttons) > 0 {
		if err := json.Unmarshal(row.Buttons, &buttons); err != nil {
			return ButtonSet{}, fmt.Errorf("decode buttons for %q: %w", row.Name, err)
		}
	}
	return ButtonSet{Name: row.Name, Buttons: buttons, UpdatedAt: row.UpdatedAt}, nil
}
