// Package buttonset persists reusable named button lists. The set named
// DefaultName is the quick-fill default offered when a new draft is started;
// every other set is an operator-named template.
package buttonset

import (
	"context"
	"errors"
	"time"

	"github.com/JOHAALETRADER/Postbotjoha/internal/draft"
)

// DefaultName keys the default button set.
const DefaultName = "DEFAULT"

// ErrNotFound is returned when no set exists under the requested name.
var ErrNotFound = errors.New("button set not found")

// ButtonSet is a named, ordered button list. Saves replace the list
// wholesale; sets never expire.
type ButtonSet struct {
	Name      string
	Buttons   []draft.Button
	UpdatedAt time.Time
}

// IsDefault reports whether the set is the quick-fill default.
func (s ButtonSet) IsDefault() bool { return s.Name == DefaultName }

// Repository stores button sets keyed by name.
type Repository interface {
	// Save upserts the set, replacing any stored button list.
	Save(ctx context.Context, set ButtonSet) error
	// Get returns the set by name or ErrNotFound.
	Get(ctx context.Context, name string) (ButtonSet, error)
	// List returns all sets ordered by name.
	List(ctx context.Context) ([]ButtonSet, error)
	// Delete removes the set by name or returns ErrNotFound.
	Delete(ctx context.Context, name string) error
}

// Templates filters the default set out of a listing, preserving order.
// Index-based template operations address positions in this slice.
func Templates(sets []ButtonSet) []ButtonSet {
	out := make([]ButtonSet, 0, len(sets))
	for _, s := range sets {
		if !s.IsDefault() {
			out = append(out, s)
		}
	}
	return out
}
