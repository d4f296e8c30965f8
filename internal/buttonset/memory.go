package buttonset

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/JOHAALETRADER/Postbotjoha/internal/draft"
)

// memoryRepository keeps sets in process memory. Used when no database is
// configured; contents are lost on restart.
type memoryRepository struct {
	mu   sync.RWMutex
	sets map[string]ButtonSet
}

// NewMemoryRepository builds an empty in-memory repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{sets: make(map[string]ButtonSet)}
}

func (r *memoryRepository) Save(_ context.Context, set ButtonSet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	set.Buttons = draft.CloneButtons(set.Buttons)
	set.UpdatedAt = time.Now()
	r.sets[set.Name] = set
	return nil
}

func (r *memoryRepository) Get(_ context.Context, name string) (ButtonSet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	set, ok := r.sets[name]
	if !ok {
		return ButtonSet{}, ErrNotFound
	}
	set.Buttons = draft.CloneButtons(set.Buttons)
	return set, nil
}

func (r *memoryRepository) List(_ context.Context) ([]ButtonSet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ButtonSet, 0, len(r.sets))
	for _, set := range r.sets {
		set.Buttons = draft.CloneButtons(set.Buttons)
		out = append(out, set)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memoryRepository) Delete(_ context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sets[name]; !ok {
		return ErrNotFound
	}
	delete(r.sets, name)
	return nil
}
