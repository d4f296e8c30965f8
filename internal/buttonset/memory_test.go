package buttonset

import (
	"context"
	"testing"

	"github.com/JOHAALETRADER/Postbotjoha/internal/draft"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySaveOverwritesWholesale(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	require.NoError(t, repo.Save(ctx, ButtonSet{
		Name:    DefaultName,
		Buttons: []draft.Button{{Label: "A", URL: "https://a"}, {Label: "B", URL: "https://b"}},
	}))
	require.NoError(t, repo.Save(ctx, ButtonSet{
		Name:    DefaultName,
		Buttons: []draft.Button{{Label: "C", URL: "https://c"}},
	}))

	got, err := repo.Get(ctx, DefaultName)
	require.NoError(t, err)
	assert.Equal(t, []draft.Button{{Label: "C", URL: "https://c"}}, got.Buttons)
	assert.True(t, got.IsDefault())
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestMemoryGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	require.NoError(t, repo.Save(ctx, ButtonSet{
		Name:    "promo",
		Buttons: []draft.Button{{Label: "A", URL: "https://a"}},
	}))

	got, err := repo.Get(ctx, "promo")
	require.NoError(t, err)
	got.Buttons[0].Label = "changed"

	again, err := repo.Get(ctx, "promo")
	require.NoError(t, err)
	assert.Equal(t, "A", again.Buttons[0].Label)
}

func TestMemoryNotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	_, err := repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "missing"), ErrNotFound)
}

func TestMemoryListOrderedAndTemplatesFilter(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	for _, name := range []string{"zeta", DefaultName, "alfa"} {
		require.NoError(t, repo.Save(ctx, ButtonSet{Name: name}))
	}

	sets, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, sets, 3)
	assert.Equal(t, DefaultName, sets[0].Name)
	assert.Equal(t, "alfa", sets[1].Name)
	assert.Equal(t, "zeta", sets[2].Name)

	templates := Templates(sets)
	require.Len(t, templates, 2)
	assert.Equal(t, "alfa", templates[0].Name)
	assert.Equal(t, "zeta", templates[1].Name)
}
