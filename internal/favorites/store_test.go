package favorites

import (
	"context"
	"errors"
	"testing"

	"teerth-api/internal/models"
	"teerth-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenKV struct{}

func (brokenKV) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("connection refused")
}

func (brokenKV) Set(context.Context, string, string) error {
	return errors.New("connection refused")
}

func TestFavoriteSet_Toggle(t *testing.T) {
	tests := []struct {
		name     string
		set      models.FavoriteSet
		place    string
		expected models.FavoriteSet
	}{
		{name: "add to empty", set: models.FavoriteSet{}, place: "A", expected: models.FavoriteSet{"A"}},
		{name: "add keeps order", set: models.FavoriteSet{"A"}, place: "B", expected: models.FavoriteSet{"A", "B"}},
		{name: "remove", set: models.FavoriteSet{"A", "B", "C"}, place: "B", expected: models.FavoriteSet{"A", "C"}},
		{name: "nil set", set: nil, place: "A", expected: models.FavoriteSet{"A"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := append(models.FavoriteSet{}, tt.set...)

			got := tt.set.Toggle(tt.place)

			assert.Equal(t, tt.expected, got)
			assert.ElementsMatch(t, original, tt.set, "receiver must not change")
			assert.ElementsMatch(t, tt.set, got.Toggle(tt.place), "toggling twice restores membership")
		})
	}
}

func TestStore_LoadSave(t *testing.T) {
	ctx := context.Background()
	kv := repository.NewMemoryStore()
	s := NewStore(kv)

	set, err := s.Load(ctx, models.English)
	require.NoError(t, err)
	assert.Equal(t, models.FavoriteSet{}, set)

	require.NoError(t, s.Save(ctx, models.Hindi, models.FavoriteSet{"कुंडलपुर"}))

	raw, ok, err := kv.Get(ctx, "favorites_hi")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `["कुंडलपुर"]`, raw)

	en, err := s.Load(ctx, models.English)
	require.NoError(t, err)
	assert.Empty(t, en, "languages keep separate sets")

	hi, err := s.Load(ctx, models.Hindi)
	require.NoError(t, err)
	assert.Equal(t, models.FavoriteSet{"कुंडलपुर"}, hi)
}

func TestStore_LoadCorruptValue(t *testing.T) {
	ctx := context.Background()
	kv := repository.NewMemoryStore()
	require.NoError(t, kv.Set(ctx, "favorites_en", "not json"))

	set, err := NewStore(kv).Load(ctx, models.English)

	require.NoError(t, err)
	assert.Equal(t, models.FavoriteSet{}, set)
}

func TestStore_Toggle(t *testing.T) {
	ctx := context.Background()
	s := NewStore(repository.NewMemoryStore())

	on, err := s.Toggle(ctx, models.English, "Sonagiri")
	require.NoError(t, err)
	assert.True(t, on)

	on, err = s.Toggle(ctx, models.English, "Sonagiri")
	require.NoError(t, err)
	assert.False(t, on)

	set, err := s.Load(ctx, models.English)
	require.NoError(t, err)
	assert.Empty(t, set)
}

func TestStore_Errors(t *testing.T) {
	ctx := context.Background()
	s := NewStore(brokenKV{})

	_, err := s.Load(ctx, models.English)
	assert.ErrorContains(t, err, "favorites: failed to load en")

	_, err = s.Toggle(ctx, models.English, "A")
	assert.Error(t, err)

	err = s.Save(ctx, models.Hindi, nil)
	assert.ErrorContains(t, err, "favorites: failed to save hi")
}
