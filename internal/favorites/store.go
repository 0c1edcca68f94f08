// Package favorites persists the favorite places of each language as a JSON
// array under "favorites_<lang>". The two languages never share a set.
package favorites

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"teerth-api/internal/models"

	"github.com/rs/zerolog/log"
)

// KV is the key-value store holding the sets.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Key returns the store key of the favorites of lang.
func Key(lang models.Language) string {
	return "favorites_" + string(lang)
}

// Store loads and saves favorite sets.
type Store struct {
	kv KV
	mu sync.Mutex
}

func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

// Load returns the favorites of lang. An absent or unreadable value is an empty set.
func (s *Store) Load(ctx context.Context, lang models.Language) (models.FavoriteSet, error) {
	raw, ok, err := s.kv.Get(ctx, Key(lang))
	if err != nil {
		return nil, fmt.Errorf("favorites: failed to load %s: %w", lang, err)
	}
	set := models.FavoriteSet{}
	if !ok || raw == "" {
		return set, nil
	}
	if err := json.Unmarshal([]byte(raw), &set); err != nil || set == nil {
		log.Warn().Err(err).Str("lang", string(lang)).Msg("favorites_corrupt")
		return models.FavoriteSet{}, nil
	}
	return set, nil
}

// Save replaces the favorites of lang.
func (s *Store) Save(ctx context.Context, lang models.Language, set models.FavoriteSet) error {
	if set == nil {
		set = models.FavoriteSet{}
	}
	b, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("favorites: failed to encode %s: %w", lang, err)
	}
	if err := s.kv.Set(ctx, Key(lang), string(b)); err != nil {
		return fmt.Errorf("favorites: failed to save %s: %w", lang, err)
	}
	return nil
}

// Toggle flips the membership of place and persists the result. It reports
// whether place is a favorite afterwards.
func (s *Store) Toggle(ctx context.Context, lang models.Language, place string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, err := s.Load(ctx, lang)
	if err != nil {
		return false, err
	}
	next := set.Toggle(place)
	if err := s.Save(ctx, lang, next); err != nil {
		return false, err
	}
	return next.Contains(place), nil
}
