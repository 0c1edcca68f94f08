package service

import (
	"context"
	"fmt"

	"teerth-api/internal/models"
)

// LanguageKey is the store key of the language preference.
const LanguageKey = "language"

// FavoritesStore persists favorite sets per language.
type FavoritesStore interface {
	Load(ctx context.Context, lang models.Language) (models.FavoriteSet, error)
	Toggle(ctx context.Context, lang models.Language, place string) (bool, error)
}

// PreferenceKV is the key-value store holding the language preference.
type PreferenceKV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// PreferenceService manages favorites and the language preference.
type PreferenceService struct {
	favorites FavoritesStore
	kv        PreferenceKV
}

// NewPreferenceService creates a new preference service
func NewPreferenceService(favorites FavoritesStore, kv PreferenceKV) *PreferenceService {
	return &PreferenceService{favorites: favorites, kv: kv}
}

// ToggleFavorite flips placeName in the favorites of lang and reports the new membership.
func (s *PreferenceService) ToggleFavorite(ctx context.Context, lang models.Language, placeName string) (bool, error) {
	if err := checkLanguage(lang); err != nil {
		return false, err
	}
	if placeName == "" {
		return false, fmt.Errorf("service: place cannot be empty: %w", ErrInvalidArgument)
	}

	on, err := s.favorites.Toggle(ctx, lang, placeName)
	if err != nil {
		return false, fmt.Errorf("service: failed to toggle favorite: %w", err)
	}
	return on, nil
}

// ListFavorites returns the favorites of lang in the order they were added.
func (s *PreferenceService) ListFavorites(ctx context.Context, lang models.Language) ([]string, error) {
	if err := checkLanguage(lang); err != nil {
		return nil, err
	}

	set, err := s.favorites.Load(ctx, lang)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load favorites: %w", err)
	}
	return []string(set), nil
}

// GetLanguage returns the stored language, English when none is stored.
func (s *PreferenceService) GetLanguage(ctx context.Context) (models.Language, error) {
	raw, ok, err := s.kv.Get(ctx, LanguageKey)
	if err != nil {
		return "", fmt.Errorf("service: failed to read language: %w", err)
	}
	lang := models.Language(raw)
	if !ok || !lang.Valid() {
		return models.English, nil
	}
	return lang, nil
}

// SetLanguage stores lang as the preferred language.
func (s *PreferenceService) SetLanguage(ctx context.Context, lang models.Language) error {
	if err := checkLanguage(lang); err != nil {
		return err
	}
	if err := s.kv.Set(ctx, LanguageKey, string(lang)); err != nil {
		return fmt.Errorf("service: failed to store language: %w", err)
	}
	return nil
}
