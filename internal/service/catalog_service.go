package service

import (
	"context"
	"errors"
	"fmt"

	"teerth-api/internal/cache"
	"teerth-api/internal/columns"
	"teerth-api/internal/models"
	"teerth-api/internal/normalize"

	"github.com/rs/zerolog/log"
)

var (
	// ErrUnsupportedLanguage is returned for a language without a column table.
	ErrUnsupportedLanguage = errors.New("unsupported language")
	// ErrInvalidArgument is returned for an empty state or place name.
	ErrInvalidArgument = errors.New("invalid argument")
)

// SheetSource reads a range of the spreadsheet, header row first.
type SheetSource interface {
	FetchRange(ctx context.Context, rangeSpec string) ([]models.Row, error)
}

// FavoritesReader loads the favorites of a language.
type FavoritesReader interface {
	Load(ctx context.Context, lang models.Language) (models.FavoriteSet, error)
}

// Ranges names the spreadsheet range of each dataset.
type Ranges struct {
	Places string
	Images string
	Videos string
}

// CatalogService answers the state, place, image and video queries.
// Every sheet read goes through the cache under a language-qualified key.
type CatalogService struct {
	source    SheetSource
	cache     *cache.Manager
	favorites FavoritesReader
	ranges    Ranges
}

// NewCatalogService creates a new catalog service
func NewCatalogService(source SheetSource, cacheManager *cache.Manager, favorites FavoritesReader, ranges Ranges) *CatalogService {
	return &CatalogService{source: source, cache: cacheManager, favorites: favorites, ranges: ranges}
}

// CacheKey returns the cache key of dataset in lang.
func CacheKey(dataset string, lang models.Language) string {
	return dataset + "_" + string(lang)
}

func checkLanguage(lang models.Language) error {
	if !lang.Valid() {
		return fmt.Errorf("service: %q: %w", lang, ErrUnsupportedLanguage)
	}
	return nil
}

func (s *CatalogService) rangeFor(dataset columns.Dataset) string {
	switch dataset {
	case columns.Images:
		return s.ranges.Images
	case columns.Videos:
		return s.ranges.Videos
	default:
		return s.ranges.Places
	}
}

// table returns the rows of dataset with the index of its required columns.
// A sheet missing a required column fails before anything is cached.
func (s *CatalogService) table(ctx context.Context, dataset columns.Dataset, lang models.Language) ([]models.Row, *columns.HeaderIndex, error) {
	required := columns.Required[dataset]
	rows, err := cache.WithCache(ctx, s.cache, CacheKey(string(dataset), lang), 0, func(ctx context.Context) ([]models.Row, error) {
		rows, err := s.source.FetchRange(ctx, s.rangeFor(dataset))
		if err != nil {
			return nil, fmt.Errorf("service: failed to fetch %s: %w", dataset, err)
		}
		if _, err := columns.ResolveRows(rows, dataset, lang, required...); err != nil {
			return nil, fmt.Errorf("service: %w", err)
		}
		return rows, nil
	})
	if err != nil {
		return nil, nil, err
	}

	idx, err := columns.ResolveRows(rows, dataset, lang, required...)
	if err != nil {
		return nil, nil, fmt.Errorf("service: %w", err)
	}
	return rows, idx, nil
}

// GetStates returns the states of lang in collation order, optionally filtered by q.
// States are folded from the cached places table on every call, so they never
// outlive the rows they were built from.
func (s *CatalogService) GetStates(ctx context.Context, lang models.Language, q string) ([]models.StateEntry, error) {
	if err := checkLanguage(lang); err != nil {
		return nil, err
	}

	rows, idx, err := s.table(ctx, columns.Places, lang)
	if err != nil {
		return nil, err
	}
	states := normalize.SortStates(normalize.BuildStates(rows, idx), lang)
	return normalize.FilterStates(states, q), nil
}

// PlaceNames returns the distinct places of stateName in sheet order.
func (s *CatalogService) PlaceNames(ctx context.Context, lang models.Language, stateName string) ([]string, error) {
	if err := checkLanguage(lang); err != nil {
		return nil, err
	}
	if stateName == "" {
		return nil, fmt.Errorf("service: state cannot be empty: %w", ErrInvalidArgument)
	}

	rows, idx, err := s.table(ctx, columns.Places, lang)
	if err != nil {
		return nil, err
	}
	return normalize.UniquePlaces(normalize.PlacesForState(rows, idx, stateName)), nil
}

// GetPlacesByState returns the place cards of stateName: distinct names with
// a thumbnail when one exists, favorites first, filtered by q.
func (s *CatalogService) GetPlacesByState(ctx context.Context, lang models.Language, stateName, q string) ([]models.PlaceSummary, error) {
	names, err := s.PlaceNames(ctx, lang, stateName)
	if err != nil {
		return nil, err
	}

	favs, err := s.favorites.Load(ctx, lang)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load favorites: %w", err)
	}
	images := s.thumbnails(ctx, lang)

	out := make([]models.PlaceSummary, 0, len(names))
	for _, name := range names {
		thumb := normalize.Thumbnail(images, stateName, name)
		if thumb == "" {
			if links := normalize.ImagesForPlace(images, "", name); len(links) > 0 {
				thumb = links[0]
			}
		}
		out = append(out, models.PlaceSummary{Name: name, Image: thumb, Favorite: favs.Contains(name)})
	}
	return normalize.FilterPlaces(normalize.FavoritesFirst(out), q), nil
}

// thumbnails loads the image map for place cards. Cards render without
// images when it cannot be read.
func (s *CatalogService) thumbnails(ctx context.Context, lang models.Language) models.ImageMap {
	rows, idx, err := s.table(ctx, columns.Images, lang)
	if err != nil {
		log.Warn().Err(err).Str("lang", string(lang)).Msg("thumbnails_unavailable")
		return models.ImageMap{}
	}
	return normalize.BuildImageMap(rows, idx)
}

// GetPlaceRecords returns the raw rows of placeName. It fails with
// normalize.ErrNotFound when no row matches.
func (s *CatalogService) GetPlaceRecords(ctx context.Context, lang models.Language, placeName string) ([]models.Row, *columns.HeaderIndex, error) {
	if err := checkLanguage(lang); err != nil {
		return nil, nil, err
	}
	if placeName == "" {
		return nil, nil, fmt.Errorf("service: place cannot be empty: %w", ErrInvalidArgument)
	}

	rows, idx, err := s.table(ctx, columns.Places, lang)
	if err != nil {
		return nil, nil, err
	}
	records, err := normalize.RecordsForPlace(rows, idx, placeName)
	if err != nil {
		return nil, nil, fmt.Errorf("service: %w", err)
	}
	return records, idx, nil
}

// GetPlaceDetails returns the details page of placeName.
func (s *CatalogService) GetPlaceDetails(ctx context.Context, lang models.Language, placeName string) (*models.PlaceDetails, error) {
	records, idx, err := s.GetPlaceRecords(ctx, lang, placeName)
	if err != nil {
		return nil, err
	}
	details := normalize.BuildDetails(records, idx.Optional(columns.Latitude, columns.Longitude))
	return &details, nil
}

// GetImagesForPlace returns the image links of placeName, searching every
// state when stateName is empty. A place without images yields an empty list.
func (s *CatalogService) GetImagesForPlace(ctx context.Context, lang models.Language, stateName, placeName string) ([]string, error) {
	if err := checkLanguage(lang); err != nil {
		return nil, err
	}
	if placeName == "" {
		return nil, fmt.Errorf("service: place cannot be empty: %w", ErrInvalidArgument)
	}

	rows, idx, err := s.table(ctx, columns.Images, lang)
	if err != nil {
		return nil, err
	}
	return normalize.ImagesForPlace(normalize.BuildImageMap(rows, idx), stateName, placeName), nil
}

// GetVideosForPlace returns the video links of placeName.
func (s *CatalogService) GetVideosForPlace(ctx context.Context, lang models.Language, placeName string) ([]models.Video, error) {
	if err := checkLanguage(lang); err != nil {
		return nil, err
	}
	if placeName == "" {
		return nil, fmt.Errorf("service: place cannot be empty: %w", ErrInvalidArgument)
	}

	rows, idx, err := s.table(ctx, columns.Videos, lang)
	if err != nil {
		return nil, err
	}
	return normalize.VideosForPlace(rows, idx, placeName), nil
}

// Warm loads every dataset of every language through the cache and reports
// all failures together.
func (s *CatalogService) Warm(ctx context.Context) error {
	var errs []error
	for _, lang := range models.Languages {
		for _, dataset := range []columns.Dataset{columns.Places, columns.Images, columns.Videos} {
			if _, _, err := s.table(ctx, dataset, lang); err != nil {
				errs = append(errs, err)
			}
		}
		log.Info().Str("lang", string(lang)).Msg("cache_warmed")
	}
	return errors.Join(errs...)
}

// Snapshot returns the raw rows of every dataset keyed by range, read from
// the source without the cache.
func (s *CatalogService) Snapshot(ctx context.Context) (map[string][]models.Row, error) {
	out := make(map[string][]models.Row, 3)
	for _, dataset := range []columns.Dataset{columns.Places, columns.Images, columns.Videos} {
		rangeSpec := s.rangeFor(dataset)
		rows, err := s.source.FetchRange(ctx, rangeSpec)
		if err != nil {
			return nil, fmt.Errorf("service: failed to fetch %s: %w", dataset, err)
		}
		out[rangeSpec] = rows
	}
	return out, nil
}
