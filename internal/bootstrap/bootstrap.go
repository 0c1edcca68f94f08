// Package bootstrap builds the service graph shared by the API server and the importer.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"

	"teerth-api/internal/cache"
	"teerth-api/internal/calendar"
	"teerth-api/internal/config"
	"teerth-api/internal/favorites"
	"teerth-api/internal/repository"
	"teerth-api/internal/service"
	"teerth-api/internal/sheets"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// App holds the wired services and the resources they own.
type App struct {
	Config      config.Config
	Store       cache.Store
	Source      service.SheetSource
	Cache       *cache.Manager
	Catalog     *service.CatalogService
	Preferences *service.PreferenceService
	Calendar    *service.CalendarService

	closers []func()
}

// New opens the configured store and builds every service on top of it.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	store, closeStore, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	source, err := NewSource(cfg)
	if err != nil {
		closeStore()
		return nil, err
	}

	cacheManager := cache.NewManager(store, cfg.CacheTTL, cache.WithServeStale(cfg.CacheServeStale))
	favs := favorites.NewStore(store)
	ranges := service.Ranges{Places: cfg.PlacesRange, Images: cfg.ImagesRange, Videos: cfg.VideosRange}
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	return &App{
		Config:      cfg,
		Store:       store,
		Source:      source,
		Cache:       cacheManager,
		Catalog:     service.NewCatalogService(source, cacheManager, favs, ranges),
		Preferences: service.NewPreferenceService(favs, store),
		Calendar:    service.NewCalendarService(calendar.NewClient(cfg.CalendarURL, httpClient), cacheManager),
		closers:     []func(){closeStore},
	}, nil
}

// Close releases the store connections.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// OpenStore connects the key-value store selected by STORE_DRIVER.
func OpenStore(ctx context.Context, cfg config.Config) (cache.Store, func(), error) {
	switch cfg.StoreDriver {
	case "postgres":
		pool, err := pgxpool.New(ctx, cfg.DBSource)
		if err != nil {
			return nil, nil, fmt.Errorf("bootstrap: cannot connect to db: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("bootstrap: cannot reach db: %w", err)
		}
		store := repository.NewPostgresStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		log.Info().Msg("store_postgres")
		return store, pool.Close, nil

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("bootstrap: cannot reach redis: %w", err)
		}
		log.Info().Str("addr", cfg.RedisAddr).Msg("store_redis")
		return repository.NewRedisStore(client, "teerth:"), func() { client.Close() }, nil

	case "memory", "":
		log.Info().Msg("store_memory")
		return repository.NewMemoryStore(), func() {}, nil
	}
	return nil, nil, fmt.Errorf("bootstrap: unknown store driver %q", cfg.StoreDriver)
}

// NewSource builds the spreadsheet source selected by SHEETS_SOURCE.
func NewSource(cfg config.Config) (service.SheetSource, error) {
	switch cfg.SheetsSource {
	case "xlsx":
		return sheets.NewWorkbookSource(cfg.SheetsXLSXPath), nil
	case "api", "":
		return sheets.NewClient(sheets.ClientConfig{
			BaseURL:       cfg.SheetsBaseURL,
			APIKey:        cfg.SheetsAPIKey,
			SpreadsheetID: cfg.SpreadsheetID,
			Retries:       cfg.FetchRetries,
			RetryDelay:    cfg.FetchRetryDelay,
			HTTPClient:    &http.Client{Timeout: cfg.HTTPTimeout},
		}), nil
	}
	return nil, fmt.Errorf("bootstrap: unknown sheets source %q", cfg.SheetsSource)
}
