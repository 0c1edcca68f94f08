package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"teerth-api/internal/bootstrap"
	"teerth-api/internal/config"
	"teerth-api/internal/handler"
	"teerth-api/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load(".env")

	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}
	logger.Setup(config.LogLevel, config.LogFormat)
	if config.LogFormat != "console" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize layers
	app, err := bootstrap.New(ctx, config)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot initialize services")
	}
	defer app.Close()

	catalogHandler := handler.NewCatalogHandler(app.Catalog)
	preferenceHandler := handler.NewPreferenceHandler(app.Preferences)
	calendarHandler := handler.NewCalendarHandler(app.Calendar)

	r := handler.NewRouter(catalogHandler, preferenceHandler, calendarHandler)

	srv := &http.Server{
		Addr:              config.ServerAddress,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", config.ServerAddress).Str("source", config.SheetsSource).Str("store", config.StoreDriver).Msg("server_start")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server_error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("server_shutdown")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server_shutdown_error")
	}
}
