// Command importer warms the cache and exports spreadsheet snapshots.
package main

import (
	"context"
	"fmt"
	"os"

	"teerth-api/internal/bootstrap"
	"teerth-api/internal/config"
	"teerth-api/internal/logger"
	"teerth-api/internal/sheets"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	configDir  string
	outputPath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "importer",
		Short: "Maintenance commands for the teerth catalog",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			_ = godotenv.Load(".env")
		},
	}
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "configs", "Directory containing app.env")

	warmCmd := &cobra.Command{
		Use:   "warm",
		Short: "Load every dataset of every language into the cache",
		Args:  cobra.NoArgs,
		RunE:  runWarm,
	}

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write the spreadsheet ranges into an .xlsx snapshot",
		Long: `export fetches the places, images and videos ranges and writes them
into a workbook that can be served with SHEETS_SOURCE=xlsx.`,
		Args: cobra.NoArgs,
		RunE: runExport,
	}
	exportCmd.Flags().StringVarP(&outputPath, "output", "o", "teerth.xlsx", "Output workbook path")

	rootCmd.AddCommand(warmCmd, exportCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setup(ctx context.Context) (*bootstrap.App, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, err
	}
	logger.Setup(cfg.LogLevel, cfg.LogFormat)
	return bootstrap.New(ctx, cfg)
}

func runWarm(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	app, err := setup(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.Catalog.Warm(ctx); err != nil {
		return fmt.Errorf("warm failed: %w", err)
	}
	if _, err := app.Calendar.GetCalendar(ctx); err != nil {
		log.Warn().Err(err).Msg("calendar_warm_failed")
	}
	log.Info().Msg("warm_done")
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	app, err := setup(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	snapshot, err := app.Catalog.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	if err := sheets.WriteWorkbook(outputPath, snapshot); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	log.Info().Str("output", outputPath).Int("ranges", len(snapshot)).Msg("export_done")
	return nil
}
