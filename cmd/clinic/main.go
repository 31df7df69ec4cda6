package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/draccessibility/clinic/internal/config"
	"github.com/draccessibility/clinic/internal/domain/anamnesis"
	"github.com/draccessibility/clinic/internal/domain/prescribing"
	"github.com/draccessibility/clinic/internal/domain/profile"
	"github.com/draccessibility/clinic/internal/domain/records"
	"github.com/draccessibility/clinic/internal/domain/workflow"
	"github.com/draccessibility/clinic/internal/platform/db"
	"github.com/draccessibility/clinic/internal/platform/export"
	"github.com/draccessibility/clinic/internal/platform/importer"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clinic",
		Short: "Offline clinical record keeper",
	}

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the interactive console",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConsole()
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			handle, err := db.Open(ctx, cfg.DatabasePath)
			if err != nil {
				return err
			}
			defer handle.Close()

			if err := db.CreateSchema(ctx, handle); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			fmt.Printf("Schema ready at %s\n", cfg.DatabasePath)
			return nil
		},
	}
}

func runConsole() error {
	// Logger
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	// Database
	ctx := context.Background()
	handle, err := db.Open(ctx, cfg.DatabasePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open database")
	}
	defer handle.Close()

	if err := db.CreateSchema(ctx, handle); err != nil {
		logger.Fatal().Err(err).Msg("failed to create schema")
	}
	logger.Info().Str("path", cfg.DatabasePath).Msg("database ready")

	// Services
	recordsSvc := records.NewService(
		records.NewPatientRepo(handle),
		records.NewConsultationRepo(handle),
	)
	prescribingSvc := prescribing.NewService(
		prescribing.NewPrescriptionRepo(handle),
		prescribing.NewTemplateRepo(handle),
	)
	anamnesisSvc := anamnesis.NewService(anamnesis.NewTemplateRepo(handle))
	profileSvc := profile.NewService(profile.NewRepo(handle))

	pdf := export.NewPDF()
	orch := workflow.NewOrchestrator(
		recordsSvc, prescribingSvc, anamnesisSvc, profileSvc,
		importer.NewExcel(), pdf, logger,
	)

	menu := newMenu(menuDeps{
		orch:        orch,
		records:     recordsSvc,
		prescribing: prescribingSvc,
		anamnesis:   anamnesisSvc,
		profile:     profileSvc,
		pdf:         pdf,
		cfg:         cfg,
	}, os.Stdin, os.Stdout)
	return menu.Run(ctx)
}
