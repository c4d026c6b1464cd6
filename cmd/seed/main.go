package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"yadisk/internal/bootstrap"
	"yadisk/internal/config"
	models "yadisk/internal/domain/models/disk"
	diskSvc "yadisk/internal/domain/services/disk"
	"yadisk/internal/seed"
)

func main() {
	if err := newSeedCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newSeedCommand() *cobra.Command {
	var dropFirst bool

	cmd := &cobra.Command{
		Use:           "yadisk-seed <batches.yaml>",
		Short:         "Apply import batches from a YAML file",
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			if cfg.Environment == "prod" && dropFirst {
				return fmt.Errorf("refusing to drop data in production")
			}

			logger, closer := config.SetupLogger(cfg, os.Stdout)
			defer closer.Close()

			batches, err := seed.LoadFile(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			store, err := bootstrap.OpenStore(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer store.Close()

			if dropFirst {
				if err := store.Drop(ctx); err != nil {
					return err
				}
			}
			if err := store.Migrate(ctx); err != nil {
				return err
			}

			services := store.NewServices(cfg, logger)
			applied, err := applyBatches(ctx, services.Import, batches)
			if err != nil {
				return err
			}

			logger.Info("seed complete", "batches", applied, "file", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&dropFirst, "drop", false, "drop the registry tables before seeding")
	return cmd
}

func applyBatches(ctx context.Context, imports diskSvc.ImportService, batches []seed.Batch) (int, error) {
	for i, batch := range batches {
		date, err := models.ParseTimestamp(batch.UpdateDate)
		if err != nil {
			return i, fmt.Errorf("batch %d: %w", i, err)
		}
		req := &diskSvc.ImportRequest{UpdateDate: date, Items: batch.Items}
		if err := imports.Import(ctx, req); err != nil {
			return i, fmt.Errorf("batch %d: %w", i, err)
		}
	}
	return len(batches), nil
}
