// Command seed loads the body part, muscle test and exercise catalog from a YAML
// fixture into MongoDB.
package main

import (
	"alcyxob/physio-app/internal/config"
	"alcyxob/physio-app/internal/repository/mongo"
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		catalogFile string
		configPath  string
		withIndexes bool
		timeout     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the reference catalog into MongoDB",
		Long: `seed reads a YAML catalog of body parts, their muscle tests and the exercises
of each test, and upserts it into the configured database. Existing rows with the
same ids are replaced, so the command can be re-run after editing the file.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(catalogFile)
			if err != nil {
				return fmt.Errorf("open catalog: %w", err)
			}
			defer f.Close()

			catalog, err := mongo.LoadCatalog(f)
			if err != nil {
				return err
			}

			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			client, err := mongo.ConnectDB(cfg.Database.URI)
			if err != nil {
				return fmt.Errorf("connect to MongoDB: %w", err)
			}
			defer func() {
				if err := mongo.DisconnectDB(client); err != nil {
					slog.Error("Failed to disconnect MongoDB", "error", err)
				}
			}()
			db := client.Database(cfg.Database.Name)

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			if withIndexes {
				mongo.EnsureIndexes(ctx, db)
			}

			result, err := mongo.SeedCatalog(ctx, db, catalog)
			if err != nil {
				return err
			}
			slog.Info("Catalog seeded",
				"database", cfg.Database.Name,
				"body_parts", result.BodyParts,
				"muscle_tests", result.MuscleTests,
				"exercises", result.Exercises,
				"images", result.Images,
			)
			return nil
		},
	}

	cmd.Flags().StringVarP(&catalogFile, "file", "f", "catalog.yaml", "path to the YAML catalog")
	cmd.Flags().StringVar(&configPath, "config", ".", "directory containing config.yaml")
	cmd.Flags().BoolVar(&withIndexes, "indexes", true, "create collection indexes before seeding")
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall deadline for the seed run")
	return cmd
}
