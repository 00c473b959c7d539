package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/ruthvic2255/cycle-companion/data"
	"github.com/ruthvic2255/cycle-companion/internal/config"
	"github.com/ruthvic2255/cycle-companion/internal/database"
	"github.com/ruthvic2255/cycle-companion/internal/logging"
	"github.com/ruthvic2255/cycle-companion/internal/services"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var seedFile string

// seedCmd upserts catalog rows
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Upsert catalog rows from a YAML file",
	Long: `Upsert catalog rows in one transaction. Videos match on title and foods
on name; a matched row is replaced by the file's version. Without -f the
catalog built into the binary is seeded.

Seeding writes through the user pool (DB_USER) because the catalog pool
is read-only.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "catalog YAML file")
}

func runSeed(cmd *cobra.Command, args []string) error {
	raw := data.Catalog
	if seedFile != "" {
		var err error
		if raw, err = os.ReadFile(seedFile); err != nil {
			return fmt.Errorf("failed to read %s: %w", seedFile, err)
		}
	}

	catalog, err := decodeCatalog(raw)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.AppEnv)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.ConnectUser(cfg, logger)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if cfg.DBAutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	result, err := services.SeedCatalog(cmd.Context(), db, catalog)
	if err != nil {
		return err
	}

	logger.Info("Catalog seeded",
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated))
	fmt.Fprintf(cmd.OutOrStdout(), "created %d, updated %d\n", result.Created, result.Updated)
	return nil
}

// decodeCatalog rejects unknown keys so a typo never silently drops a field
func decodeCatalog(raw []byte) (services.Catalog, error) {
	var catalog services.Catalog
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&catalog); err != nil {
		return services.Catalog{}, fmt.Errorf("invalid catalog: %w", err)
	}
	return catalog, nil
}
