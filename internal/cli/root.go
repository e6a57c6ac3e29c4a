// Package cli implements the numerology command line tool.
package cli

import (
	"context"
	"fmt"

	"numerology-workers/internal/common/config"
	"numerology-workers/internal/common/database"
	"numerology-workers/internal/common/logger"
	"numerology-workers/internal/numerology"
	"numerology-workers/internal/profiles"

	"github.com/spf13/cobra"
)

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// ProfileStore is what the profile and evaluation commands need from storage.
type ProfileStore interface {
	Get(ctx context.Context, userID string) (*numerology.Profile, error)
	Save(ctx context.Context, userID string, p numerology.Profile) error
	ListEvaluations(ctx context.Context, userID string, limit int) ([]profiles.EvaluationRecord, error)
}

// StoreOpener connects to storage and returns a release func.
type StoreOpener func(ctx context.Context, opts *RootOptions) (ProfileStore, func(), error)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Format     string
	ConfigPath string

	// OpenStore is replaced in tests.
	OpenStore StoreOpener
	// Migrate is replaced in tests.
	Migrate func(ctx context.Context, opts *RootOptions) ([]database.MigrationResult, error)
}

// NewRootCommand creates the root command.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{OpenStore: openStore, Migrate: migrate})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "numerology",
		Short: "Score professions against numerology profiles",
		Long: `Offline access to the aptitude scoring engine used by the workers,
plus maintenance commands for stored profiles and the activity registry.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default configs/config.yaml)")

	cmd.AddCommand(newScoreCommand(opts))
	cmd.AddCommand(newIdealCommand(opts))
	cmd.AddCommand(newProfileCommand(opts))
	cmd.AddCommand(newEvaluationsCommand(opts))
	cmd.AddCommand(newRegistryCommand(opts))
	cmd.AddCommand(newMigrateCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

func loadConfig(opts *RootOptions) (*config.Config, error) {
	if opts.ConfigPath != "" {
		return config.LoadFromFile(opts.ConfigPath)
	}
	return config.Load()
}

func openStore(ctx context.Context, opts *RootOptions) (ProfileStore, func(), error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, nil, err
	}

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		return nil, nil, err
	}
	if err := pg.Ping(ctx); err != nil {
		pg.Close()
		return nil, nil, err
	}

	var cache *database.RedisClient
	if cfg.Numerology.CacheTTL() > 0 {
		cache = database.NewRedis(cfg.Database.Redis)
	}

	release := func() {
		if cache != nil {
			cache.Close()
		}
		pg.Close()
	}
	return profiles.NewStore(pg, cache, cfg.Numerology.CacheTTL(), logger.NewNoOpLogger()), release, nil
}

func migrate(ctx context.Context, opts *RootOptions) ([]database.MigrationResult, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		return nil, err
	}
	defer pg.Close()
	return pg.Migrate(ctx)
}
