package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"provider-match-api/internal/config"
	"provider-match-api/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

var configDir string

var rootCmd = &cobra.Command{
	Use:   "importer",
	Short: "Bulk load providers, reviews and gazetteer locations from CSV",
	Long: `importer reads CSV exports and copies them into PostgreSQL with COPY.
Each table has its own subcommand. The schema is created when missing and
the row count is verified after every import.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "configs", "directory containing app.env")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openRepository connects to the configured database and makes sure the schema exists.
func openRepository(ctx context.Context) (*repository.Repository, func(), error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	pool, err := pgxpool.New(ctx, cfg.DBSource)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to database: %w", err)
	}

	repo := repository.NewRepository(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return repo, pool.Close, nil
}

// importRows copies rows with load and checks that the table grew by exactly the copied amount.
func importRows(ctx context.Context, repo *repository.Repository, table string, expected int, load func(context.Context) (int64, error)) error {
	before, err := repo.Count(ctx, table)
	if err != nil {
		return err
	}

	copied, err := load(ctx)
	if err != nil {
		return err
	}

	after, err := repo.Count(ctx, table)
	if err != nil {
		return err
	}

	if copied != int64(expected) || after-before != int64(expected) {
		return fmt.Errorf("record count mismatch: expected %d, copied %d, table grew by %d", expected, copied, after-before)
	}
	return nil
}
