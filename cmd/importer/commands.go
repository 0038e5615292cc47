package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"provider-match-api/internal/repository"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(
		newImportCmd("providers", "Import provider profiles", "providers", importProviders),
		newImportCmd("reviews", "Import provider reviews", "reviews", importReviews),
		newImportCmd("locations", "Import gazetteer locations used for geocoding", "locations", importLocations),
	)
}

type importFunc func(ctx context.Context, repo *repository.Repository, table string, r io.Reader) (int, error)

func newImportCmd(use, short, table string, run importFunc) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return fmt.Errorf("--file flag is required")
			}

			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("failed to open file: %w", err)
			}
			defer f.Close()

			ctx := cmd.Context()
			repo, closeDB, err := openRepository(ctx)
			if err != nil {
				return err
			}
			defer closeDB()

			fmt.Fprintf(cmd.OutOrStdout(), "Starting %s import from file: %s\n", use, file)
			n, err := run(ctx, repo, table, f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Successfully imported %d %s\n", n, use)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Path to the CSV file to import")
	return cmd
}

func importProviders(ctx context.Context, repo *repository.Repository, table string, r io.Reader) (int, error) {
	providers, err := parseProviders(r)
	if err != nil {
		return 0, fmt.Errorf("parsing CSV: %w", err)
	}
	return len(providers), importRows(ctx, repo, table, len(providers), func(ctx context.Context) (int64, error) {
		return repo.CopyProviders(ctx, providers)
	})
}

func importReviews(ctx context.Context, repo *repository.Repository, table string, r io.Reader) (int, error) {
	reviews, err := parseReviews(r)
	if err != nil {
		return 0, fmt.Errorf("parsing CSV: %w", err)
	}
	return len(reviews), importRows(ctx, repo, table, len(reviews), func(ctx context.Context) (int64, error) {
		return repo.CopyReviews(ctx, reviews)
	})
}

func importLocations(ctx context.Context, repo *repository.Repository, table string, r io.Reader) (int, error) {
	entries, err := parseLocations(r)
	if err != nil {
		return 0, fmt.Errorf("parsing CSV: %w", err)
	}
	return len(entries), importRows(ctx, repo, table, len(entries), func(ctx context.Context) (int64, error) {
		return repo.CopyGazetteer(ctx, entries)
	})
}
