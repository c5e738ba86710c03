// Command coursectl is an operator CLI for the course catalog service.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aosora/coursehub/internal/bootstrap"
)

// Version information (set at build time).
var Version = "0.1.0"

var cfgFile string

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "coursectl",
		Short:   "Operator tooling for the course catalog service",
		Version: Version,

		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./configs/config.yaml)")

	rootCmd.AddCommand(newSyncCommand())

	return rootCmd
}

// newSyncCommand creates the sync subcommand, which fetches a catalog
// snapshot for one academic year and reconciles it against the database.
func newSyncCommand() *cobra.Command {
	var (
		year  int
		force bool
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Synchronize one catalog year into the database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if year <= 0 {
				return fmt.Errorf("a positive --year is required")
			}

			cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			dbPool, err := bootstrap.SetupDatabase(cfg, lgr)
			if err != nil {
				return fmt.Errorf("failed to setup database: %w", err)
			}
			defer dbPool.Close()

			deps, err := bootstrap.BuildDependencies(cfg, dbPool, lgr)
			if err != nil {
				return fmt.Errorf("failed to setup dependencies: %w", err)
			}

			ctx := cmd.Context()
			records, err := deps.CatalogClient.FetchCatalog(ctx, year)
			if err != nil {
				return fmt.Errorf("failed to fetch catalog for year %d: %w", year, err)
			}

			result, err := deps.SyncService.Sync(ctx, year, records, force)
			if err != nil {
				return fmt.Errorf("synchronization failed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Synchronized year %d: %d inserted, %d updated\n",
				year, len(result.InsertedCourses), len(result.UpdatedCourses))
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Academic year to synchronize")
	cmd.Flags().BoolVar(&force, "force", false, "Update courses even when the stored copy is newer")

	return cmd
}

func main() {
	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
