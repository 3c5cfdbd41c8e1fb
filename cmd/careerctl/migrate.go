package main

import (
	"fmt"

	"career-ready/internal/database/migration"

	"github.com/spf13/cobra"
)

var migrateDir string

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending SQL migrations",
	RunE:  runMigrate,
}

func init() {
	migrateCmd.Flags().StringVarP(&migrateDir, "dir", "d", "", "Migrations directory (defaults to MIGRATIONS_DIR or ./migrations)")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, db, err := connectDB(cmd.Context())
	if err != nil {
		return err
	}
	defer db.Close()

	dir := migrateDir
	if dir == "" {
		dir = cfg.App.MigrationsDir
	}

	res, err := migration.Runner{Dir: dir, Logger: logger}.Run(cmd.Context(), db)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	for _, name := range res.Applied {
		fmt.Fprintf(cmd.OutOrStdout(), "applied %s\n", name)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "schema at version %d (%d new)\n", res.Version, len(res.Applied))
	return nil
}
