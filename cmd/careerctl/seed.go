package main

import (
	"fmt"

	"career-ready/internal/database/seeder"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Upsert the skill catalog and sample job roles",
	Long:  "Seeding is idempotent: skills, job roles and their requirements are upserted by natural key.",
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	_, db, err := connectDB(cmd.Context())
	if err != nil {
		return err
	}
	defer db.Close()

	applied, err := seeder.Runner{Seeders: seeder.Defaults(), Logger: logger}.Run(cmd.Context(), db)
	if err != nil {
		return err
	}
	for _, a := range applied {
		fmt.Fprintf(cmd.OutOrStdout(), "%-10s %d row(s)\n", a.Name, a.Rows)
	}
	return nil
}
