package main

import (
	"fmt"

	"career-ready/internal/app"
	"career-ready/internal/config"
	"career-ready/internal/usecase"

	"github.com/spf13/cobra"
)

var (
	rescoreWorkers int
	rescoreRPS     int
)

var rescoreCmd = &cobra.Command{
	Use:   "rescore",
	Short: "Recompute readiness for every student against every active job",
	Long:  "Runs every (student with skills, active job with requirements) pair through a bounded worker pool, then drops cached readiness lists.",
	RunE:  runRescore,
}

func init() {
	rescoreCmd.Flags().IntVarP(&rescoreWorkers, "workers", "w", 4, "Number of concurrent workers")
	rescoreCmd.Flags().IntVar(&rescoreRPS, "rps", 0, "Maximum calculations per second (0 = unlimited)")
	rootCmd.AddCommand(rescoreCmd)
}

func runRescore(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	c, err := app.NewContainer(cfg, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	summary, err := c.Rescore.Run(cmd.Context(), usecase.RescoreOptions{
		Workers: rescoreWorkers,
		RPS:     rescoreRPS,
	})
	if err != nil {
		return err
	}

	if c.Redis.Available() {
		n, err := c.Redis.DeleteByPattern(cmd.Context(), usecase.ReadinessListCachePattern)
		if err != nil {
			logger.Printf("Rescore cache purge failed | err=%v", err)
		} else {
			logger.Printf("Rescore cache purged | keys=%d", n)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(),
		"users=%d jobs=%d scored=%d skipped=%d failed=%d duration=%s\n",
		summary.Users, summary.Jobs, summary.Scored, summary.Skipped, summary.Failed, summary.Duration,
	)
	if summary.Failed > 0 {
		return fmt.Errorf("%d calculation(s) failed", summary.Failed)
	}
	return nil
}
