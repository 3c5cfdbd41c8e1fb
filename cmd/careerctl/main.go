// Command careerctl runs operator tasks against the career-ready database.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "careerctl",
	Short:         "career-ready operator CLI",
	Long:          "careerctl applies migrations, seeds reference data, recomputes readiness scores and issues development tokens.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var logger = log.New(os.Stderr, "", log.LstdFlags|log.LUTC)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
