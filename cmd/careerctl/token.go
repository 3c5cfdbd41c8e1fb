package main

import (
	"fmt"
	"time"

	"career-ready/internal/config"
	"career-ready/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	tokenUserID string
	tokenEmail  string
	tokenTTL    time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an access token for local testing",
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().StringVarP(&tokenUserID, "user", "u", "", "User id (UUID, required)")
	tokenCmd.Flags().StringVarP(&tokenEmail, "email", "e", "", "Optional email claim")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "Token lifetime (defaults to JWT_ACCESS_EXPIRES_IN)")
	if err := tokenCmd.MarkFlagRequired("user"); err != nil {
		panic(fmt.Sprintf("failed to mark user flag as required: %v", err))
	}
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	userID, err := uuid.Parse(tokenUserID)
	if err != nil {
		return fmt.Errorf("invalid --user: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	ttl := cfg.JWT.AccessExpiresIn
	if tokenTTL > 0 {
		ttl = tokenTTL
	}

	svc := jwt.NewHMACService(cfg.JWT.AccessSecret, ttl, cfg.JWT.Issuer)
	token, err := svc.GenerateAccessToken(userID, tokenEmail)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
