package main

import (
	"context"
	"fmt"
	"time"

	"career-ready/internal/config"
	dbpostgres "career-ready/internal/database/postgres"
)

func connectDB(ctx context.Context) (config.Config, *dbpostgres.Pool, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	db, err := dbpostgres.Connect(connectCtx, cfg.Database, logger)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("connect postgres: %w", err)
	}
	return cfg, db, nil
}
