package main

import (
	"context"

	"github.com/dayflow-hr/dayflow-backend-go/internal/config"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/database"
)

func connectDB(ctx context.Context) (*database.DB, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{MaxConns: 2, MinConns: 1})
	if err != nil {
		return nil, nil, err
	}
	return db, cfg, nil
}
