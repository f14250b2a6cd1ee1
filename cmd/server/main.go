package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/profilesync/internal/logging"
	"github.com/dmitrijs2005/profilesync/internal/server"
	"github.com/dmitrijs2005/profilesync/internal/server/config"
	"github.com/joho/godotenv"
)

func main() {

	// a local .env is optional
	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := logging.New(cfg.Env, os.Stdout)

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "app init failed", logging.Err(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		os.Exit(1)
	}

}
