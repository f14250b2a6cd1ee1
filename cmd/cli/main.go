package main

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/dmitrijs2005/profilesync/internal/client/cli"
	"github.com/dmitrijs2005/profilesync/internal/client/config"
	"github.com/joho/godotenv"
)

func main() {

	// a local .env is optional
	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}
	defer app.Close()

	if err := app.Run(ctx, os.Args[1:]); err != nil {
		log.Printf("%v", err)
		if errors.Is(err, cli.ErrUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}

}
