package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/waitlistadmin/internal/client/cli"
	"github.com/dmitrijs2005/waitlistadmin/internal/client/config"
	"github.com/dmitrijs2005/waitlistadmin/internal/logging"
)

func main() {

	cfg := config.LoadConfig()

	logger, err := logging.New(os.Stderr, cfg.LogLevel, false)
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}

}
