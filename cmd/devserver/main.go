package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/waitlistadmin/internal/devserver"
	"github.com/dmitrijs2005/waitlistadmin/internal/devserver/config"
	"github.com/dmitrijs2005/waitlistadmin/internal/logging"
)

func main() {

	cfg := config.LoadConfig()

	logger, err := logging.New(os.Stdout, cfg.LogLevel, true)
	if err != nil {
		log.Fatalf("%v", err)
	}

	srv, err := devserver.New(cfg, logger)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-sigs
		cancelFunc()
	}()

	if err := srv.Run(ctx); err != nil {
		logger.Error(ctx, err.Error())
	}

}
