package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/polyglot/internal/client/cli"
	"github.com/dmitrijs2005/polyglot/internal/client/config"
	"github.com/dmitrijs2005/polyglot/internal/flagx"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	args := flagx.StripArgs(os.Args[1:], config.FlagNames)
	if err := app.Run(ctx, args); err != nil {
		if errors.Is(err, cli.ErrUsage) {
			os.Exit(2)
		}
		log.Fatalf("%v", err)
	}
}
