package main

import (
	"context"
	"log"
	"os"

	"github.com/olivecrm/olivecrm/internal/client/cli"
	"github.com/olivecrm/olivecrm/internal/client/config"
	"github.com/olivecrm/olivecrm/internal/logging"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger := logging.NewZerologLogger(os.Stderr, cfg.LogLevel, true)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
