package main

import (
	"context"
	"log"
	"os"

	"github.com/kspdigital/sociallog-cli/internal/buildinfo"
	"github.com/kspdigital/sociallog-cli/internal/cli"
	"github.com/kspdigital/sociallog-cli/internal/config"
	"github.com/kspdigital/sociallog-cli/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewDefault()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)
}
