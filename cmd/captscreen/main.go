package main

import (
	"fmt"
	"os"

	"github.com/Darksidis/captscreen/config"
	"github.com/Darksidis/captscreen/internal/app"
	"github.com/Darksidis/captscreen/internal/cli"
	"github.com/Darksidis/captscreen/internal/log"
	"github.com/Darksidis/captscreen/internal/output"
)

func main() {
	if err := run(); err != nil {
		formatter := output.NewFormatter(os.Stderr)
		formatter.Error(err.Error())
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log.Configure(log.Config{Level: cfg.LogLevel})

	application, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("initializing app: %w", err)
	}

	deps := &cli.Dependencies{
		App:    application,
		Config: cfg,
	}

	return cli.NewRootCmd(deps).Execute()
}
