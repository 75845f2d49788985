package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/app"
	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/logging"
	"github.com/vancomm/minesweeper/internal/mines"
)

var (
	log = logrus.New()

	configPath string
)

func init() {
	const usage = "config file path"
	flag.StringVar(&configPath, "config", "", usage)
	flag.StringVar(&configPath, "c", "", usage+" (shorthand)")
}

func main() {
	mainCtx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	flag.Parse()

	c, err := config.ReadConfig(configPath)
	if err != nil {
		log.Fatal("unable to load config: ", err)
	}

	if err := logging.Setup(log, c.Log, c.Development()); err != nil {
		log.Fatal(err)
	}
	mines.Log = log

	log.Info("starting up, mode = ", c.Mode)
	log.WithFields(c.Fields()).Debug("config")

	a, err := app.New(log, c, nil)
	if err != nil {
		log.Fatal("unable to create app: ", err)
	}

	if err := a.Start(mainCtx); err != nil {
		log.Error("exit reason: ", err)
		os.Exit(1)
	}
	log.Info("shut down")
}
