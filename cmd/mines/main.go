package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/play"
)

var (
	log = logrus.New()

	size      int
	mineCount int
	debug     bool
)

func init() {
	const (
		defaultSize      = 10
		defaultMineCount = 10
	)
	flag.IntVar(&size, "size", defaultSize, "grid size (the board is size x size)")
	flag.IntVar(&size, "n", defaultSize, "grid size (shorthand)")
	flag.IntVar(&mineCount, "mines", defaultMineCount, "number of mines")
	flag.IntVar(&mineCount, "m", defaultMineCount, "number of mines (shorthand)")
	flag.BoolVar(&debug, "debug", false, "log debug traces to stderr")
}

func setupLogging() {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	log.SetLevel(logrus.WarnLevel)
	if debug {
		log.SetLevel(logrus.DebugLevel)
	}
	mines.Log = log
}

func main() {
	flag.Parse()
	setupLogging()

	board, err := mines.NewBoard(size, mineCount, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "unable to start game:", err)
		os.Exit(1)
	}

	outcome, err := play.New(board, os.Stdin, os.Stdout, log).Run()
	if errors.Is(err, play.ErrAborted) {
		os.Exit(1)
	} else if err != nil {
		log.Fatal(err)
	}
	log.WithField("outcome", outcome).Debug("game over")
}
