package main

import (
	"context"
	"flag"
	"os"

	"bookshelf/internal/config"
	"bookshelf/internal/platform/database"
	"bookshelf/internal/platform/logging"

	"github.com/sirupsen/logrus"
)

func main() {
	command := flag.String("command", "up", "Migration command: up, down, status, version")
	flag.Parse()

	config.LoadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}

	logger, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		logrus.Fatalf("configure logging: %v", err)
	}

	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg.Database())
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := runCommand(ctx, pool, *command, os.Stdout); err != nil {
		logger.Fatal(err)
	}
}
