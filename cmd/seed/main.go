package main

import (
	"context"
	"flag"
	"os"

	"bookshelf/internal/book"
	"bookshelf/internal/config"
	"bookshelf/internal/platform/database"
	"bookshelf/internal/platform/logging"

	"github.com/sirupsen/logrus"
)

func main() {
	force := flag.Bool("force", false, "Insert the sample books even if the table is not empty")
	flag.Parse()

	config.LoadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}

	logger, err := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		logrus.Fatalf("configure logging: %v", err)
	}

	ctx := context.Background()
	pool, err := database.Open(ctx, cfg.Database())
	if err != nil {
		logger.Fatalf("Failed to open database: %v", err)
	}
	defer pool.Close()

	inserted, err := book.Seed(ctx, book.NewSQLRepo(pool.DB, cfg.DBQueryTimeout), *force)
	if err != nil {
		logger.Fatalf("Failed to seed books: %v", err)
	}
	logger.WithField("inserted", inserted).Info("seed finished")
}
