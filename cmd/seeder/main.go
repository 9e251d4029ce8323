// Command seeder loads or clears the fixture data in _data/.
//
//	seeder -i   import bootcamps, courses, users and reviews
//	seeder -d   delete them
package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"

	"github.com/dalemusser/devcamper/internal/app/seed"
	"github.com/dalemusser/devcamper/internal/app/system/timeouts"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	envFile         = "config/config.env"
	defaultDatabase = "devcamper"
	defaultDataDir  = "_data"
)

func main() {
	os.Exit(run())
}

func run() int {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Printf("init logger: %v", err)
		return seed.ExitFailure
	}
	defer func() { _ = logger.Sync() }()

	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("env file not loaded", zap.String("path", envFile), zap.Error(err))
	}

	uri := firstEnv("DEVCAMPER_MONGO_URI", "MONGO_URI")
	if err := wafflemongo.ValidateURI(uri); err != nil {
		logger.Error("invalid mongo uri", zap.Error(err))
		return seed.ExitFailure
	}
	dbName := firstEnv("DEVCAMPER_MONGO_DATABASE")
	if dbName == "" {
		dbName = defaultDatabase
	}
	dataDir := firstEnv("DEVCAMPER_SEED_DIR")
	if dataDir == "" {
		dataDir = defaultDataDir
	}

	timeouts.ConfigureFromEnv()
	ctx := context.Background()

	connectCtx, cancel := context.WithTimeout(ctx, timeouts.Medium())
	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	cancel()
	if err != nil {
		logger.Error("mongo connect failed", zap.Error(err))
		return seed.ExitFailure
	}
	defer func() {
		dctx, cancel := context.WithTimeout(ctx, timeouts.Short())
		defer cancel()
		if err := client.Disconnect(dctx); err != nil {
			logger.Warn("mongo disconnect failed", zap.Error(err))
		}
	}()

	return seed.New(client.Database(dbName), dataDir, logger).Run(ctx, os.Args[1:])
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
