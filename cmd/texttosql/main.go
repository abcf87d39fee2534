package main

import (
	"errors"
	"io/fs"
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/robineckebracht/TextToSqlDemo/pkg/cmd"
)

func main() {
	l, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Unable to initialize Zap logger: %s", err)
	}
	defer func() { _ = l.Sync() }()

	logger := l.Sugar()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Fatalf("Unable to load .env file: %s", err)
	}

	if err := cmd.Run(logger); err != nil {
		logger.Fatalf("Unable to start TextToSql: %s", err)
	}
}
