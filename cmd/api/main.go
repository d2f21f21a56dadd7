package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"e2pred/adapters/httpapi"
	"e2pred/app"
	"e2pred/domain/empirical"
	"e2pred/internal"
	"e2pred/internal/config"
)

func main() {
	_ = godotenv.Load()

	logger := internal.NewDefaultLogger()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	service := app.NewAnalysisService(logger, empirical.Config{
		NBootstrap: cfg.Analysis.NBootstrap,
		CILevel:    cfg.Analysis.CILevel,
		Seed:       cfg.Analysis.Seed,
		Workers:    cfg.Analysis.Workers,
	})

	server := httpapi.NewServer(service, logger)
	if err := server.ListenAndServe(":" + cfg.Server.Port); err != nil {
		logger.Error("server failed: %v", err)
		os.Exit(1)
	}
}
