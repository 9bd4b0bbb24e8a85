package main

import (
	"context"
	"os"

	"github.com/footballmoneyball/moneyball/internal/config"
	"github.com/footballmoneyball/moneyball/internal/logger"
	"github.com/footballmoneyball/moneyball/internal/scheduler"
	"github.com/footballmoneyball/moneyball/pkg/api"
	"github.com/footballmoneyball/moneyball/pkg/commentary"
	"github.com/footballmoneyball/moneyball/pkg/predict"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration:", err)
		os.Exit(1)
	}

	logger.SetShowDateTime(true)
	logger.SetLevelName(cfg.LogLevel)
	if cfg.LogFile != "" {
		if err := logger.SetLogFile(cfg.LogFile); err != nil {
			logger.Error("Failed to open log file:", err)
			os.Exit(1)
		}
	}

	logger.Info("Starting football moneyball prediction service")

	modelCfg := predict.DefaultModelConfig()
	modelCfg.CommentaryTimeout = cfg.CommentaryTimeout
	if err := predict.UpdateConfig(modelCfg); err != nil {
		logger.Error("Invalid model configuration:", err)
		os.Exit(1)
	}

	store, err := predict.NewStore(cfg.DatabasePath)
	if err != nil {
		logger.Error("Failed to open store:", err)
		os.Exit(1)
	}
	defer store.Close()

	var provider predict.CommentaryProvider
	if cfg.GeminiAPIKey != "" {
		provider = commentary.NewGeminiClient(cfg.GeminiAPIKey)
		logger.Info("Gemini commentary enabled")
	} else {
		logger.Info("No Gemini API key configured, predictions will carry no analysis")
	}

	predictor := predict.NewPredictor(store, store, provider, store)

	if cfg.EnableScheduler {
		sched := scheduler.New(store, predictor)
		if err := sched.Start(context.Background(), cfg.RefreshCron); err != nil {
			logger.Error("Failed to start scheduler:", err)
			os.Exit(1)
		}
		defer sched.Stop()
	}

	server := api.NewServer(store, predictor)
	if err := server.Start(cfg.ListenAddr); err != nil {
		logger.Error("Server error:", err)
		os.Exit(1)
	}
}
