package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration. Model calibration lives in
// pkg/predict; this covers only the deployment surface.
type Config struct {
	// HTTP
	ListenAddr string `envconfig:"LISTEN_ADDR" default:":8080"`

	// Storage
	DatabasePath string `envconfig:"DATABASE_PATH" default:"moneyball.db"`

	// Gemini commentary. An empty key disables the collaborator entirely;
	// predictions then carry no analysis text.
	GeminiAPIKey      string        `envconfig:"GEMINI_API_KEY" default:""`
	CommentaryTimeout time.Duration `envconfig:"COMMENTARY_TIMEOUT" default:"15s"`

	// Scheduler
	EnableScheduler bool   `envconfig:"ENABLE_SCHEDULER" default:"true"`
	RefreshCron     string `envconfig:"REFRESH_CRON" default:"0 2 * * *"`

	// Logging
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	LogFile  string `envconfig:"LOG_FILE" default:""`
}

// Load reads configuration from the environment, consulting a .env file
// first when one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}

	if cfg.CommentaryTimeout <= 0 {
		return nil, fmt.Errorf("COMMENTARY_TIMEOUT must be positive, got %s", cfg.CommentaryTimeout)
	}

	return &cfg, nil
}
