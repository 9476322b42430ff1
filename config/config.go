package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	UIWeb = "web"
	UITUI = "tui"
)

// Config holds the application configuration
type Config struct {
	DataDir     string `env:"STEPS_DATA_DIR, default=data"`
	SavedDir    string `env:"STEPS_SAVED_DIR, default=data/SavedData"`
	WindowDays  int    `env:"STEPS_WINDOW_DAYS, default=30"`
	UI          string `env:"STEPS_UI, default=web"`
	Port        string `env:"STEPS_PORT, default=8080"`
	OpenBrowser bool   `env:"STEPS_OPEN_BROWSER, default=true"`

	LogFile   string `env:"STEPS_LOG_FILE, default=logs/app.log"`
	LogLevel  string `env:"STEPS_LOG_LEVEL, default=info"`
	LogStdout bool   `env:"STEPS_LOG_STDOUT, default=true"`
}

// Load reads the optional env files, then the process environment.
func Load(ctx context.Context, envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	c.UI = strings.ToLower(c.UI)
	if c.UI != UIWeb && c.UI != UITUI {
		return fmt.Errorf("unknown ui %q, want %s or %s", c.UI, UIWeb, UITUI)
	}
	if c.WindowDays < 1 {
		return fmt.Errorf("window days must be positive, got %d", c.WindowDays)
	}
	// the terminal ui owns stdout
	if c.UI == UITUI {
		c.LogStdout = false
	}
	return nil
}
