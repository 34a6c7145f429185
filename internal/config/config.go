package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// Config holds settings shared by the command-line tool and the bot. Bot-only
// fields are validated by the bot entry point.
type Config struct {
	Token        string  `env:"TOKEN"`
	AllowedUsers []int64 `env:"ALLOWED_USERS"`
	DBPath       string  `env:"DB_PATH"        envDefault:"db.sqlite"`

	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIModel   string `env:"OPENAI_MODEL"    envDefault:"gpt-5-mini"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`

	ChunkSize          int           `env:"CHUNK_SIZE"          envDefault:"1000"`
	SummaryParallelism int           `env:"SUMMARY_PARALLELISM" envDefault:"1"`
	SummaryCacheSize   int           `env:"SUMMARY_CACHE_SIZE"  envDefault:"256"`
	SummaryCacheTTL    time.Duration `env:"SUMMARY_CACHE_TTL"   envDefault:"1h"`

	TempDir          string        `env:"TEMP_DIR"`
	TempFileTTL      time.Duration `env:"TEMP_FILE_TTL"      envDefault:"1h"`
	MaxDownloadBytes int64         `env:"MAX_DOWNLOAD_BYTES" envDefault:"20971520"`

	LogLevel  slog.Level `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string     `env:"LOG_FORMAT" envDefault:"json"`
}

func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.TempDir == "" {
		cfg.TempDir = os.TempDir()
	}

	if err = cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error

	if c.ChunkSize <= 0 {
		errs = append(errs, errors.New("CHUNK_SIZE must be positive"))
	}
	if c.SummaryParallelism <= 0 {
		errs = append(errs, errors.New("SUMMARY_PARALLELISM must be positive"))
	}
	if c.SummaryCacheSize < 0 {
		errs = append(errs, errors.New("SUMMARY_CACHE_SIZE must not be negative"))
	}
	if c.TempFileTTL <= 0 {
		errs = append(errs, errors.New("TEMP_FILE_TTL must be positive"))
	}
	if c.MaxDownloadBytes <= 0 {
		errs = append(errs, errors.New("MAX_DOWNLOAD_BYTES must be positive"))
	}
	if c.LogFormat != LogFormatJSON && c.LogFormat != LogFormatText {
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be %q or %q", LogFormatJSON, LogFormatText))
	}

	return errors.Join(errs...)
}

// NewLogger builds the process logger. The handler writes to w.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}

	if c.LogFormat == LogFormatText {
		return slog.New(slog.NewTextHandler(w, opts))
	}

	return slog.New(slog.NewJSONHandler(w, opts))
}
