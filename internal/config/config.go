package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/arloliu/galacticbuf/encoding"
	"github.com/arloliu/galacticbuf/errs"
	"github.com/arloliu/galacticbuf/format"
)

const (
	DefaultName     = "galacticbuf"
	DefaultAddr     = ":8080"
	DefaultLogLevel = "info"
	DefaultTokenTTL = 24 * time.Hour
)

// ServerConfig is the runtime configuration of the HTTP service.
type ServerConfig struct {
	Name             string
	Addr             string
	LogLevel         string
	LogFormat        string
	TokenSecret      string
	TokenTTL         time.Duration
	MaxDepth         int
	CorsOrigins      []string
	ResponseEncoding format.CompressionType
}

type fileConfig struct {
	Name             string   `toml:"name"`
	Addr             string   `toml:"addr"`
	LogLevel         string   `toml:"log_level"`
	LogFormat        string   `toml:"log_format"`
	TokenSecret      string   `toml:"token_secret"`
	TokenTTL         string   `toml:"token_ttl"`
	MaxDepth         int      `toml:"max_depth"`
	CorsOrigins      []string `toml:"cors_origins"`
	ResponseEncoding string   `toml:"response_encoding"`
}

// Default returns the configuration used when no file is given.
func Default() ServerConfig {
	return ServerConfig{
		Name:             DefaultName,
		Addr:             DefaultAddr,
		LogLevel:         DefaultLogLevel,
		LogFormat:        "console",
		TokenTTL:         DefaultTokenTTL,
		MaxDepth:         encoding.DefaultMaxDepth,
		ResponseEncoding: format.CompressionNone,
	}
}

// Load reads a TOML file over the defaults and validates the result.
// An empty path yields the validated defaults.
func Load(path string) (ServerConfig, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, Validate(cfg)
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return ServerConfig{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}

	if meta.IsDefined("name") {
		cfg.Name = strings.TrimSpace(raw.Name)
	}
	if meta.IsDefined("addr") {
		cfg.Addr = strings.TrimSpace(raw.Addr)
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(raw.LogLevel))
	}
	if meta.IsDefined("log_format") {
		cfg.LogFormat = strings.ToLower(strings.TrimSpace(raw.LogFormat))
	}
	if meta.IsDefined("token_secret") {
		cfg.TokenSecret = raw.TokenSecret
	}
	if meta.IsDefined("token_ttl") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.TokenTTL))
		if err != nil {
			return ServerConfig{}, fmt.Errorf("%w: parse token_ttl: %w", errs.ErrInvalidConfig, err)
		}
		cfg.TokenTTL = d
	}
	if meta.IsDefined("max_depth") {
		cfg.MaxDepth = raw.MaxDepth
	}
	if meta.IsDefined("cors_origins") {
		cfg.CorsOrigins = normalizeOrigins(raw.CorsOrigins)
	}
	if meta.IsDefined("response_encoding") {
		ct, ok := format.ParseContentEncoding(strings.ToLower(strings.TrimSpace(raw.ResponseEncoding)))
		if !ok {
			return ServerConfig{}, fmt.Errorf("%w: unknown response_encoding %q", errs.ErrInvalidConfig, raw.ResponseEncoding)
		}
		cfg.ResponseEncoding = ct
	}

	if err := Validate(cfg); err != nil {
		return ServerConfig{}, err
	}

	return cfg, nil
}

// Validate reports the first invalid setting wrapped in errs.ErrInvalidConfig.
func Validate(cfg ServerConfig) error {
	if strings.TrimSpace(cfg.Name) == "" {
		return fmt.Errorf("%w: missing name", errs.ErrInvalidConfig)
	}
	if strings.TrimSpace(cfg.Addr) == "" {
		return fmt.Errorf("%w: missing addr", errs.ErrInvalidConfig)
	}
	switch cfg.LogLevel {
	case "trace", "debug", "info", "warn", "error", "disabled":
	default:
		return fmt.Errorf("%w: unknown log_level %q", errs.ErrInvalidConfig, cfg.LogLevel)
	}
	switch cfg.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("%w: unknown log_format %q", errs.ErrInvalidConfig, cfg.LogFormat)
	}
	if cfg.TokenTTL < 0 {
		return fmt.Errorf("%w: negative token_ttl", errs.ErrInvalidConfig)
	}
	if cfg.MaxDepth < 1 {
		return fmt.Errorf("%w: max_depth must be >= 1, got %d", errs.ErrInvalidConfig, cfg.MaxDepth)
	}
	if cfg.ResponseEncoding.ContentEncoding() == "identity" && cfg.ResponseEncoding != format.CompressionNone {
		return fmt.Errorf("%w: unknown response encoding %s", errs.ErrInvalidConfig, cfg.ResponseEncoding)
	}

	return nil
}

func normalizeOrigins(in []string) []string {
	out := make([]string, 0, len(in))
	for _, origin := range in {
		v := strings.TrimSpace(origin)
		if v == "" {
			continue
		}
		out = append(out, v)
	}

	return out
}
