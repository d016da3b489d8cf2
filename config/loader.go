package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. LINK2ITINERARY_GENERATOR_MODEL.
const EnvPrefix = "LINK2ITINERARY"

var defaults = map[string]interface{}{
	"app.name":                       "link2itinerary",
	"app.environment":                "development",
	"server.port":                    3000,
	"server.read_timeout":            "15s",
	"server.write_timeout":           "90s",
	"server.shutdown_timeout":        "10s",
	"server.rate_limit":              2.0,
	"server.rate_burst":              5,
	"server.cors_origins":            []string{"*"},
	"logging.level":                  "info",
	"logging.format":                 "console",
	"fetcher.timeout":                "20s",
	"fetcher.user_agent":             "Mozilla/5.0 (Link2Itinerary MVP)",
	"fetcher.max_body_bytes":         5 << 20,
	"clipper.max_chars":              8000,
	"generator.provider":             "openai",
	"generator.api_key":              "",
	"generator.base_url":             "",
	"generator.model":                "",
	"generator.reasoning_effort":     "low",
	"generator.timeout":              "60s",
	"store.driver":                   "memory",
	"store.redis.address":            "localhost:6379",
	"store.redis.password":           "",
	"store.redis.db":                 0,
	"store.postgres.dsn":             "",
	"store.postgres.max_connections": 10,
	"store.postgres.max_idle":        2,
}

// Load reads configuration. path may name a YAML file; when empty, config.yaml
// is looked up in the working directory and ./configs, and its absence is fine.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := applyWellKnownEnv(&cfg); err != nil {
		return nil, err
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// applyWellKnownEnv honors the unprefixed variables deployments already set.
func applyWellKnownEnv(cfg *Config) error {
	if cfg.Generator.APIKey == "" {
		switch cfg.Generator.Provider {
		case "gemini":
			cfg.Generator.APIKey = os.Getenv("GEMINI_API_KEY")
		default:
			cfg.Generator.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	}

	if port := os.Getenv("PORT"); port != "" && os.Getenv(EnvPrefix+"_SERVER_PORT") == "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", port, err)
		}
		cfg.Server.Port = p
	}
	return nil
}

func validate(cfg *Config) error {
	switch cfg.Generator.Provider {
	case "openai", "gemini":
	default:
		return fmt.Errorf("generator.provider must be openai or gemini, got %q", cfg.Generator.Provider)
	}

	switch cfg.Store.Driver {
	case "memory", "redis":
	case "postgres":
		if cfg.Store.Postgres.DSN == "" {
			return errors.New("store.postgres.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("store.driver must be memory, redis or postgres, got %q", cfg.Store.Driver)
	}

	switch cfg.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", cfg.Logging.Format)
	}

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", cfg.Server.Port)
	}
	if cfg.Clipper.MaxChars <= 0 {
		return fmt.Errorf("clipper.max_chars must be positive, got %d", cfg.Clipper.MaxChars)
	}
	if cfg.Generator.Timeout <= 0 {
		return errors.New("generator.timeout must be positive")
	}

	// A planner response can take a full fetch plus a full generation;
	// the connection has to stay writable until the fallback body is sent.
	if budget := cfg.Fetcher.Timeout + cfg.Generator.Timeout; cfg.Server.WriteTimeout > 0 && cfg.Server.WriteTimeout <= budget {
		return fmt.Errorf("server.write_timeout (%s) must exceed fetcher.timeout + generator.timeout (%s)",
			cfg.Server.WriteTimeout, budget)
	}
	return nil
}
