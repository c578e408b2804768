package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ErrMissingAPIKey is the startup-fatal configuration error raised when no
// Finnhub credential is configured.
var ErrMissingAPIKey = errors.New("finnhub api key is not set (FINNHUB_API_KEY)")

const envPrefix = "SENTIMENT"

type Server struct {
	Port              string `mapstructure:"port"`
	RequestTimeoutSec int    `mapstructure:"request_timeout_sec"`
}

type Finnhub struct {
	APIKey                string `mapstructure:"api_key"`
	Endpoint              string `mapstructure:"endpoint"`
	MaxRequestsPerMinute  int    `mapstructure:"max_requests_per_minute"`
	MinRequestIntervalSec int    `mapstructure:"min_request_interval_sec"`
	Burst                 int    `mapstructure:"burst"`
	CallTimeoutSec        int    `mapstructure:"call_timeout_sec"`
	MaxNewsItems          int    `mapstructure:"max_news_items"`
}

type Pipeline struct {
	Tickers        []string `mapstructure:"tickers"`
	LookbackDays   int      `mapstructure:"lookback_days"`
	MaxConcurrency int      `mapstructure:"max_concurrency"`
}

type Cache struct {
	TTLSeconds int `mapstructure:"ttl_sec"`
}

type Snapshot struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir"`
}

type Logging struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // text or json
}

type Config struct {
	Server   Server   `mapstructure:"server"`
	Finnhub  Finnhub  `mapstructure:"finnhub"`
	Pipeline Pipeline `mapstructure:"pipeline"`
	Cache    Cache    `mapstructure:"cache"`
	Snapshot Snapshot `mapstructure:"snapshot"`
	Logging  Logging  `mapstructure:"logging"`
}

func Default() Config {
	return Config{
		Server: Server{Port: "8080", RequestTimeoutSec: 60},
		Finnhub: Finnhub{
			Endpoint:             "https://finnhub.io/api/v1",
			MaxRequestsPerMinute: 60,
			Burst:                10,
			CallTimeoutSec:       10,
			MaxNewsItems:         50,
		},
		Pipeline: Pipeline{
			Tickers:        []string{"AAPL", "MSFT", "GOOGL", "AMZN", "META", "TSLA", "NVDA"},
			LookbackDays:   7,
			MaxConcurrency: 4,
		},
		Cache:    Cache{TTLSeconds: 3600},
		Snapshot: Snapshot{Enabled: true, Dir: "cache"},
		Logging:  Logging{Level: "info", Format: "text"},
	}
}

// Load reads config from path (JSON or YAML by extension). If path is empty,
// config.json in the working directory is used when present, otherwise
// defaults. SENTIMENT_<SECTION>_<KEY> variables override file values and
// FINNHUB_API_KEY overrides the credential.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		if _, err := os.Stat("config.json"); err == nil {
			path = "config.json"
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return Default(), fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Default(), fmt.Errorf("parse config: %w", err)
	}
	applyEnv(&cfg)
	return cfg, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.request_timeout_sec", d.Server.RequestTimeoutSec)

	v.SetDefault("finnhub.api_key", d.Finnhub.APIKey)
	v.SetDefault("finnhub.endpoint", d.Finnhub.Endpoint)
	v.SetDefault("finnhub.max_requests_per_minute", d.Finnhub.MaxRequestsPerMinute)
	v.SetDefault("finnhub.min_request_interval_sec", d.Finnhub.MinRequestIntervalSec)
	v.SetDefault("finnhub.burst", d.Finnhub.Burst)
	v.SetDefault("finnhub.call_timeout_sec", d.Finnhub.CallTimeoutSec)
	v.SetDefault("finnhub.max_news_items", d.Finnhub.MaxNewsItems)

	v.SetDefault("pipeline.tickers", d.Pipeline.Tickers)
	v.SetDefault("pipeline.lookback_days", d.Pipeline.LookbackDays)
	v.SetDefault("pipeline.max_concurrency", d.Pipeline.MaxConcurrency)

	v.SetDefault("cache.ttl_sec", d.Cache.TTLSeconds)

	v.SetDefault("snapshot.enabled", d.Snapshot.Enabled)
	v.SetDefault("snapshot.dir", d.Snapshot.Dir)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
}

// applyEnv reads the unprefixed variables the service has always honoured.
func applyEnv(cfg *Config) {
	if v := os.Getenv("FINNHUB_API_KEY"); v != "" {
		cfg.Finnhub.APIKey = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	cfg.Pipeline.Tickers = normalizeList(cfg.Pipeline.Tickers)
}

// normalizeList flattens comma-joined entries, which is how list values
// arrive from the environment.
func normalizeList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		for _, p := range strings.Split(s, ",") {
			p = strings.TrimSpace(p)
			if p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

// Validate reports configuration that must stop the process before any
// pipeline is built.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Finnhub.APIKey) == "" {
		return ErrMissingAPIKey
	}
	if c.Pipeline.LookbackDays <= 0 {
		return fmt.Errorf("pipeline.lookback_days must be positive, got %d", c.Pipeline.LookbackDays)
	}
	if c.Pipeline.MaxConcurrency <= 0 {
		return fmt.Errorf("pipeline.max_concurrency must be positive, got %d", c.Pipeline.MaxConcurrency)
	}
	if len(c.Pipeline.Tickers) == 0 {
		return errors.New("pipeline.tickers must not be empty")
	}
	return nil
}

func (c Finnhub) CallTimeout() time.Duration {
	return time.Duration(c.CallTimeoutSec) * time.Second
}

func (c Finnhub) MinInterval() time.Duration {
	return time.Duration(c.MinRequestIntervalSec) * time.Second
}

func (c Cache) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

func (c Server) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSec) * time.Second
}
