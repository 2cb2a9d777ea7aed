// README: Config loader with env defaults for HTTP, logging, Redis, Kafka, Gemini and Maps settings.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "SHARESTUFF_"

type Config struct {
	HTTP struct {
		Addr string
	}
	Log struct {
		Level  string
		Format string
	}
	Redis struct {
		Addr string
	}
	Kafka struct {
		Brokers []string
		Topic   string
	}
	AI struct {
		GeminiKey  string
		Model      string
		SummaryTTL time.Duration
	}
	Maps struct {
		APIKey string
	}
}

// Load reads the process environment (and a .env file when present).
// Keys are SHARESTUFF_* except the vendor keys GEMINI_API_KEY and
// GOOGLE_MAPS_API_KEY, which keep their conventional names.
func Load() (Config, error) {
	e, err := LoadEnv()
	if err != nil {
		return Config{}, err
	}
	return fromEnv(e)
}

func fromEnv(e *Env) (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = e.String(envPrefix+"HTTP_ADDR", ":8080")
	cfg.Log.Level = e.String(envPrefix+"LOG_LEVEL", "info")
	cfg.Log.Format = e.String(envPrefix+"LOG_FORMAT", "json")
	cfg.Redis.Addr = e.String(envPrefix+"REDIS_ADDR", "")
	cfg.Kafka.Brokers = splitAndTrim(e.String(envPrefix+"KAFKA_BROKERS", ""))
	cfg.Kafka.Topic = e.String(envPrefix+"KAFKA_TOPIC", "sharestuff.events")
	cfg.AI.GeminiKey = e.String("GEMINI_API_KEY", "")
	cfg.AI.Model = e.String(envPrefix+"GEMINI_MODEL", "gemini-2.0-flash")
	cfg.AI.SummaryTTL = e.Duration(envPrefix+"SUMMARY_TTL", 6*time.Hour)
	cfg.Maps.APIKey = e.String("GOOGLE_MAPS_API_KEY", "")
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.HTTP.Addr) == "" {
		return errors.New("http address is required")
	}
	if c.AI.SummaryTTL <= 0 {
		return errors.New("summary ttl must be positive")
	}
	return nil
}

// Env is a snapshot of the process environment with typed, defaulted lookups.
// Tools outside the API (bench, CLIs) share it so env parsing stays in one place.
type Env struct {
	k *koanf.Koanf
}

// LoadEnv snapshots the environment, loading a .env file first when present.
func LoadEnv() (*Env, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}
	return &Env{k: k}, nil
}

// String returns the trimmed value of key, or def when unset or blank.
func (e *Env) String(key, def string) string {
	if v := strings.TrimSpace(e.k.String(key)); v != "" {
		return v
	}
	return def
}

// Bool accepts 1/true/yes (any case) as true; any other set value is false.
func (e *Env) Bool(key string, def bool) bool {
	v := strings.ToLower(strings.TrimSpace(e.k.String(key)))
	if v == "" {
		return def
	}
	return v == "1" || v == "true" || v == "yes"
}

// Int returns def unless key holds a positive integer.
func (e *Env) Int(key string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(e.k.String(key)))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// Duration parses Go durations; bare integers are seconds.
func (e *Env) Duration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(e.k.String(key))
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return def
}

func splitAndTrim(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
