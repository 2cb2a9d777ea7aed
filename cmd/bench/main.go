// README: Benchmark runner for the ShareStuff API; executes HTTP/Redis checks and prints results.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"sharestuff/internal/config"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	bench := NewRunner(cfg)
	results := bench.RunAll(ctx)

	fmt.Println("\n== Summary ==")
	pass, fail, pending, skipped := summarize(results)
	fmt.Printf("PASS=%d FAIL=%d PENDING=%d SKIP=%d\n", pass, fail, pending, skipped)

	if cfg.Strict && (fail > 0 || pending > 0) {
		os.Exit(1)
	}
	if fail > 0 {
		os.Exit(1)
	}
}

func summarize(results []Result) (pass, fail, pending, skipped int) {
	for _, r := range results {
		switch r.Status {
		case statusPass:
			pass++
		case statusFail:
			fail++
		case statusPending:
			pending++
		case statusSkip:
			skipped++
		}
	}
	return
}

type Config struct {
	BaseURL     string
	RedisAddr   string
	Strict      bool
	Timeout     time.Duration
	Concurrency int
	Duration    time.Duration
}

func loadConfig() (Config, error) {
	e, err := config.LoadEnv()
	if err != nil {
		return Config{}, err
	}
	fs := flag.NewFlagSet("bench", flag.ExitOnError)
	cfg := bindFlags(fs, e)
	if err := fs.Parse(os.Args[1:]); err != nil {
		return Config{}, err
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return *cfg, nil
}

// bindFlags registers the bench flags with environment-backed defaults.
func bindFlags(fs *flag.FlagSet, e *config.Env) *Config {
	cfg := &Config{}
	fs.StringVar(&cfg.BaseURL, "base-url", e.String("SHARESTUFF_BENCH_BASE_URL", "http://localhost:8080"), "API base URL")
	fs.StringVar(&cfg.RedisAddr, "redis", e.String("SHARESTUFF_REDIS_ADDR", ""), "Redis address (empty skips the cache check)")
	fs.BoolVar(&cfg.Strict, "strict", e.Bool("SHARESTUFF_BENCH_STRICT", false), "Fail on pending tests")
	fs.DurationVar(&cfg.Timeout, "timeout", e.Duration("SHARESTUFF_BENCH_TIMEOUT", 60*time.Second), "Total timeout")
	fs.IntVar(&cfg.Concurrency, "concurrency", e.Int("SHARESTUFF_BENCH_CONCURRENCY", 20), "Concurrency for load tests")
	fs.DurationVar(&cfg.Duration, "duration", e.Duration("SHARESTUFF_BENCH_DURATION", 10*time.Second), "Duration for load tests")
	return cfg
}
