package main

import (
	"flag"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sharestuff/internal/config"
)

func TestBindFlags_EnvDefaults(t *testing.T) {
	t.Setenv("SHARESTUFF_BENCH_BASE_URL", "http://api:9000")
	t.Setenv("SHARESTUFF_BENCH_STRICT", "true")
	t.Setenv("SHARESTUFF_BENCH_CONCURRENCY", "8")
	t.Setenv("SHARESTUFF_BENCH_TIMEOUT", "30")
	t.Setenv("SHARESTUFF_BENCH_DURATION", "")
	t.Setenv("SHARESTUFF_REDIS_ADDR", "")

	e, err := config.LoadEnv()
	require.NoError(t, err)

	fs := flag.NewFlagSet("bench", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfg := bindFlags(fs, e)
	require.NoError(t, fs.Parse(nil))

	assert.Equal(t, "http://api:9000", cfg.BaseURL)
	assert.True(t, cfg.Strict)
	assert.Equal(t, 8, cfg.Concurrency)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 10*time.Second, cfg.Duration)
	assert.Empty(t, cfg.RedisAddr)
}

func TestBindFlags_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("SHARESTUFF_BENCH_CONCURRENCY", "8")

	e, err := config.LoadEnv()
	require.NoError(t, err)

	fs := flag.NewFlagSet("bench", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfg := bindFlags(fs, e)
	require.NoError(t, fs.Parse([]string{"-concurrency", "3", "-redis", "localhost:6379"}))

	assert.Equal(t, 3, cfg.Concurrency)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
}

func TestSummarize(t *testing.T) {
	pass, fail, pending, skipped := summarize([]Result{
		{Status: statusPass}, {Status: statusPass}, {Status: statusFail},
		{Status: statusPending}, {Status: statusSkip},
	})
	assert.Equal(t, 2, pass)
	assert.Equal(t, 1, fail)
	assert.Equal(t, 1, pending)
	assert.Equal(t, 1, skipped)
}
