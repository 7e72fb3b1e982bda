package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaredlewiswechs/AdanAgent/internal/governance"
	"github.com/jaredlewiswechs/AdanAgent/internal/reasoner"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ada.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, governance.DefaultThresholds(), cfg.Thresholds())
	assert.Len(t, cfg.MisconceptionPatterns, 12)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeFile(t, `
retry:
  max_retries: 5
cache:
  max_size: 10
  ttl_ms: 2000
governance:
  correct_high: 0.8
providers:
  - name: echo
    transport: http-get
    endpoint: "http://localhost:9000/ask?q={prompt}"
    models: [small, large]
    timeout_ms: 500
misconception_patterns:
  - pattern: "(?i)moon.*cheese"
    probability: 0.9
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Retry.MaxRetries)
	assert.Equal(t, 1000, cfg.Retry.BaseDelayMs, "unset keys keep defaults")
	assert.Equal(t, 10, cfg.Cache.MaxSize)
	assert.Equal(t, 2*time.Second, cfg.CacheTTL())
	assert.InDelta(t, 0.8, cfg.Thresholds().CorrectHigh, 1e-12)
	assert.InDelta(t, 0.5, cfg.Thresholds().FogHigh, 1e-12)

	require.Len(t, cfg.Providers, 1)
	assert.Equal(t, []string{"small", "large"}, cfg.Providers[0].Models)

	require.Len(t, cfg.MisconceptionPatterns, 1)
	pt, err := cfg.PatternTable()
	require.NoError(t, err)
	assert.InDelta(t, 0.9, pt.Estimate("the moon is made of cheese"), 1e-12)
	assert.InDelta(t, 0.15, pt.Estimate("nothing here"), 1e-12)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "cache:\n  max_size: 10\n")
	t.Setenv("ADA_CACHE_MAX_SIZE", "42")
	t.Setenv("ADA_LOGGING_LEVEL", "debug")
	t.Setenv("ADA_GROUNDING_ENABLED", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.Cache.MaxSize)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.WebSearch().Enabled)
}

func TestLoad_EmptyListsFallBackToDefaults(t *testing.T) {
	cfg, err := Load(writeFile(t, "logging:\n  pretty: false\n"))
	require.NoError(t, err)
	assert.Equal(t, Default().Providers, cfg.Providers)
	assert.Len(t, cfg.MisconceptionPatterns, 12)
	assert.False(t, cfg.Logging.Pretty)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad-threshold", "governance:\n  fog_high: 1.5\n"},
		{"bad-transport", "providers:\n  - transport: carrier-pigeon\n    models: [x]\n"},
		{"missing-endpoint", "providers:\n  - transport: http-post\n    models: [x]\n"},
		{"no-models", "providers:\n  - transport: native\n"},
		{"bad-regex", "misconception_patterns:\n  - pattern: \"(unclosed\"\n    probability: 0.5\n"},
		{"zero-retries", "retry:\n  max_retries: 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_UnreadableFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDescriptors_InheritRetry(t *testing.T) {
	cfg := Default()
	cfg.Providers = []ProviderConfig{
		{Name: "a", Transport: "http-post", Endpoint: "http://a", Models: []string{"m"}},
		{Name: "b", Transport: "http-get", Endpoint: "http://b", Models: []string{"m"}, TimeoutMs: 250, MaxRetries: 1, BaseDelayMs: 10},
	}

	ds := cfg.Descriptors()
	require.Len(t, ds, 2)

	assert.Equal(t, reasoner.TransportHTTPPost, ds[0].Transport)
	assert.Equal(t, 20*time.Second, ds[0].Timeout)
	assert.Equal(t, reasoner.RetryPolicy{MaxRetries: 3, BaseDelay: time.Second}, ds[0].Retry)

	assert.Equal(t, 250*time.Millisecond, ds[1].Timeout)
	assert.Equal(t, reasoner.RetryPolicy{MaxRetries: 1, BaseDelay: 10 * time.Millisecond}, ds[1].Retry)
}

func TestWriteDefault_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, WriteDefault(path, false))
	assert.Error(t, WriteDefault(path, false), "existing file is not overwritten")
	require.NoError(t, WriteDefault(path, true))

	cfg, err := Load(path)
	require.NoError(t, err)
	want := Default()
	assert.Equal(t, want.Retry, cfg.Retry)
	assert.Equal(t, want.Cache, cfg.Cache)
	assert.Equal(t, want.Thresholds(), cfg.Thresholds())
	assert.Equal(t, want.Providers, cfg.Providers)
	assert.Equal(t, want.MisconceptionPatterns, cfg.MisconceptionPatterns)
}
