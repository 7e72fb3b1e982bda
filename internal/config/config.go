// Package config loads the Ada configuration surface from YAML, ADA_*
// environment variables and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/jaredlewiswechs/AdanAgent/internal/governance"
	"github.com/jaredlewiswechs/AdanAgent/internal/logging"
	"github.com/jaredlewiswechs/AdanAgent/internal/reasoner"
	"github.com/jaredlewiswechs/AdanAgent/internal/websearch"
)

// EnvPrefix prefixes every environment override, e.g. ADA_CACHE_MAX_SIZE.
const EnvPrefix = "ADA"

// Config is the full configuration. Durations are integer milliseconds.
type Config struct {
	Retry                 RetryConfig              `mapstructure:"retry" yaml:"retry"`
	Cache                 CacheConfig              `mapstructure:"cache" yaml:"cache"`
	Governance            GovernanceConfig         `mapstructure:"governance" yaml:"governance"`
	Providers             []ProviderConfig         `mapstructure:"providers" yaml:"providers"`
	MisconceptionPatterns []governance.PatternRule `mapstructure:"misconception_patterns" yaml:"misconception_patterns"`
	Grounding             GroundingConfig          `mapstructure:"grounding" yaml:"grounding"`
	Codec                 CodecConfig              `mapstructure:"codec" yaml:"codec"`
	Store                 StoreConfig              `mapstructure:"store" yaml:"store"`
	Logging               LoggingConfig            `mapstructure:"logging" yaml:"logging"`
}

// RetryConfig is the default policy for providers that set none.
type RetryConfig struct {
	MaxRetries  int `mapstructure:"max_retries" yaml:"max_retries"`
	BaseDelayMs int `mapstructure:"base_delay_ms" yaml:"base_delay_ms"`
	TimeoutMs   int `mapstructure:"timeout_ms" yaml:"timeout_ms"`
}

// CacheConfig bounds the reasoner reply cache.
type CacheConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	MaxSize int  `mapstructure:"max_size" yaml:"max_size"`
	TTLMs   int  `mapstructure:"ttl_ms" yaml:"ttl_ms"`
}

// GovernanceConfig holds the calculus thresholds.
type GovernanceConfig struct {
	MisconceptionHigh         float64 `mapstructure:"misconception_high" yaml:"misconception_high"`
	FogHigh                   float64 `mapstructure:"fog_high" yaml:"fog_high"`
	CorrectHigh               float64 `mapstructure:"correct_high" yaml:"correct_high"`
	RatioYellowMin            float64 `mapstructure:"ratio_yellow_min" yaml:"ratio_yellow_min"`
	RatioRedMin               float64 `mapstructure:"ratio_red_min" yaml:"ratio_red_min"`
	GroundFloor               float64 `mapstructure:"ground_floor" yaml:"ground_floor"`
	FallbackCorrectness       float64 `mapstructure:"fallback_correctness" yaml:"fallback_correctness"`
	FallbackMisconceptionHigh float64 `mapstructure:"fallback_misconception_high" yaml:"fallback_misconception_high"`
	FallbackMisconceptionLow  float64 `mapstructure:"fallback_misconception_low" yaml:"fallback_misconception_low"`
	TrajectorySamples         int     `mapstructure:"trajectory_samples" yaml:"trajectory_samples"`
	ClosureTolerance          float64 `mapstructure:"closure_tolerance" yaml:"closure_tolerance"`
}

// ProviderConfig describes one link of the provider chain. Zero retry and
// timeout fields inherit from RetryConfig.
type ProviderConfig struct {
	Name        string            `mapstructure:"name" yaml:"name"`
	Transport   string            `mapstructure:"transport" yaml:"transport"`
	Endpoint    string            `mapstructure:"endpoint" yaml:"endpoint,omitempty"`
	Models      []string          `mapstructure:"models" yaml:"models"`
	TimeoutMs   int               `mapstructure:"timeout_ms" yaml:"timeout_ms,omitempty"`
	MaxRetries  int               `mapstructure:"max_retries" yaml:"max_retries,omitempty"`
	BaseDelayMs int               `mapstructure:"base_delay_ms" yaml:"base_delay_ms,omitempty"`
	Headers     map[string]string `mapstructure:"headers" yaml:"headers,omitempty"`
}

// GroundingConfig controls web-search grounding.
type GroundingConfig struct {
	Enabled     bool `mapstructure:"enabled" yaml:"enabled"`
	MaxResults  int  `mapstructure:"max_results" yaml:"max_results"`
	TimeoutMs   int  `mapstructure:"timeout_ms" yaml:"timeout_ms"`
	MinKeyTerms int  `mapstructure:"min_key_terms" yaml:"min_key_terms"`
}

// CodecConfig locates the native inference sidecar. An empty address
// disables the native transport.
type CodecConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// StoreConfig locates the SQLite database. An empty path disables
// persistence.
type StoreConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// LoggingConfig controls the process logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Pretty bool   `mapstructure:"pretty" yaml:"pretty"`
}

// #region defaults

// Default returns the built-in configuration.
func Default() *Config {
	t := governance.DefaultThresholds()
	ws := websearch.DefaultConfig()
	return &Config{
		Retry: RetryConfig{MaxRetries: 3, BaseDelayMs: 1000, TimeoutMs: 20000},
		Cache: CacheConfig{Enabled: true, MaxSize: 100, TTLMs: 3600000},
		Governance: GovernanceConfig{
			MisconceptionHigh:         t.MisconceptionHigh,
			FogHigh:                   t.FogHigh,
			CorrectHigh:               t.CorrectHigh,
			RatioYellowMin:            t.RatioYellowMin,
			RatioRedMin:               t.RatioRedMin,
			GroundFloor:               t.GroundFloor,
			FallbackCorrectness:       t.FallbackCorrectness,
			FallbackMisconceptionHigh: t.FallbackMisconceptionHigh,
			FallbackMisconceptionLow:  t.FallbackMisconceptionLow,
			TrajectorySamples:         t.TrajectorySamples,
			ClosureTolerance:          t.ClosureTolerance,
		},
		Providers: []ProviderConfig{
			{Name: "codec", Transport: string(reasoner.TransportNative), Models: []string{"default"}},
			{Name: "local-openai", Transport: string(reasoner.TransportHTTPPost), Endpoint: "http://localhost:11434/v1/chat/completions", Models: []string{"llama3.1"}},
		},
		MisconceptionPatterns: governance.DefaultPatterns(),
		Grounding: GroundingConfig{
			Enabled:     ws.Enabled,
			MaxResults:  ws.MaxResults,
			TimeoutMs:   int(ws.Timeout / time.Millisecond),
			MinKeyTerms: ws.MinKeyTerms,
		},
		Codec:   CodecConfig{Addr: ""},
		Store:   StoreConfig{Path: DefaultStorePath()},
		Logging: LoggingConfig{Level: "info", Pretty: true},
	}
}

// DefaultStorePath is ~/.ada/ada.db, or ada.db when no home is known.
func DefaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "ada.db"
	}
	return filepath.Join(home, ".ada", "ada.db")
}

// DefaultConfigPath is ~/.config/ada/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "config.yaml"
	}
	return filepath.Join(home, ".config", "ada", "config.yaml")
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("retry.max_retries", d.Retry.MaxRetries)
	v.SetDefault("retry.base_delay_ms", d.Retry.BaseDelayMs)
	v.SetDefault("retry.timeout_ms", d.Retry.TimeoutMs)
	v.SetDefault("cache.enabled", d.Cache.Enabled)
	v.SetDefault("cache.max_size", d.Cache.MaxSize)
	v.SetDefault("cache.ttl_ms", d.Cache.TTLMs)
	v.SetDefault("governance.misconception_high", d.Governance.MisconceptionHigh)
	v.SetDefault("governance.fog_high", d.Governance.FogHigh)
	v.SetDefault("governance.correct_high", d.Governance.CorrectHigh)
	v.SetDefault("governance.ratio_yellow_min", d.Governance.RatioYellowMin)
	v.SetDefault("governance.ratio_red_min", d.Governance.RatioRedMin)
	v.SetDefault("governance.ground_floor", d.Governance.GroundFloor)
	v.SetDefault("governance.fallback_correctness", d.Governance.FallbackCorrectness)
	v.SetDefault("governance.fallback_misconception_high", d.Governance.FallbackMisconceptionHigh)
	v.SetDefault("governance.fallback_misconception_low", d.Governance.FallbackMisconceptionLow)
	v.SetDefault("governance.trajectory_samples", d.Governance.TrajectorySamples)
	v.SetDefault("governance.closure_tolerance", d.Governance.ClosureTolerance)
	v.SetDefault("grounding.enabled", d.Grounding.Enabled)
	v.SetDefault("grounding.max_results", d.Grounding.MaxResults)
	v.SetDefault("grounding.timeout_ms", d.Grounding.TimeoutMs)
	v.SetDefault("grounding.min_key_terms", d.Grounding.MinKeyTerms)
	v.SetDefault("codec.addr", d.Codec.Addr)
	v.SetDefault("store.path", d.Store.Path)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.pretty", d.Logging.Pretty)
}

// #endregion defaults

// #region load

// Load reads configPath, or searches ./ada.yaml and ~/.config/ada/config.yaml
// when configPath is empty. A missing searched file is not an error.
// Environment variables override file values.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("ada")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(filepath.Dir(DefaultConfigPath()))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	d := Default()
	if len(cfg.Providers) == 0 {
		cfg.Providers = d.Providers
	}
	if len(cfg.MisconceptionPatterns) == 0 {
		cfg.MisconceptionPatterns = d.MisconceptionPatterns
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// #endregion load

// #region validate

// Validate rejects configurations the engine cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Retry.MaxRetries < 1 {
		errs = append(errs, fmt.Errorf("retry.max_retries must be >= 1, got %d", c.Retry.MaxRetries))
	}
	if c.Retry.BaseDelayMs < 0 || c.Retry.TimeoutMs <= 0 {
		errs = append(errs, errors.New("retry delays must be >= 0 and timeout_ms > 0"))
	}
	if c.Cache.Enabled && (c.Cache.MaxSize < 1 || c.Cache.TTLMs <= 0) {
		errs = append(errs, errors.New("cache.max_size and cache.ttl_ms must be positive when the cache is enabled"))
	}
	g := c.Governance
	for name, v := range map[string]float64{
		"misconception_high":          g.MisconceptionHigh,
		"fog_high":                    g.FogHigh,
		"correct_high":                g.CorrectHigh,
		"ground_floor":                g.GroundFloor,
		"fallback_correctness":        g.FallbackCorrectness,
		"fallback_misconception_high": g.FallbackMisconceptionHigh,
		"fallback_misconception_low":  g.FallbackMisconceptionLow,
	} {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("governance.%s must be within [0,1], got %v", name, v))
		}
	}
	if g.RatioYellowMin > g.RatioRedMin {
		errs = append(errs, errors.New("governance.ratio_yellow_min must not exceed ratio_red_min"))
	}
	if g.FallbackMisconceptionLow > g.FallbackMisconceptionHigh {
		errs = append(errs, errors.New("governance.fallback_misconception_low must not exceed fallback_misconception_high"))
	}
	if g.TrajectorySamples < 1 {
		errs = append(errs, errors.New("governance.trajectory_samples must be >= 1"))
	}
	for i, p := range c.Providers {
		switch reasoner.Transport(p.Transport) {
		case reasoner.TransportNative:
		case reasoner.TransportHTTPPost, reasoner.TransportHTTPGet:
			if p.Endpoint == "" {
				errs = append(errs, fmt.Errorf("providers[%d]: endpoint required for %s", i, p.Transport))
			}
		default:
			errs = append(errs, fmt.Errorf("providers[%d]: unknown transport %q", i, p.Transport))
		}
		if len(p.Models) == 0 {
			errs = append(errs, fmt.Errorf("providers[%d]: at least one model required", i))
		}
	}
	if _, err := c.PatternTable(); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// #endregion validate

// #region converters

// Descriptors converts the provider list, filling inherited retry fields.
func (c *Config) Descriptors() []reasoner.ProviderDescriptor {
	out := make([]reasoner.ProviderDescriptor, 0, len(c.Providers))
	for _, p := range c.Providers {
		d := reasoner.ProviderDescriptor{
			Name:      p.Name,
			Transport: reasoner.Transport(p.Transport),
			Endpoint:  p.Endpoint,
			Models:    append([]string(nil), p.Models...),
			Timeout:   ms(firstPositive(p.TimeoutMs, c.Retry.TimeoutMs)),
			Retry: reasoner.RetryPolicy{
				MaxRetries: firstPositive(p.MaxRetries, c.Retry.MaxRetries),
				BaseDelay:  ms(firstPositive(p.BaseDelayMs, c.Retry.BaseDelayMs)),
			},
			Headers: p.Headers,
		}
		out = append(out, d)
	}
	return out
}

// Thresholds converts the governance section.
func (c *Config) Thresholds() governance.Thresholds {
	g := c.Governance
	return governance.Thresholds{
		MisconceptionHigh:         g.MisconceptionHigh,
		FogHigh:                   g.FogHigh,
		CorrectHigh:               g.CorrectHigh,
		RatioYellowMin:            g.RatioYellowMin,
		RatioRedMin:               g.RatioRedMin,
		GroundFloor:               g.GroundFloor,
		FallbackCorrectness:       g.FallbackCorrectness,
		FallbackMisconceptionHigh: g.FallbackMisconceptionHigh,
		FallbackMisconceptionLow:  g.FallbackMisconceptionLow,
		TrajectorySamples:         g.TrajectorySamples,
		ClosureTolerance:          g.ClosureTolerance,
	}
}

// PatternTable compiles the misconception patterns bounded by the fallback
// thresholds.
func (c *Config) PatternTable() (*governance.PatternTable, error) {
	return governance.NewPatternTable(c.MisconceptionPatterns,
		c.Governance.FallbackMisconceptionLow, c.Governance.FallbackMisconceptionHigh)
}

// WebSearch converts the grounding section.
func (c *Config) WebSearch() websearch.Config {
	return websearch.Config{
		Enabled:     c.Grounding.Enabled,
		MaxResults:  c.Grounding.MaxResults,
		Timeout:     ms(c.Grounding.TimeoutMs),
		MinKeyTerms: c.Grounding.MinKeyTerms,
	}
}

// CacheTTL returns the cache TTL as a duration.
func (c *Config) CacheTTL() time.Duration {
	return ms(c.Cache.TTLMs)
}

// Logger converts the logging section.
func (c *Config) Logger(out io.Writer) logging.Config {
	return logging.Config{Level: c.Logging.Level, Pretty: c.Logging.Pretty, Output: out}
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

func firstPositive(vals ...int) int {
	for _, v := range vals {
		if v > 0 {
			return v
		}
	}
	return 0
}

// #endregion converters

// #region write

// WriteDefault writes the default configuration as YAML. An existing file is
// left alone unless force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config %s already exists", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// #endregion write
