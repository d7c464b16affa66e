package search

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the engine tuning knobs. It can be built in code starting
// from Default, or loaded from versefinder.yml with environment variable
// overrides via LoadConfig.
type Config struct {
	Fuzzy    FuzzyConfig    `yaml:"fuzzy" mapstructure:"fuzzy"`
	Thematic ThematicConfig `yaml:"thematic" mapstructure:"thematic"`
	Snippet  SnippetConfig  `yaml:"snippet" mapstructure:"snippet"`
	Cache    CacheConfig    `yaml:"cache" mapstructure:"cache"`
}

// FuzzyConfig configures the approximate matcher.
type FuzzyConfig struct {
	// TitleThreshold is the minimum 0-100 similarity ratio for a title match.
	TitleThreshold int `yaml:"title_threshold" mapstructure:"title_threshold"`
	// ContentThreshold is the minimum ratio for a content-window match.
	// Zero means derived: TitleThreshold - 20. Content windows are noisier
	// than titles, so they use a lower bar. The -20 offset is a heuristic
	// default, not a law.
	ContentThreshold int `yaml:"content_threshold" mapstructure:"content_threshold"`
	// WindowPadding is added to the query word count to size the sliding
	// content window.
	WindowPadding int `yaml:"window_padding" mapstructure:"window_padding"`
}

// ThematicConfig configures theme-ontology scoring.
type ThematicConfig struct {
	CanonicalWeight int     `yaml:"canonical_weight" mapstructure:"canonical_weight"`
	SynonymWeight   int     `yaml:"synonym_weight" mapstructure:"synonym_weight"`
	ScoreMultiplier float64 `yaml:"score_multiplier" mapstructure:"score_multiplier"`
}

// SnippetConfig bounds extracted snippets.
type SnippetConfig struct {
	MaxLength int `yaml:"max_length" mapstructure:"max_length"`
}

// CacheConfig configures the per-engine query result cache. The cache is
// invalidated whenever the document set changes.
type CacheConfig struct {
	Enabled  bool `yaml:"enabled" mapstructure:"enabled"`
	Capacity int  `yaml:"capacity" mapstructure:"capacity"`
}

// DefaultConfig returns a configuration with the standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Fuzzy: FuzzyConfig{
			TitleThreshold:   70,
			ContentThreshold: 0, // derived: TitleThreshold - 20
			WindowPadding:    5,
		},
		Thematic: ThematicConfig{
			CanonicalWeight: 5,
			SynonymWeight:   3,
			ScoreMultiplier: 10,
		},
		Snippet: SnippetConfig{
			MaxLength: 200,
		},
		Cache: CacheConfig{
			Enabled:  true,
			Capacity: 512,
		},
	}
}

// Validate checks the configuration for out-of-range values.
func (c *Config) Validate() error {
	if c.Fuzzy.TitleThreshold < 0 || c.Fuzzy.TitleThreshold > 100 {
		return fmt.Errorf("fuzzy.title_threshold must be 0-100, got %d", c.Fuzzy.TitleThreshold)
	}
	if c.Fuzzy.ContentThreshold < 0 || c.Fuzzy.ContentThreshold > 100 {
		return fmt.Errorf("fuzzy.content_threshold must be 0-100, got %d", c.Fuzzy.ContentThreshold)
	}
	if c.Fuzzy.WindowPadding < 0 {
		return fmt.Errorf("fuzzy.window_padding must be >= 0, got %d", c.Fuzzy.WindowPadding)
	}
	if c.Thematic.CanonicalWeight < 0 || c.Thematic.SynonymWeight < 0 {
		return fmt.Errorf("thematic weights must be >= 0, got %d/%d",
			c.Thematic.CanonicalWeight, c.Thematic.SynonymWeight)
	}
	if c.Thematic.ScoreMultiplier <= 0 {
		return fmt.Errorf("thematic.score_multiplier must be > 0, got %v", c.Thematic.ScoreMultiplier)
	}
	if c.Snippet.MaxLength <= 0 {
		return fmt.Errorf("snippet.max_length must be > 0, got %d", c.Snippet.MaxLength)
	}
	if c.Cache.Enabled && c.Cache.Capacity <= 0 {
		return fmt.Errorf("cache.capacity must be > 0 when the cache is enabled, got %d", c.Cache.Capacity)
	}
	return nil
}

// contentThreshold resolves the effective content-window threshold.
func (c *Config) contentThreshold() int {
	if c.Fuzzy.ContentThreshold > 0 {
		return c.Fuzzy.ContentThreshold
	}
	t := c.Fuzzy.TitleThreshold - 20
	if t < 0 {
		t = 0
	}
	return t
}

// LoadConfig loads configuration with the following priority (highest to
// lowest): VERSEFINDER_* environment variables, versefinder.yml in rootDir,
// defaults.
func LoadConfig(rootDir string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("versefinder")
	v.SetConfigType("yaml")
	v.AddConfigPath(rootDir)

	v.SetEnvPrefix("VERSEFINDER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("fuzzy.title_threshold")
	v.BindEnv("fuzzy.content_threshold")
	v.BindEnv("fuzzy.window_padding")
	v.BindEnv("thematic.canonical_weight")
	v.BindEnv("thematic.synonym_weight")
	v.BindEnv("thematic.score_multiplier")
	v.BindEnv("snippet.max_length")
	v.BindEnv("cache.enabled")
	v.BindEnv("cache.capacity")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults plus env vars apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()

	v.SetDefault("fuzzy.title_threshold", defaults.Fuzzy.TitleThreshold)
	v.SetDefault("fuzzy.content_threshold", defaults.Fuzzy.ContentThreshold)
	v.SetDefault("fuzzy.window_padding", defaults.Fuzzy.WindowPadding)

	v.SetDefault("thematic.canonical_weight", defaults.Thematic.CanonicalWeight)
	v.SetDefault("thematic.synonym_weight", defaults.Thematic.SynonymWeight)
	v.SetDefault("thematic.score_multiplier", defaults.Thematic.ScoreMultiplier)

	v.SetDefault("snippet.max_length", defaults.Snippet.MaxLength)

	v.SetDefault("cache.enabled", defaults.Cache.Enabled)
	v.SetDefault("cache.capacity", defaults.Cache.Capacity)
}
