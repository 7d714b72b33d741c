package config

import (
	"runtime"
	"time"

	"github.com/spf13/viper"
)

// Config represents the scanner configuration
type Config struct {
	// Scan settings
	GamePath     string   `mapstructure:"game_path"`     // Garry's Mod installation root
	Workers      int      `mapstructure:"workers"`       // worker goroutines for the cache phase
	MaxSize      string   `mapstructure:"max_size"`      // maximum file size to consider
	ScanScripts  bool     `mapstructure:"scan_scripts"`  // scan garrysmod/lua/weapons
	ScanAddons   bool     `mapstructure:"scan_addons"`   // scan garrysmod/addons
	ScanWorkshop bool     `mapstructure:"scan_workshop"` // scan workshop content
	ScanCache    bool     `mapstructure:"scan_cache"`    // scan compiled Lua cache directories
	CacheRoots   []string `mapstructure:"cache_roots"`   // extra cache root candidates

	// Eligibility settings
	SniffThreshold string `mapstructure:"sniff_threshold"` // content sniff kicks in above this size
	PatternsPath   string `mapstructure:"patterns_path"`   // optional YAML keyword overrides

	// Decode settings
	EnableExternalTool bool   `mapstructure:"enable_external_tool"` // attempt luadec invocation
	LuadecPath         string `mapstructure:"luadec_path"`          // path to the luadec binary
	DecodeTimeout      int    `mapstructure:"decode_timeout"`       // seconds per decode strategy
	BatchTimeout       int    `mapstructure:"batch_timeout"`        // seconds per worker batch
	MinDecodedBytes    int    `mapstructure:"min_decoded_bytes"`    // plausibility floor for decoded output

	// Output settings
	ExportFile string `mapstructure:"export_file"` // JSON export path, empty to skip
	VMTOutput  string `mapstructure:"vmt_output"`  // material output directory, empty to skip
	VMTForce   bool   `mapstructure:"vmt_force"`   // overwrite materials that already exist

	// AI settings
	AI AIConfig `mapstructure:"ai"`
}

// AIConfig holds the optional post-scan summary configuration
type AIConfig struct {
	Enabled  bool   `mapstructure:"ai_enabled"` // enable the AI scan summary
	Model    string `mapstructure:"ai_model"`   // haiku, sonnet, opus
	APIToken string `mapstructure:"ai_token"`   // Anthropic API token
	Timeout  int    `mapstructure:"ai_timeout"` // seconds for the summary request
}

// LoadConfig loads configuration from environment variables and defaults
func LoadConfig() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("workers", defaultWorkers())
	v.SetDefault("max_size", "10M")
	v.SetDefault("scan_scripts", true)
	v.SetDefault("scan_addons", true)
	v.SetDefault("scan_workshop", true)
	v.SetDefault("scan_cache", true)
	v.SetDefault("sniff_threshold", "100K")
	v.SetDefault("enable_external_tool", true)
	v.SetDefault("luadec_path", "tools/luadec/luadec")
	v.SetDefault("decode_timeout", 3)
	v.SetDefault("batch_timeout", 30)
	v.SetDefault("min_decoded_bytes", 100)

	// AI defaults
	v.SetDefault("ai.ai_enabled", false)
	v.SetDefault("ai.ai_model", "sonnet")
	v.SetDefault("ai.ai_timeout", 30)

	// Read environment variables
	v.SetEnvPrefix("SWEPSCAN")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaultWorkers() int {
	n := runtime.NumCPU()
	if n > 16 {
		n = 16
	}
	if n < 1 {
		n = 4
	}
	return n
}

// WorkerCount returns the bounded worker pool size for the cache phase.
func (c *Config) WorkerCount() int {
	if c.Workers <= 0 {
		return defaultWorkers()
	}
	if c.Workers > 16 {
		return 16
	}
	return c.Workers
}

// MaxSizeBytes returns the upper size bound in bytes.
func (c *Config) MaxSizeBytes() int64 {
	return ParseSize(c.MaxSize)
}

// SniffThresholdBytes returns the size above which content sniffing runs.
func (c *Config) SniffThresholdBytes() int64 {
	return ParseSize(c.SniffThreshold)
}

// DecodeBudget returns the per-strategy time budget.
func (c *Config) DecodeBudget() time.Duration {
	if c.DecodeTimeout <= 0 {
		return 3 * time.Second
	}
	return time.Duration(c.DecodeTimeout) * time.Second
}

// BatchBudget returns the per-batch collection timeout for the worker pool.
func (c *Config) BatchBudget() time.Duration {
	if c.BatchTimeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.BatchTimeout) * time.Second
}

// PlausibilityFloor returns the minimum decoded size considered substantial.
func (c *Config) PlausibilityFloor() int {
	if c.MinDecodedBytes <= 0 {
		return 100
	}
	return c.MinDecodedBytes
}
