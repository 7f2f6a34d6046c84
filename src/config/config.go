package config

import (
	"fmt"
	"os"

	"portfolio-observer/src/models"

	"gopkg.in/yaml.v3"
)

// -----------------------------------------------------------------------------

// Defaults applied when the YAML file leaves a field empty.
const (
	DefaultEndpoint        = "https://hq.sinajs.cn/list="
	DefaultReferer         = "https://finance.sina.com.cn"
	DefaultUserAgent       = "Mozilla/5.0 (iPhone; CPU iPhone OS 13_2_3 like Mac OS X)"
	DefaultIndexSymbol     = "sh000001"
	DefaultIntervalSeconds = 120
	DefaultTimezone        = "Asia/Shanghai"
	DefaultOffHoursPolicy  = "reschedule"
	DefaultThresholdPolicy = "segment"
)

// -----------------------------------------------------------------------------

// Config wraps models.MConfig and provides business logic methods
type Config struct {
	*models.MConfig
}

// -----------------------------------------------------------------------------

// NewConfig creates a new MConfig instance from YAML file
func NewConfig(configPath string) (*Config, error) {
	// 1. Read the YAML file content
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", configPath, err)
	}

	// 2. Unmarshal data into the models struct
	var modelConfig models.MConfig
	if err := yaml.Unmarshal(data, &modelConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config from YAML: %w", err)
	}

	config := &Config{MConfig: &modelConfig}
	config.applyDefaults()

	// 3. Validate the loaded configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// -----------------------------------------------------------------------------

func (c *Config) applyDefaults() {
	if c.Quote.Endpoint == "" {
		c.Quote.Endpoint = DefaultEndpoint
	}
	if c.Network.Referer == "" {
		c.Network.Referer = DefaultReferer
	}
	if c.Network.UserAgent == "" {
		c.Network.UserAgent = DefaultUserAgent
	}
	if c.Network.RequestTimeout == 0 {
		c.Network.RequestTimeout = 10
	}
	if c.Network.ConcurrentRequests == 0 {
		c.Network.ConcurrentRequests = 4
	}
	if c.Portfolio.IndexSymbol == "" {
		c.Portfolio.IndexSymbol = DefaultIndexSymbol
	}
	if c.Refresh.IntervalSeconds == 0 {
		c.Refresh.IntervalSeconds = DefaultIntervalSeconds
	}
	if c.Refresh.Timezone == "" {
		c.Refresh.Timezone = DefaultTimezone
	}
	if c.Refresh.OffHoursPolicy == "" {
		c.Refresh.OffHoursPolicy = DefaultOffHoursPolicy
	}
	if c.Refresh.ThresholdPolicy == "" {
		c.Refresh.ThresholdPolicy = DefaultThresholdPolicy
	}
	if c.Storage.SlotType == "" {
		c.Storage.SlotType = "file"
	}
}

// -----------------------------------------------------------------------------

// Validate performs basic configuration validation
func (c *Config) Validate() error {
	// Validate App configuration (Flattened)
	if c.Name == "" {
		return fmt.Errorf("application name cannot be empty")
	}

	// Validate Server configuration (Flattened)
	if c.Host == "" {
		return fmt.Errorf("server host cannot be empty")
	}
	if c.Port <= 1024 || c.Port > 65535 {
		return fmt.Errorf("invalid server port number: %d (must be between 1025 and 65535)", c.Port)
	}

	// Validate Storage configuration
	switch c.Storage.SlotType {
	case "file", "sqlite":
		if c.Storage.SlotPath == "" {
			return fmt.Errorf("slot path cannot be empty for %s slot", c.Storage.SlotType)
		}
	case "postgres":
		if c.Storage.DBConnectionString == "" {
			return fmt.Errorf("db connection string cannot be empty for postgres slot")
		}
	default:
		return fmt.Errorf("unknown slot type: %s", c.Storage.SlotType)
	}

	// Validate Network configuration
	if c.Network.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be greater than 0")
	}
	if c.Network.ConcurrentRequests <= 0 {
		return fmt.Errorf("concurrent requests must be greater than 0")
	}

	// Validate Portfolio configuration
	if len(c.Portfolio.Positions) == 0 {
		return fmt.Errorf("at least one position must be configured")
	}
	for i, pos := range c.Portfolio.Positions {
		if pos.Symbol == "" {
			return fmt.Errorf("position %d must have a symbol", i)
		}
		if pos.Cost < 0 {
			return fmt.Errorf("position '%s' has a negative cost basis", pos.Symbol)
		}
	}

	// Validate Refresh configuration
	if c.Refresh.IntervalSeconds <= 0 {
		return fmt.Errorf("refresh interval must be greater than 0")
	}
	switch c.Refresh.OffHoursPolicy {
	case "reschedule", "suspend":
	default:
		return fmt.Errorf("unknown off-hours policy: %s", c.Refresh.OffHoursPolicy)
	}
	switch c.Refresh.ThresholdPolicy {
	case "segment", "flat":
	default:
		return fmt.Errorf("unknown threshold policy: %s", c.Refresh.ThresholdPolicy)
	}

	return nil
}

// -----------------------------------------------------------------------------

// CostBasis returns the configured cost basis for a symbol, or 0 when the
// symbol has no configured position.
func (c *Config) CostBasis(symbol string) float64 {
	for _, pos := range c.Portfolio.Positions {
		if pos.Symbol == symbol {
			return pos.Cost
		}
	}
	return 0
}

// -----------------------------------------------------------------------------

// DisplayNames returns the symbol -> display name lookup. Provider names for
// A-share symbols come back GB18030-encoded, so configured names win.
func (c *Config) DisplayNames() map[string]string {
	names := make(map[string]string, len(c.Portfolio.Positions))
	for _, pos := range c.Portfolio.Positions {
		if pos.Name != "" {
			names[pos.Symbol] = pos.Name
		}
	}
	return names
}

// -----------------------------------------------------------------------------

// Save persists the current configuration to the specified YAML file path
func (c *Config) Save(configPath string) error {
	// 1. Marshal the struct to YAML
	data, err := yaml.Marshal(c.MConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	// 2. Write to file (0644 permissions)
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config to file '%s': %w", configPath, err)
	}

	return nil
}
