package config

import (
	"fmt"
	"os"
	"strings"

	"stock-lens/src/models"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath overrides the -config flag when set.
const EnvConfigPath = "STOCKLENS_CONFIG"

// Defaults applied to fields left empty in the YAML file.
const (
	DefaultPrimarySuffix   = ".TW"
	DefaultSecondarySuffix = ".TWO"
	DefaultDelimiter       = "."
	DefaultPeriod          = "6mo"
	DefaultInterval        = "1d"
	DefaultMaxPoints       = 8
	DefaultMaxTableRows    = 8
	DefaultMaxTableCols    = 12
	DefaultWatchlistCron   = "0 */5 * * * *"
	DefaultTimeoutSeconds  = 20
	DefaultLookupTimeout   = 60
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
	return Parse(data)
}

// -----------------------------------------------------------------------------

// Parse builds a validated Config from YAML bytes.
func Parse(data []byte) (*Config, error) {
	modelConfig := models.MConfig{
		Windows: models.MWindowConfig{Transpose: true},
	}
	if err := yaml.Unmarshal(data, &modelConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config from YAML: %w", err)
	}

	config := &Config{MConfig: &modelConfig}
	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// -----------------------------------------------------------------------------

// ResolvePath picks the config path from the environment or the flag value.
func ResolvePath(flagValue string) string {
	if v := os.Getenv(EnvConfigPath); v != "" {
		return v
	}
	return flagValue
}

// -----------------------------------------------------------------------------

func (c *Config) applyDefaults() {
	if c.Resolver.Delimiter == "" {
		c.Resolver.Delimiter = DefaultDelimiter
	}
	if c.Resolver.PrimarySuffix == "" {
		c.Resolver.PrimarySuffix = DefaultPrimarySuffix
	}
	if c.Resolver.SecondarySuffix == "" {
		c.Resolver.SecondarySuffix = DefaultSecondarySuffix
	}
	if c.Provider.Name == "" {
		c.Provider.Name = "yahoo"
	}
	if c.Provider.Period == "" {
		c.Provider.Period = DefaultPeriod
	}
	if c.Provider.Interval == "" {
		c.Provider.Interval = DefaultInterval
	}
	if c.Provider.TimeoutSeconds == 0 {
		c.Provider.TimeoutSeconds = DefaultLookupTimeout
	}
	if c.Windows.MaxPoints == 0 {
		c.Windows.MaxPoints = DefaultMaxPoints
	}
	if c.Windows.MaxTableRows == 0 {
		c.Windows.MaxTableRows = DefaultMaxTableRows
	}
	if c.Windows.MaxTableCols == 0 {
		c.Windows.MaxTableCols = DefaultMaxTableCols
	}
	if c.Storage.DBType == "" {
		c.Storage.DBType = "none"
	}
	if c.Watchlist.Cron == "" {
		c.Watchlist.Cron = DefaultWatchlistCron
	}
	if c.Watchlist.TimeoutSeconds == 0 {
		c.Watchlist.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if c.Network.RequestTimeout == 0 {
		c.Network.RequestTimeout = DefaultTimeoutSeconds
	}
	c.LogLevel = strings.ToUpper(c.LogLevel)
}

// -----------------------------------------------------------------------------

// Validate performs basic configuration validation
func (c *Config) Validate() error {
	if err := validator.New().Struct(c.MConfig); err != nil {
		return err
	}

	// Validate Server configuration (Flattened)
	if c.Port <= 1024 || c.Port > 65535 {
		return fmt.Errorf("invalid server port number: %d (must be between 1025 and 65535)", c.Port)
	}
	if c.GrpcPort != 0 && (c.GrpcPort <= 1024 || c.GrpcPort > 65535 || c.GrpcPort == c.Port) {
		return fmt.Errorf("invalid grpc port number: %d", c.GrpcPort)
	}

	// Validate Storage configuration
	if c.Storage.DBType == "sqlite" && c.Storage.DBPath == "" {
		return fmt.Errorf("database path cannot be empty for sqlite")
	}
	if c.Storage.DBType == "postgres" && c.Storage.DBConnectionString == "" {
		return fmt.Errorf("connection string cannot be empty for postgres")
	}

	// Validate Network configuration
	if c.Network.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be greater than 0")
	}
	if c.Network.MaxRetries < 0 {
		return fmt.Errorf("max retries cannot be negative")
	}
	if c.Network.RequestsPerSecond < 0 {
		return fmt.Errorf("requests per second cannot be negative")
	}

	// Validate Resolver configuration
	if c.Resolver.PrimarySuffix == c.Resolver.SecondarySuffix {
		return fmt.Errorf("primary and secondary suffixes must differ (both %q)", c.Resolver.PrimarySuffix)
	}
	for _, suffix := range []string{c.Resolver.PrimarySuffix, c.Resolver.SecondarySuffix} {
		if !strings.HasPrefix(suffix, c.Resolver.Delimiter) {
			return fmt.Errorf("suffix %q must start with delimiter %q", suffix, c.Resolver.Delimiter)
		}
	}

	for i, sym := range c.Watchlist.Symbols {
		if strings.TrimSpace(sym) == "" {
			return fmt.Errorf("watchlist symbol %d cannot be empty", i)
		}
	}

	return nil
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
