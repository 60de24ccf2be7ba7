package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/lockbox/config"
	ConfigFileName    = "lockbox.yml"
)

// ValidLogLevels is the list of accepted log levels
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// LockboxConfig holds all Lockbox configuration settings
type LockboxConfig struct {
	// DefaultResourceTypeSlug is the resource type assigned when backfilling
	// resources without one
	DefaultResourceTypeSlug string `yaml:"default_resource_type_slug" json:"default_resource_type_slug"`

	// AuditEnabled controls whether lifecycle events reach the audit trail
	AuditEnabled bool `yaml:"audit_enabled" json:"audit_enabled"`

	// LogLevel is the application log level
	LogLevel string `yaml:"log_level" json:"log_level"`

	// CleanupBatchSize bounds how many resources a bulk soft delete retires
	// per transaction
	CleanupBatchSize int `yaml:"cleanup_batch_size" json:"cleanup_batch_size"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// Global singleton config
var (
	globalConfig *LockboxConfig
	configMu     sync.RWMutex
)

// Get returns the global configuration, loading it if necessary
func Get() *LockboxConfig {
	configMu.RLock()
	if globalConfig != nil {
		configMu.RUnlock()
		return globalConfig
	}
	configMu.RUnlock()

	configMu.Lock()
	defer configMu.Unlock()

	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			// Return defaults on error
			globalConfig = newDefault()
		} else {
			globalConfig = cfg
		}
	}
	return globalConfig
}

// Reload reloads the configuration from file and environment
func Reload() error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	configMu.Lock()
	globalConfig = cfg
	configMu.Unlock()
	return nil
}

// newDefault returns a config with default values
func newDefault() *LockboxConfig {
	return &LockboxConfig{
		DefaultResourceTypeSlug: "password-string",
		AuditEnabled:            true,
		LogLevel:                "info",
		CleanupBatchSize:        1000,
		sources:                 make(map[string]string),
	}
}

// Load loads configuration from file and environment variables
// Environment variables take precedence over file values
func Load() (*LockboxConfig, error) {
	config := newDefault()

	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	configPath := os.Getenv("LOCKBOX_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var fileConfig LockboxConfig
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&fileConfig)
	}

	config.applyEnvConfig()

	return config, nil
}

func attributeNames() []string {
	return []string{
		"default_resource_type_slug", "audit_enabled", "log_level",
		"cleanup_batch_size",
	}
}

func (c *LockboxConfig) applyFileConfig(file *LockboxConfig) {
	if file.DefaultResourceTypeSlug != "" {
		c.DefaultResourceTypeSlug = file.DefaultResourceTypeSlug
		c.sources["default_resource_type_slug"] = "file"
	}
	if file.LogLevel != "" {
		c.LogLevel = file.LogLevel
		c.sources["log_level"] = "file"
	}
	if file.CleanupBatchSize != 0 {
		c.CleanupBatchSize = file.CleanupBatchSize
		c.sources["cleanup_batch_size"] = "file"
	}
}

func (c *LockboxConfig) applyEnvConfig() {
	if val := os.Getenv("LOCKBOX_DEFAULT_RESOURCE_TYPE_SLUG"); val != "" {
		c.DefaultResourceTypeSlug = val
		c.sources["default_resource_type_slug"] = "environment"
	}
	if val := os.Getenv("LOCKBOX_AUDIT_ENABLED"); val != "" {
		c.AuditEnabled = val == "true" || val == "1"
		c.sources["audit_enabled"] = "environment"
	}
	if val := os.Getenv("LOCKBOX_LOG_LEVEL"); val != "" {
		c.LogLevel = val
		c.sources["log_level"] = "environment"
	}
	if val := os.Getenv("LOCKBOX_CLEANUP_BATCH_SIZE"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.CleanupBatchSize = i
			c.sources["cleanup_batch_size"] = "environment"
		}
	}
}

// ConfigFilePath returns the path to the config file
func (c *LockboxConfig) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *LockboxConfig) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// Validate validates the configuration
func (c *LockboxConfig) Validate() error {
	valid := false
	for _, level := range ValidLogLevels {
		if c.LogLevel == level {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid log_level value: %s", c.LogLevel)
	}

	if c.CleanupBatchSize <= 0 {
		return fmt.Errorf("cleanup_batch_size must be positive, got %d", c.CleanupBatchSize)
	}

	if c.DefaultResourceTypeSlug == "" {
		return fmt.Errorf("default_resource_type_slug must not be empty")
	}

	return nil
}

// Attributes returns all configuration attributes with their values and sources
func (c *LockboxConfig) Attributes() []Attribute {
	return []Attribute{
		{Name: "default_resource_type_slug", Value: c.DefaultResourceTypeSlug, Source: c.Source("default_resource_type_slug")},
		{Name: "audit_enabled", Value: strconv.FormatBool(c.AuditEnabled), Source: c.Source("audit_enabled")},
		{Name: "log_level", Value: c.LogLevel, Source: c.Source("log_level")},
		{Name: "cleanup_batch_size", Value: strconv.Itoa(c.CleanupBatchSize), Source: c.Source("cleanup_batch_size")},
	}
}

// FormatText returns a text representation of the configuration
func (c *LockboxConfig) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-30s %-30s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-30s %-30s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-30s %-30s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *LockboxConfig) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
