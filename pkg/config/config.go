package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/pam-intel/config"
	ConfigFileName    = "pam-intel.yml"
)

// Config holds all intelligence-core settings.
type Config struct {
	// DormantDaysDefault is the dormancy threshold used when the caller
	// does not supply one
	DormantDaysDefault int `yaml:"dormant_days_default" json:"dormant_days_default"`

	// LowUsageThreshold is the checkout+session activity count below
	// which a high-privilege account counts as over-privileged
	LowUsageThreshold int `yaml:"low_usage_threshold" json:"low_usage_threshold"`

	// HighRiskThreshold is the default risk-score cutoff for the
	// high-risk account listing
	HighRiskThreshold int `yaml:"high_risk_threshold" json:"high_risk_threshold"`

	// SearchBudgetMs bounds the total time spent matching a playback
	// search pattern against recorded text
	SearchBudgetMs int `yaml:"search_budget_ms" json:"search_budget_ms"`

	// SearchContextChars is the number of characters of context returned
	// either side of a search match
	SearchContextChars int `yaml:"search_context_chars" json:"search_context_chars"`

	// SummarySampleCap caps the number of accounts sampled for the
	// tenant-wide average risk score
	SummarySampleCap int `yaml:"summary_sample_cap" json:"summary_sample_cap"`

	// SummaryWorkers sizes the worker pool for the summary risk fan-out
	SummaryWorkers int `yaml:"summary_workers" json:"summary_workers"`

	// SummariesDefaultLimit is the session-summary page size used when
	// the caller does not supply one
	SummariesDefaultLimit int `yaml:"summaries_default_limit" json:"summaries_default_limit"`

	// SummariesMaxLimit caps the caller-supplied session-summary limit
	SummariesMaxLimit int `yaml:"summaries_max_limit" json:"summaries_max_limit"`

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
	globalConfig *Config
	configMu     sync.RWMutex
)

// Get returns the global configuration, loading it if necessary
func Get() *Config {
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
			// Fall back to defaults on error
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
func newDefault() *Config {
	return &Config{
		DormantDaysDefault:    90,
		LowUsageThreshold:     3,
		HighRiskThreshold:     70,
		SearchBudgetMs:        100,
		SearchContextChars:    40,
		SummarySampleCap:      100,
		SummaryWorkers:        8,
		SummariesDefaultLimit: 50,
		SummariesMaxLimit:     500,
		sources:               make(map[string]string),
	}
}

// Default returns a config with default values, untouched by file or
// environment. Useful for tests and embedded use.
func Default() *Config {
	cfg := newDefault()
	for _, name := range attributeNames() {
		cfg.sources[name] = "default"
	}
	return cfg
}

// Load loads configuration from file and environment variables
// Environment variables take precedence over file values
func Load() (*Config, error) {
	config := newDefault()

	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	configPath := os.Getenv("PAM_INTEL_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var fileConfig Config
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
		"dormant_days_default", "low_usage_threshold", "high_risk_threshold",
		"search_budget_ms", "search_context_chars",
		"summary_sample_cap", "summary_workers",
		"summaries_default_limit", "summaries_max_limit",
	}
}

func (c *Config) applyFileConfig(file *Config) {
	if file.DormantDaysDefault != 0 {
		c.DormantDaysDefault = file.DormantDaysDefault
		c.sources["dormant_days_default"] = "file"
	}
	if file.LowUsageThreshold != 0 {
		c.LowUsageThreshold = file.LowUsageThreshold
		c.sources["low_usage_threshold"] = "file"
	}
	if file.HighRiskThreshold != 0 {
		c.HighRiskThreshold = file.HighRiskThreshold
		c.sources["high_risk_threshold"] = "file"
	}
	if file.SearchBudgetMs != 0 {
		c.SearchBudgetMs = file.SearchBudgetMs
		c.sources["search_budget_ms"] = "file"
	}
	if file.SearchContextChars != 0 {
		c.SearchContextChars = file.SearchContextChars
		c.sources["search_context_chars"] = "file"
	}
	if file.SummarySampleCap != 0 {
		c.SummarySampleCap = file.SummarySampleCap
		c.sources["summary_sample_cap"] = "file"
	}
	if file.SummaryWorkers != 0 {
		c.SummaryWorkers = file.SummaryWorkers
		c.sources["summary_workers"] = "file"
	}
	if file.SummariesDefaultLimit != 0 {
		c.SummariesDefaultLimit = file.SummariesDefaultLimit
		c.sources["summaries_default_limit"] = "file"
	}
	if file.SummariesMaxLimit != 0 {
		c.SummariesMaxLimit = file.SummariesMaxLimit
		c.sources["summaries_max_limit"] = "file"
	}
}

func (c *Config) applyEnvConfig() {
	c.applyEnvInt("PAM_INTEL_DORMANT_DAYS_DEFAULT", "dormant_days_default", &c.DormantDaysDefault)
	c.applyEnvInt("PAM_INTEL_LOW_USAGE_THRESHOLD", "low_usage_threshold", &c.LowUsageThreshold)
	c.applyEnvInt("PAM_INTEL_HIGH_RISK_THRESHOLD", "high_risk_threshold", &c.HighRiskThreshold)
	c.applyEnvInt("PAM_INTEL_SEARCH_BUDGET_MS", "search_budget_ms", &c.SearchBudgetMs)
	c.applyEnvInt("PAM_INTEL_SEARCH_CONTEXT_CHARS", "search_context_chars", &c.SearchContextChars)
	c.applyEnvInt("PAM_INTEL_SUMMARY_SAMPLE_CAP", "summary_sample_cap", &c.SummarySampleCap)
	c.applyEnvInt("PAM_INTEL_SUMMARY_WORKERS", "summary_workers", &c.SummaryWorkers)
	c.applyEnvInt("PAM_INTEL_SUMMARIES_DEFAULT_LIMIT", "summaries_default_limit", &c.SummariesDefaultLimit)
	c.applyEnvInt("PAM_INTEL_SUMMARIES_MAX_LIMIT", "summaries_max_limit", &c.SummariesMaxLimit)
}

func (c *Config) applyEnvInt(envName, attrName string, target *int) {
	if val := os.Getenv(envName); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			*target = i
			c.sources[attrName] = "environment"
		}
	}
}

// ConfigFilePath returns the path to the config file
func (c *Config) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *Config) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// Attributes returns all attributes with their values and sources
func (c *Config) Attributes() []Attribute {
	values := map[string]string{
		"dormant_days_default":    strconv.Itoa(c.DormantDaysDefault),
		"low_usage_threshold":     strconv.Itoa(c.LowUsageThreshold),
		"high_risk_threshold":     strconv.Itoa(c.HighRiskThreshold),
		"search_budget_ms":        strconv.Itoa(c.SearchBudgetMs),
		"search_context_chars":    strconv.Itoa(c.SearchContextChars),
		"summary_sample_cap":      strconv.Itoa(c.SummarySampleCap),
		"summary_workers":         strconv.Itoa(c.SummaryWorkers),
		"summaries_default_limit": strconv.Itoa(c.SummariesDefaultLimit),
		"summaries_max_limit":     strconv.Itoa(c.SummariesMaxLimit),
	}

	attrs := make([]Attribute, 0, len(values))
	for _, name := range attributeNames() {
		attrs = append(attrs, Attribute{
			Name:   name,
			Value:  values[name],
			Source: c.Source(name),
		})
	}
	return attrs
}

// SearchBudget returns the search matching budget as a duration
func (c *Config) SearchBudget() time.Duration {
	return time.Duration(c.SearchBudgetMs) * time.Millisecond
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.DormantDaysDefault < 1 {
		return fmt.Errorf("dormant_days_default must be positive, got %d", c.DormantDaysDefault)
	}
	if c.HighRiskThreshold < 0 || c.HighRiskThreshold > 100 {
		return fmt.Errorf("high_risk_threshold must be in [0,100], got %d", c.HighRiskThreshold)
	}
	if c.SummaryWorkers < 1 {
		return fmt.Errorf("summary_workers must be positive, got %d", c.SummaryWorkers)
	}
	if c.SummariesMaxLimit < c.SummariesDefaultLimit {
		return fmt.Errorf("summaries_max_limit (%d) must be >= summaries_default_limit (%d)",
			c.SummariesMaxLimit, c.SummariesDefaultLimit)
	}
	return nil
}
