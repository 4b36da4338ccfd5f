package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for the follower tracker
type Config struct {
	// Tracked accounts, keyed by display username, value is the stable
	// external ID used by the lookup API
	Accounts map[string]string `yaml:"accounts" json:"accounts"`

	// Remote API settings
	API APIConfig `yaml:"api" json:"api"`

	// Snapshot storage settings
	Storage StorageConfig `yaml:"storage" json:"storage"`

	// Chart rendering settings
	Chart ChartConfig `yaml:"chart" json:"chart"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// APIConfig holds settings for the follower lookup API
type APIConfig struct {
	Host    string        `yaml:"host" json:"host"`
	BaseURL string        `yaml:"base_url" json:"base_url"`
	Key     string        `yaml:"key" json:"key"`
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
}

// StorageConfig holds snapshot file settings
type StorageConfig struct {
	Path string `yaml:"path" json:"path"`
}

// ChartConfig holds chart output settings
type ChartConfig struct {
	Output string `yaml:"output" json:"output"`
	Title  string `yaml:"title" json:"title"`
	Open   bool   `yaml:"open" json:"open"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Accounts: map[string]string{},
		API: APIConfig{
			Host:    "twitter135.p.rapidapi.com",
			BaseURL: "https://twitter135.p.rapidapi.com",
			Timeout: 30 * time.Second,
		},
		Storage: StorageConfig{
			Path: "output/followers_counts.csv",
		},
		Chart: ChartConfig{
			Output: "output/followers_chart.html",
			Title:  "Follower Counts Over Time",
			Open:   true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadFromEnv overrides configuration from environment variables
func (c *Config) LoadFromEnv() error {
	if key := os.Getenv("XFOLLOW_API_KEY"); key != "" {
		c.API.Key = key
	}
	if host := os.Getenv("XFOLLOW_API_HOST"); host != "" {
		c.API.Host = host
	}
	if baseURL := os.Getenv("XFOLLOW_API_BASE_URL"); baseURL != "" {
		c.API.BaseURL = baseURL
	}
	if path := os.Getenv("XFOLLOW_STORAGE_PATH"); path != "" {
		c.Storage.Path = path
	}
	if output := os.Getenv("XFOLLOW_CHART_OUTPUT"); output != "" {
		c.Chart.Output = output
	}
	if open := os.Getenv("XFOLLOW_CHART_OPEN"); open != "" {
		c.Chart.Open = strings.ToLower(open) == "true"
	}
	if logLevel := os.Getenv("XFOLLOW_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	// Check in order of precedence
	locations := []string{
		".xfollow.yaml",
		".xfollow.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "xfollow", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".config", "xfollow", "config.yml"),
		filepath.Join(os.Getenv("HOME"), ".xfollow.yaml"),
		filepath.Join(os.Getenv("HOME"), ".xfollow.yml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	seen := make(map[string]string, len(c.Accounts))
	for username, id := range c.Accounts {
		if strings.TrimSpace(username) == "" {
			errs = append(errs, errors.New("account with empty username"))
		}
		if strings.TrimSpace(id) == "" {
			errs = append(errs, fmt.Errorf("account %q has an empty ID", username))
			continue
		}
		if other, ok := seen[id]; ok {
			errs = append(errs, fmt.Errorf("accounts %q and %q share ID %s", other, username, id))
		}
		seen[id] = username
	}

	if c.API.Host == "" {
		errs = append(errs, errors.New("API host is required"))
	}
	if c.API.BaseURL == "" {
		errs = append(errs, errors.New("API base URL is required"))
	}
	if c.API.Timeout <= 0 {
		errs = append(errs, errors.New("API timeout must be positive"))
	}

	if c.Storage.Path == "" {
		errs = append(errs, errors.New("storage path is required"))
	}
	if c.Chart.Output == "" {
		errs = append(errs, errors.New("chart output path is required"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if storagePath, ok := flags["storage"].(string); ok && storagePath != "" {
		c.Storage.Path = storagePath
	}
	if chartOutput, ok := flags["chart-output"].(string); ok && chartOutput != "" {
		c.Chart.Output = chartOutput
	}
	if noOpen, ok := flags["no-open"].(bool); ok && noOpen {
		c.Chart.Open = false
	}
	if apiKey, ok := flags["api-key"].(string); ok && apiKey != "" {
		c.API.Key = apiKey
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
}

// Load loads configuration from all sources with proper precedence
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// Try to load .env files (don't fail if they don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".env"))
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".xfollow.env"))

	// Start with defaults
	config := DefaultConfig()

	// Load from config file
	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	// Override with environment variables (includes values from .env)
	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Apply command line flags last
	config.MergeCommandLineFlags(flags)

	return config, nil
}

// AccountIndex is a bidirectional username/ID lookup built once from the
// configured accounts map, so reverse lookups are constant time.
type AccountIndex struct {
	idByUsername map[string]string
	usernameByID map[string]string
}

// AccountIndex builds the bidirectional lookup from the configured accounts.
func (c *Config) AccountIndex() *AccountIndex {
	ix := &AccountIndex{
		idByUsername: make(map[string]string, len(c.Accounts)),
		usernameByID: make(map[string]string, len(c.Accounts)),
	}
	for username, id := range c.Accounts {
		ix.idByUsername[username] = id
		ix.usernameByID[id] = username
	}
	return ix
}

// IDs returns all configured external IDs in a stable order.
func (ix *AccountIndex) IDs() []string {
	ids := make([]string, 0, len(ix.idByUsername))
	for _, id := range ix.idByUsername {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// UsernameForID resolves an external ID back to its configured username.
func (ix *AccountIndex) UsernameForID(id string) (string, bool) {
	username, ok := ix.usernameByID[id]
	return username, ok
}

// IDForUsername resolves a configured username to its external ID.
func (ix *AccountIndex) IDForUsername(username string) (string, bool) {
	id, ok := ix.idByUsername[username]
	return id, ok
}

// Len returns the number of configured accounts.
func (ix *AccountIndex) Len() int {
	return len(ix.idByUsername)
}
