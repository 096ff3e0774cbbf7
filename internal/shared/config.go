package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Catalog     CatalogConfig     `toml:"catalog"`
	Rotation    RotationConfig    `toml:"rotation"`
	Database    DatabaseConfig    `toml:"database"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	PlanningCenter PlanningCenterConfig `toml:"planning_center"`
}

// PlanningCenterConfig contains the Planning Center personal access token pair.
//
// AppID and Secret are sent as HTTP Basic credentials on every request.
type PlanningCenterConfig struct {
	AppID   string `toml:"app_id"`
	Secret  string `toml:"secret"`
	BaseURL string `toml:"base_url"`
}

// CatalogConfig controls how the song catalog is fetched.
type CatalogConfig struct {
	Order    string `toml:"order"`
	PerPage  int    `toml:"per_page"`
	AllPages bool   `toml:"all_pages"`
}

// RotationConfig controls the filter and enrichment stages of a rotation plan.
type RotationConfig struct {
	RecencyMonths      int      `toml:"recency_months"`
	TimeoutMS          int      `toml:"timeout_ms"`
	SeasonalKeywords   []string `toml:"seasonal_keywords"`
	VenueKeyword       string   `toml:"venue_keyword"`
	VenueFilterEnabled bool     `toml:"venue_filter_enabled"`
	MaxConcurrent      int      `toml:"max_concurrent"`
	RateLimit          float64  `toml:"rate_limit"`
}

// DatabaseConfig contains session store settings.
//
// The default path is ":memory:", scoping cached schedule responses to one process.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// Timeout returns the per-song schedule fetch budget as a [time.Duration].
func (r RotationConfig) Timeout() time.Duration {
	return time.Duration(r.TimeoutMS) * time.Millisecond
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s: %w", path, err)
	}

	// Write the embedded example config to the file
	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
