package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/IvanShishkin/grabber/internal/search"
	"github.com/IvanShishkin/grabber/pkg/models"
	"github.com/spf13/viper"
)

// Config represents the grabber configuration
type Config struct {
	// Search settings
	SearchType string `mapstructure:"search_type"` // contents, filenames
	Recursive  bool   `mapstructure:"recursive"`   // descend into subdirectories
	Numbered   bool   `mapstructure:"numbered"`    // show line and column numbers
	Verbose    bool   `mapstructure:"verbose"`     // print diagnostics

	// Output settings
	Format string `mapstructure:"format"` // text, json, yaml, md
	Color  string `mapstructure:"color"`  // auto, always, never
}

// Supported values
var (
	Formats     = []string{"text", "json", "yaml", "md"}
	ColorModes  = []string{"auto", "always", "never"}
	SearchTypes = []string{"contents", "filenames"}
)

// ConfigFileEnv names the environment variable holding an optional config file path
const ConfigFileEnv = "GRABBER_CONFIG"

// LoadConfig loads configuration from defaults, environment variables and,
// when configFile (or GRABBER_CONFIG) is set, a YAML config file
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("search_type", "contents")
	v.SetDefault("recursive", false)
	v.SetDefault("numbered", false)
	v.SetDefault("verbose", false)
	v.SetDefault("format", "text")
	v.SetDefault("color", "auto")

	// Read environment variables
	v.SetEnvPrefix("GRABBER")
	v.AutomaticEnv()

	if configFile == "" {
		configFile = os.Getenv(ConfigFileEnv)
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.SearchType = strings.ToLower(strings.TrimSpace(cfg.SearchType))
	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))
	cfg.Color = strings.ToLower(strings.TrimSpace(cfg.Color))

	return &cfg, nil
}

// GetSearchType returns the search type enum value
func (c *Config) GetSearchType() models.SearchType {
	st, _ := models.ParseSearchType(c.SearchType)
	return st
}

// Validate checks that every enumerated setting holds a supported value
func (c *Config) Validate() error {
	var errs []error
	if _, ok := models.ParseSearchType(c.SearchType); !ok {
		errs = append(errs, fmt.Errorf("search_type must be one of: %s (got: %s)", strings.Join(SearchTypes, ", "), c.SearchType))
	}
	if !contains(Formats, c.Format) {
		errs = append(errs, fmt.Errorf("format must be one of: %s (got: %s)", strings.Join(Formats, ", "), c.Format))
	}
	if !contains(ColorModes, c.Color) {
		errs = append(errs, fmt.Errorf("color must be one of: %s (got: %s)", strings.Join(ColorModes, ", "), c.Color))
	}
	return errors.Join(errs...)
}

// SearchConfig builds the immutable engine configuration
func (c *Config) SearchConfig() search.Config {
	return search.Config{
		SearchType: c.GetSearchType(),
		Recursive:  c.Recursive,
		Numbered:   c.Numbered,
		Verbose:    c.Verbose,
	}
}

// contains checks if a slice contains a string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
