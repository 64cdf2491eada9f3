package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Browse  BrowseConfig  `mapstructure:"browse"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig holds catalog API configuration
type APIConfig struct {
	BaseURL string `mapstructure:"base_url"` // Listen API base URL
	Key     string `mapstructure:"key"`      // API key sent as X-ListenAPI-Key
	GenreID int    `mapstructure:"genre_id"` // Catalog genre to browse
	Region  string `mapstructure:"region"`   // Chart region (e.g. "us")
}

// BrowseConfig holds list browsing behavior
type BrowseConfig struct {
	// TriggerThreshold is how close to the end of the loaded list the
	// cursor must be before the next page is requested.
	TriggerThreshold int `mapstructure:"trigger_threshold"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	Theme       string `mapstructure:"theme"`
	ShowDetails bool   `mapstructure:"show_details"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "https://listen-api.listennotes.com/api/v2",
			GenreID: 133, // Audiobooks chart
			Region:  "us",
		},
		Browse: BrowseConfig{
			TriggerThreshold: 5,
		},
		UI: UIConfig{
			Theme:       "default",
			ShowDetails: true,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "audioshelf", "audioshelf.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "audioshelf", "audioshelf.log")
	}
}

func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "audioshelf")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "audioshelf")
	}
}

// DefaultDataPath returns the directory for durable local state
// (the favorites database).
func DefaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "audioshelf")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "audioshelf")
	}
}

// Load loads configuration from file and environment
func Load() (*Config, error) {
	cfg := Default()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultConfigPath())
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("AUDIOSHELF")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// Save saves the current configuration to file
func Save(cfg *Config) error {
	configPath := defaultConfigPath()

	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to ensure correct key names (snake_case)
	viper.Set("api.base_url", cfg.API.BaseURL)
	viper.Set("api.key", cfg.API.Key)
	viper.Set("api.genre_id", cfg.API.GenreID)
	viper.Set("api.region", cfg.API.Region)

	viper.Set("browse.trigger_threshold", cfg.Browse.TriggerThreshold)

	viper.Set("ui.theme", cfg.UI.Theme)
	viper.Set("ui.show_details", cfg.UI.ShowDetails)

	viper.Set("logging.file", cfg.Logging.File)
	viper.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// IsConfigured returns true if the API key is set
func (c *Config) IsConfigured() bool {
	return c.API.Key != ""
}
