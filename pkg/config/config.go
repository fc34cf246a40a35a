package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed config.toml.sample
var configTemplate string

// Config holds the site configuration. Reports are pre-generated HTML files
// living in ReportsDir; headlines live in a SQLite database at DBPath.
type Config struct {
	ReportsDir string `toml:"reports_dir"`
	DBPath     string `toml:"db_path"`
	Host       string `toml:"host"`
	Port       string `toml:"port"`
	SiteName   string `toml:"site_name"`

	// RecentDays is how many distinct report dates the "recent" search scope
	// covers. HeadlineLimit caps unscoped title searches. Both are
	// operational knobs, not invariants.
	RecentDays    int `toml:"recent_days"`
	HeadlineLimit int `toml:"headline_limit"`

	// CaseSensitive controls title matching against the store. The site
	// search box expects case-insensitive matching, so it defaults to false.
	CaseSensitive bool `toml:"case_sensitive"`
}

func GetDefaultConfig() (*Config, error) {
	dataDir, err := GetDefaultDataDir()
	if err != nil {
		return nil, fmt.Errorf("getting default data directory: %w", err)
	}
	return &Config{
		ReportsDir:    filepath.Join(dataDir, "reports"),
		DBPath:        filepath.Join(dataDir, "headlines.db"),
		Host:          "localhost",
		Port:          "3000",
		SiteName:      "まいにゅ〜",
		RecentDays:    5,
		HeadlineLimit: 300,
	}, nil
}

func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return GetDefaultConfig()
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	defaults, err := GetDefaultConfig()
	if err != nil {
		return nil, err
	}
	if config.ReportsDir == "" {
		config.ReportsDir = defaults.ReportsDir
	}
	if config.DBPath == "" {
		config.DBPath = defaults.DBPath
	}
	if config.Host == "" {
		config.Host = defaults.Host
	}
	if config.Port == "" {
		config.Port = defaults.Port
	}
	if config.SiteName == "" {
		config.SiteName = defaults.SiteName
	}
	if config.RecentDays <= 0 {
		config.RecentDays = defaults.RecentDays
	}
	if config.HeadlineLimit <= 0 {
		config.HeadlineLimit = defaults.HeadlineLimit
	}

	return &config, nil
}

func (c *Config) SaveConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	return os.WriteFile(configPath, data, 0644)
}

// SaveTemplateConfig writes the annotated sample config with the reports
// directory placeholder replaced by the real default path.
func (c *Config) SaveTemplateConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	reportsDir := c.ReportsDir
	if reportsDir == "" {
		defaults, err := GetDefaultConfig()
		if err != nil {
			return err
		}
		reportsDir = defaults.ReportsDir
	}
	template := strings.Replace(configTemplate, "/home/user/.local/share/mainyu/reports", reportsDir, 1)
	return os.WriteFile(configPath, []byte(template), 0644)
}

// GetDefaultDataDir returns the default directory for reports and the database
func GetDefaultDataDir() (string, error) {
	// Use XDG_DATA_HOME if set, otherwise use ~/.local/share
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting user home directory: %w", err)
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	siteDir := filepath.Join(dataDir, "mainyu")

	if err := os.MkdirAll(siteDir, 0755); err != nil {
		return "", fmt.Errorf("creating data directory %s: %w", siteDir, err)
	}

	return siteDir, nil
}

// GetConfigDir returns the configuration directory for mainyu
func GetConfigDir() (string, error) {
	// Use XDG_CONFIG_HOME if set, otherwise use ~/.config
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting user home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	siteConfigDir := filepath.Join(configDir, "mainyu")

	if err := os.MkdirAll(siteConfigDir, 0755); err != nil {
		return "", fmt.Errorf("creating config directory %s: %w", siteConfigDir, err)
	}

	return siteConfigDir, nil
}

// GetDefaultConfigPath returns the default configuration file path
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}
