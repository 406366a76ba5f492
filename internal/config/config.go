package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	DataDir             string        `mapstructure:"data_dir"`
	OutputDir           string        `mapstructure:"output_dir"`
	AutosaveDelay       time.Duration `mapstructure:"autosave_delay"`
	ExportTimeout       time.Duration `mapstructure:"export_timeout"`
	ChromePath          string        `mapstructure:"chrome_path"`
	NoSandbox           bool          `mapstructure:"no_sandbox"`
	AutoDownloadBrowser bool          `mapstructure:"auto_download_browser"`
	ListenAddr          string        `mapstructure:"listen_addr"`
	LogLevel            string        `mapstructure:"log_level"`
}

var AppConfig *Config

// ErrUnknownKey is returned by Set for keys the application does not read
var ErrUnknownKey = errors.New("unknown configuration key")

func defaults(dir string) map[string]any {
	return map[string]any{
		"data_dir":              dir,
		"output_dir":            ".",
		"autosave_delay":        "600ms",
		"export_timeout":        "60s",
		"chrome_path":           "",
		"no_sandbox":            false,
		"auto_download_browser": false,
		"listen_addr":           "127.0.0.1:4790",
		"log_level":             "info",
	}
}

// Initialize loads or creates ~/.fadcv/config.yaml
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	return InitializeAt(filepath.Join(homeDir, ".fadcv"))
}

// InitializeAt loads or creates config.yaml inside configDir. A .env file
// in the working directory and FADCV_* environment variables override the
// file.
func InitializeAt(configDir string) error {
	configFile := filepath.Join(configDir, "config.yaml")

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Create default config if it doesn't exist
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		if err := createDefaultConfig(configFile, configDir); err != nil {
			return err
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	viper.SetConfigFile(configFile)
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("FADCV")
	viper.AutomaticEnv()

	for k, v := range defaults(configDir) {
		viper.SetDefault(k, v)
	}

	// Read config
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	// Unmarshal into struct
	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	AppConfig = cfg
	return nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig(path, dir string) error {
	defaultConfig := fmt.Sprintf(`# FadCV Configuration
# Where the CV database lives
data_dir: %q
# Where exported PDFs are written
output_dir: "."

# Quiet period before edits are written
autosave_delay: 600ms
export_timeout: 60s

# Headless Chrome used for PDF export. Leave chrome_path empty to search the
# usual locations; auto_download_browser fetches Chromium when none is found.
chrome_path: ""
no_sandbox: false
auto_download_browser: false

# Preview server
listen_addr: 127.0.0.1:4790

# debug, info, warn, error
log_level: info
`, dir)
	return os.WriteFile(path, []byte(defaultConfig), 0600)
}

// Set updates a configuration value
func Set(key, value string) error {
	if _, ok := defaults("")[key]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	viper.Set(key, value)
	return viper.WriteConfig()
}

// Get retrieves a configuration value
func Get(key string) string {
	return viper.GetString(key)
}

// Keys returns the configuration keys in alphabetical order
func Keys() []string {
	keys := make([]string, 0, len(defaults("")))
	for k := range defaults("") {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetConfigPath returns the path of the loaded config file
func GetConfigPath() string {
	if f := viper.ConfigFileUsed(); f != "" {
		return f
	}
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".fadcv", "config.yaml")
}
