// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds the application configuration.
type Config struct {
	App       AppConfig
	Logger    LoggerConfig
	Directory DirectoryConfig
	Search    SearchConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// DirectoryConfig holds corpus data configuration.
type DirectoryConfig struct {
	// DataPath is the directory holding the corpus fixture files.
	DataPath string
	// Watch reloads the corpus when fixture files change (default: true)
	Watch bool
	// WatchSettleDelay is the quiet period before a reload (default: 500ms)
	WatchSettleDelay time.Duration
}

// SearchConfig holds query evaluation configuration.
type SearchConfig struct {
	// DebounceInterval is the input settle delay before a query is
	// evaluated (default: 250ms)
	DebounceInterval time.Duration
	// MaxSecondary caps the fuzzy fallback result list (default: 50)
	MaxSecondary int
	// ShowAllIfEmpty returns the whole corpus for an empty query (default: false)
	ShowAllIfEmpty bool
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig() (*Config, error) {
	// Define command-line flags.
	env := flag.String("env", "", "Environment (development, staging, production)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	dataPath := flag.String("data-path", "", "Path to the corpus fixture directory")
	watch := flag.String("watch", "", "Reload the corpus on fixture changes (default: true)")
	watchSettleDelay := flag.String("watch-settle-delay", "", "Quiet period before a reload (default: 500ms)")

	// Search flags
	debounceInterval := flag.String("debounce-interval", "", "Query settle delay (default: 250ms)")
	maxSecondary := flag.String("max-secondary", "", "Fuzzy fallback result cap (default: 50)")
	showAllIfEmpty := flag.String("show-all-if-empty", "", "Return the whole corpus for an empty query (default: false)")

	envFile := flag.String("env-file", ".env", "Path to .env file")

	// Parse flags but don't exit on error - we want to handle it gracefully.
	flag.Parse()

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(*envFile)

	// Build config with proper precedence.
	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Directory: DirectoryConfig{
			DataPath: getConfigValue(*dataPath, "DATA_PATH", ""),
			Watch:    getBoolConfigValue(*watch, "WATCH", true),
		},
		Search: SearchConfig{
			MaxSecondary:   getIntConfigValue(*maxSecondary, "MAX_SECONDARY", 50),
			ShowAllIfEmpty: getBoolConfigValue(*showAllIfEmpty, "SHOW_ALL_IF_EMPTY", false),
		},
	}

	// Parse durations.
	debounceStr := getConfigValue(*debounceInterval, "DEBOUNCE_INTERVAL", "250ms")
	debounce, err := time.ParseDuration(debounceStr)
	if err != nil {
		return nil, fmt.Errorf("invalid debounce interval %q: %w", debounceStr, err)
	}
	cfg.Search.DebounceInterval = debounce

	settleStr := getConfigValue(*watchSettleDelay, "WATCH_SETTLE_DELAY", "500ms")
	settle, err := time.ParseDuration(settleStr)
	if err != nil {
		return nil, fmt.Errorf("invalid watch settle delay %q: %w", settleStr, err)
	}
	cfg.Directory.WatchSettleDelay = settle

	// Expand and validate the data path.
	if err := cfg.expandDataPath(); err != nil {
		return nil, fmt.Errorf("invalid data path: %w", err)
	}

	// Validate configuration.
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	if c.App.Environment == "" {
		return errors.New("ENV is required")
	}

	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Directory.DataPath == "" {
		return errors.New("data path cannot be empty after expansion")
	}

	if c.Search.MaxSecondary <= 0 {
		return fmt.Errorf("max secondary must be positive, got %d", c.Search.MaxSecondary)
	}

	if c.Search.DebounceInterval < 0 {
		return fmt.Errorf("debounce interval cannot be negative, got %s", c.Search.DebounceInterval)
	}

	return nil
}

// expandPath expands ~ and makes the path absolute.
// If path is empty and defaultPath is provided, uses the default.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	// Expand tilde.
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	// Make absolute if needed.
	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// expandDataPath expands ~ and makes the path absolute.
// Defaults to ./data when not specified.
func (c *Config) expandDataPath() error {
	defaultPath, err := filepath.Abs("data")
	if err != nil {
		return fmt.Errorf("failed to resolve default data path: %w", err)
	}

	expanded, err := expandPath(c.Directory.DataPath, defaultPath)
	if err != nil {
		return err
	}
	c.Directory.DataPath = expanded
	return nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	// Priority 1: Command-line flag.
	if flagValue != "" {
		return flagValue
	}

	// Priority 2: Environment variable.
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}

	// Priority 3: Default value.
	return defaultValue
}

// getBoolConfigValue returns a bool from flag, env var, or default.
// Accepts: "true", "1", "yes" (case-insensitive) as true; anything else is false.
func getBoolConfigValue(flagValue, envKey string, defaultValue bool) bool {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	strValue = strings.ToLower(strValue)
	return strValue == "true" || strValue == "1" || strValue == "yes"
}

// getIntConfigValue returns an int from flag, env var, or default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	var result int
	if _, err := fmt.Sscanf(strValue, "%d", &result); err != nil {
		return defaultValue
	}
	return result
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments.
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=value.
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Remove quotes if present.
		value = strings.Trim(value, `"'`)

		// Only set if not already set (env vars take precedence over .env file).
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
