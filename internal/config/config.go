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
	Data      DataConfig
	Server    ServerConfig
	Auth      AuthConfig
	Providers ProvidersConfig
	Import    ImportConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// DataConfig holds storage paths. Database, provider cache and suggest
// index all live under BasePath.
type DataConfig struct {
	BasePath string
}

// DatabasePath returns the SQLite database file location.
func (d DataConfig) DatabasePath() string {
	return filepath.Join(d.BasePath, "moodshelf.db")
}

// CachePath returns the badger provider-cache directory.
func (d DataConfig) CachePath() string {
	return filepath.Join(d.BasePath, "cache")
}

// IndexPath returns the suggest-index directory.
func (d DataConfig) IndexPath() string {
	return filepath.Join(d.BasePath, "index")
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	Port         string        // Server port (default: 8080)
	ReadTimeout  time.Duration // HTTP read timeout (default: 15s)
	WriteTimeout time.Duration // HTTP write timeout (default: 15s)
	IdleTimeout  time.Duration // HTTP idle timeout (default: 60s)
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	// PASETO v4 symmetric key for access tokens (32 bytes).
	// Set by auth.LoadOrGenerateKey in main.
	AccessTokenKey []byte

	AccessTokenDuration time.Duration // e.g., 24h
}

// ProvidersConfig holds external catalog provider configuration.
type ProvidersConfig struct {
	OpenLibraryEnabled bool
	GoogleBooksEnabled bool
	GoogleBooksAPIKey  string
	GoodreadsEnabled   bool
	GoodreadsAPIKey    string
	StoryGraphEnabled  bool

	// SearchTimeout bounds each provider call during a fan-out search.
	SearchTimeout time.Duration
}

// ImportConfig holds thread-importer configuration.
type ImportConfig struct {
	Subreddits []string // subreddits polled for top posts
	TopWindow  string   // "day", "week", "month", "year", "all"
	UserAgent  string   // User-Agent for Reddit requests
	DropDir    string   // directory watched for exported thread JSON (empty disables)
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig() (*Config, error) {
	env := flag.String("env", "", "Environment (development, staging, production)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	dataPath := flag.String("data-path", "", "Base path for data storage")

	serverPort := flag.String("port", "", "Server port (default: 8080)")
	readTimeout := flag.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := flag.String("write-timeout", "", "HTTP write timeout (default: 15s)")
	idleTimeout := flag.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")

	accessTokenDuration := flag.String("access-token-duration", "", "Access token lifetime (e.g., 24h)")

	googleBooksKey := flag.String("googlebooks-api-key", "", "Google Books API key")
	goodreadsKey := flag.String("goodreads-api-key", "", "Goodreads developer key")
	searchTimeout := flag.String("search-timeout", "", "Per-provider search timeout (default: 8s)")

	subreddits := flag.String("import-subreddits", "", "Comma-separated subreddits to import threads from")
	importDropDir := flag.String("import-drop-dir", "", "Directory watched for exported thread JSON files")

	envFile := flag.String("env-file", ".env", "Path to .env file")

	flag.Parse()

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(*envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Data: DataConfig{
			BasePath: getConfigValue(*dataPath, "DATA_PATH", ""),
		},
		Server: ServerConfig{
			Port: getConfigValue(*serverPort, "SERVER_PORT", "8080"),
		},
		Providers: ProvidersConfig{
			OpenLibraryEnabled: getBoolConfigValue("", "OPENLIBRARY_ENABLED", true),
			GoogleBooksEnabled: getBoolConfigValue("", "GOOGLEBOOKS_ENABLED", true),
			GoogleBooksAPIKey:  getConfigValue(*googleBooksKey, "GOOGLEBOOKS_API_KEY", ""),
			GoodreadsEnabled:   getBoolConfigValue("", "GOODREADS_ENABLED", false),
			GoodreadsAPIKey:    getConfigValue(*goodreadsKey, "GOODREADS_API_KEY", ""),
			StoryGraphEnabled:  getBoolConfigValue("", "STORYGRAPH_ENABLED", false),
		},
		Import: ImportConfig{
			Subreddits: splitList(getConfigValue(*subreddits, "IMPORT_SUBREDDITS", "suggestmeabook,books")),
			TopWindow:  getConfigValue("", "IMPORT_TOP_WINDOW", "week"),
			UserAgent:  getConfigValue("", "IMPORT_USER_AGENT", "moodshelf:thread-importer:v1.0"),
			DropDir:    getConfigValue(*importDropDir, "IMPORT_DROP_DIR", ""),
		},
	}

	accessDurationStr := getConfigValue(*accessTokenDuration, "ACCESS_TOKEN_DURATION", "24h")
	accessDuration, err := time.ParseDuration(accessDurationStr)
	if err != nil {
		return nil, fmt.Errorf("invalid access token duration %q: %w", accessDurationStr, err)
	}
	cfg.Auth.AccessTokenDuration = accessDuration

	searchTimeoutStr := getConfigValue(*searchTimeout, "SEARCH_TIMEOUT", "8s")
	searchTimeoutDuration, err := time.ParseDuration(searchTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid search timeout %q: %w", searchTimeoutStr, err)
	}
	cfg.Providers.SearchTimeout = searchTimeoutDuration

	readTimeoutStr := getConfigValue(*readTimeout, "SERVER_READ_TIMEOUT", "15s")
	cfg.Server.ReadTimeout, err = time.ParseDuration(readTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid read timeout %q: %w", readTimeoutStr, err)
	}

	writeTimeoutStr := getConfigValue(*writeTimeout, "SERVER_WRITE_TIMEOUT", "15s")
	cfg.Server.WriteTimeout, err = time.ParseDuration(writeTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid write timeout %q: %w", writeTimeoutStr, err)
	}

	idleTimeoutStr := getConfigValue(*idleTimeout, "SERVER_IDLE_TIMEOUT", "60s")
	cfg.Server.IdleTimeout, err = time.ParseDuration(idleTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid idle timeout %q: %w", idleTimeoutStr, err)
	}

	if err := cfg.expandDataPath(); err != nil {
		return nil, fmt.Errorf("invalid data path: %w", err)
	}

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

	if c.Data.BasePath == "" {
		return errors.New("data base path cannot be empty after expansion")
	}

	validWindows := map[string]bool{
		"day": true, "week": true, "month": true, "year": true, "all": true,
	}
	if !validWindows[c.Import.TopWindow] {
		return fmt.Errorf("invalid import top window: %s", c.Import.TopWindow)
	}

	if c.Providers.GoodreadsEnabled && c.Providers.GoodreadsAPIKey == "" {
		return errors.New("goodreads enabled but GOODREADS_API_KEY is empty")
	}

	return nil
}

// expandPath expands ~ and makes the path absolute.
// If path is empty and defaultPath is provided, uses the default.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// expandDataPath expands ~ and makes the path absolute, defaulting to
// ~/Moodshelf/data.
func (c *Config) expandDataPath() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	defaultPath := filepath.Join(homeDir, "Moodshelf", "data")

	expanded, err := expandPath(c.Data.BasePath, defaultPath)
	if err != nil {
		return err
	}
	c.Data.BasePath = expanded
	return nil
}

// splitList splits a comma-separated value, trimming whitespace and
// dropping empties.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}

	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}

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

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		value = strings.Trim(value, `"'`)

		// Env vars take precedence over the .env file.
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
