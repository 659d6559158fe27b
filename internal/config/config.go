package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

const (
	// BackendJSON stores the snapshot as a pretty-printed JSON file.
	BackendJSON = "json"
	// BackendSQLite stores the snapshot in an embedded SQLite database.
	BackendSQLite = "sqlite"
)

// Config holds all configuration for the application.
type Config struct {
	DataDir       string
	StoreBackend  string
	StorePath     string
	APIPort       string
	LogLevel      slog.Level
	LogFormat     string
	WatchPatterns []string
}

// fileConfig mirrors the optional TOML configuration file.
type fileConfig struct {
	DataDir       string   `toml:"data_dir"`
	StoreBackend  string   `toml:"store_backend"`
	StorePath     string   `toml:"store_path"`
	APIPort       string   `toml:"api_port"`
	LogLevel      string   `toml:"log_level"`
	LogFormat     string   `toml:"log_format"`
	WatchPatterns []string `toml:"watch_patterns"`
}

// Load reads configuration and returns a Config struct.
// Values come from defaults, then the TOML file (if any), then environment variables.
// If a .env file exists in the current directory or a parent, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	loadDotEnv()

	dataDir := getEnv("MDKB_DATA_DIR", "")
	if dataDir == "" {
		dataDir = defaultDataDir()
	}

	file, err := readFileConfig(getEnv("MDKB_CONFIG_FILE", filepath.Join(dataDir, "config.toml")))
	if err != nil {
		return nil, err
	}
	if file.DataDir != "" && os.Getenv("MDKB_DATA_DIR") == "" {
		dataDir = file.DataDir
	}

	backend := getEnv("MDKB_STORE_BACKEND", orDefault(file.StoreBackend, BackendJSON))
	if backend != BackendJSON && backend != BackendSQLite {
		return nil, fmt.Errorf("MDKB_STORE_BACKEND must be %q or %q, got %q", BackendJSON, BackendSQLite, backend)
	}

	storePath := getEnv("MDKB_STORE_PATH", orDefault(file.StorePath, filepath.Join(dataDir, defaultStoreFile(backend))))

	level, err := parseLevel(getEnv("MDKB_LOG_LEVEL", orDefault(file.LogLevel, "info")))
	if err != nil {
		return nil, err
	}

	format := strings.ToLower(getEnv("MDKB_LOG_FORMAT", orDefault(file.LogFormat, "text")))
	if format != "text" && format != "json" {
		return nil, fmt.Errorf("MDKB_LOG_FORMAT must be text or json, got %q", format)
	}

	patterns := file.WatchPatterns
	if env := os.Getenv("MDKB_WATCH_PATTERNS"); env != "" || len(patterns) == 0 {
		patterns = splitList(orDefault(env, "*.md,*.markdown"))
	}
	if len(patterns) == 0 {
		return nil, fmt.Errorf("MDKB_WATCH_PATTERNS must contain at least one pattern")
	}

	cfg := &Config{
		DataDir:       dataDir,
		StoreBackend:  backend,
		StorePath:     storePath,
		APIPort:       getEnv("MDKB_API_PORT", orDefault(file.APIPort, "9000")),
		LogLevel:      level,
		LogFormat:     format,
		WatchPatterns: patterns,
	}

	// Create the storage directory so the first write succeeds
	if err := os.MkdirAll(filepath.Dir(cfg.StorePath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// NewLogger builds the process logger from the configured level and format.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: c.LogLevel,
	}
	var handler slog.Handler
	if c.LogFormat == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// loadDotEnv loads .env from the current directory, then walks up to find one in a parent.
func loadDotEnv() {
	_ = godotenv.Load() // Try current directory

	wd, err := os.Getwd()
	if err != nil {
		return
	}
	dir := wd
	for i := 0; i < 5; i++ { // Limit search depth
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return // Reached filesystem root
		}
		dir = parent
	}
}

// readFileConfig decodes the TOML file at path. A missing file is not an error.
func readFileConfig(path string) (fileConfig, error) {
	var fc fileConfig
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return fc, nil
	}
	if err != nil {
		return fc, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return fc, nil
}

// defaultDataDir returns the per-user knowledge base directory.
func defaultDataDir() string {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		if home, err := os.UserHomeDir(); err == nil {
			base = filepath.Join(home, ".local", "share")
		} else {
			base = "."
		}
	}
	return filepath.Join(base, "mdkb", "knowledge_bases")
}

func defaultStoreFile(backend string) string {
	if backend == BackendSQLite {
		return "kb_data.db"
	}
	return "kb_data.json"
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("MDKB_LOG_LEVEL must be debug, info, warn or error: %w", err)
	}
	return level, nil
}

// splitList splits a comma separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func orDefault(value, defaultValue string) string {
	if value != "" {
		return value
	}
	return defaultValue
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
