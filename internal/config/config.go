package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPrefix  = "FLIX"
	configName = "config"
	configType = "yaml"
)

// Environment variables holding the catalog API key, in lookup order
var apiKeyEnv = []string{"FLIX_CATALOG_API_KEY", "TMDB_API_KEY"}

// Config holds all application configuration
type Config struct {
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Search    SearchConfig    `mapstructure:"search"`
	Bookmarks BookmarksConfig `mapstructure:"bookmarks"`
	User      UserConfig      `mapstructure:"user"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// CatalogConfig holds catalog API configuration
type CatalogConfig struct {
	BaseURL         string        `mapstructure:"base_url"`
	APIKey          string        `mapstructure:"api_key"`
	ImageBaseURL    string        `mapstructure:"image_base_url"`
	Timeout         time.Duration `mapstructure:"timeout"`
	CacheTTL        time.Duration `mapstructure:"cache_ttl"`
	CacheMaxEntries int           `mapstructure:"cache_max_entries"` // 0 = unbounded
	Language        string        `mapstructure:"language"`          // collation locale for title sorting
}

// SearchConfig holds search input configuration
type SearchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// BookmarksConfig holds bookmark persistence configuration
type BookmarksConfig struct {
	Path string `mapstructure:"path"` // empty keeps bookmarks in memory only
}

// UserConfig identifies the local user to the bookmark store
type UserConfig struct {
	ID string `mapstructure:"id"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			BaseURL:      "https://api.themoviedb.org/3",
			ImageBaseURL: "https://image.tmdb.org/t/p",
			Timeout:      30 * time.Second,
			CacheTTL:     5 * time.Minute,
			Language:     "en",
		},
		Search: SearchConfig{
			Debounce: 300 * time.Millisecond,
		},
		Bookmarks: BookmarksConfig{
			Path: filepath.Join(defaultDataPath(), "bookmarks.db"),
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "flix.log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "flix")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "flix")
	}
}

// DefaultConfigPath returns the default config directory for the current OS
func DefaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "flix")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "flix")
	}
}

// Loader reads and writes configuration in a single directory.
type Loader struct {
	dir string
	v   *viper.Viper
}

// NewLoader creates a loader for dir; empty dir selects DefaultConfigPath.
func NewLoader(dir string) *Loader {
	if dir == "" {
		dir = DefaultConfigPath()
	}
	return &Loader{dir: dir, v: viper.New()}
}

// Load reads .env, the config file and FLIX_* environment overrides, in
// increasing order of precedence over the defaults. A missing file is not an error.
func (l *Loader) Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	cfg := DefaultConfig()
	v := l.v

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(l.dir)
	v.AddConfigPath(".")

	// Every key needs a default for AutomaticEnv to see it during Unmarshal
	setDefaults(v, cfg)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv(append([]string{"catalog.api_key"}, apiKeyEnv...)...)
	_ = v.BindEnv("catalog.base_url", "FLIX_CATALOG_BASE_URL", "TMDB_BASE_URL")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("catalog.base_url", cfg.Catalog.BaseURL)
	v.SetDefault("catalog.api_key", cfg.Catalog.APIKey)
	v.SetDefault("catalog.image_base_url", cfg.Catalog.ImageBaseURL)
	v.SetDefault("catalog.timeout", cfg.Catalog.Timeout)
	v.SetDefault("catalog.cache_ttl", cfg.Catalog.CacheTTL)
	v.SetDefault("catalog.cache_max_entries", cfg.Catalog.CacheMaxEntries)
	v.SetDefault("catalog.language", cfg.Catalog.Language)
	v.SetDefault("search.debounce", cfg.Search.Debounce)
	v.SetDefault("bookmarks.path", cfg.Bookmarks.Path)
	v.SetDefault("user.id", cfg.User.ID)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

// Save writes cfg to <dir>/config.yaml. An API key supplied through the
// environment is not persisted unless the file already held one.
func (l *Loader) Save(cfg *Config) error {
	if err := os.MkdirAll(l.dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	out := viper.New()
	out.Set("catalog.base_url", cfg.Catalog.BaseURL)
	if l.v.InConfig("catalog.api_key") || !apiKeyFromEnv() {
		out.Set("catalog.api_key", cfg.Catalog.APIKey)
	}
	out.Set("catalog.image_base_url", cfg.Catalog.ImageBaseURL)
	out.Set("catalog.timeout", cfg.Catalog.Timeout.String())
	out.Set("catalog.cache_ttl", cfg.Catalog.CacheTTL.String())
	out.Set("catalog.cache_max_entries", cfg.Catalog.CacheMaxEntries)
	out.Set("catalog.language", cfg.Catalog.Language)
	out.Set("search.debounce", cfg.Search.Debounce.String())
	out.Set("bookmarks.path", cfg.Bookmarks.Path)
	out.Set("user.id", cfg.User.ID)
	out.Set("logging.file", cfg.Logging.File)
	out.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(l.dir, configName+"."+configType)
	if err := out.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func apiKeyFromEnv() bool {
	for _, name := range apiKeyEnv {
		if os.Getenv(name) != "" {
			return true
		}
	}
	return false
}

// EnsureUserID assigns a random user id if none is configured.
// Returns true if an id was generated and the config should be saved.
func (c *Config) EnsureUserID() bool {
	if c.User.ID != "" {
		return false
	}
	c.User.ID = uuid.NewString()
	return true
}

// IsConfigured returns true if a catalog API key is set
func (c *Config) IsConfigured() bool {
	return c.Catalog.APIKey != ""
}
