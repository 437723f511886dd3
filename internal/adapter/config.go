package adapter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/spf13/viper"

	"github.com/mmcdole/kinoart/internal/domain"
	"github.com/mmcdole/kinoart/internal/page"
)

// Config holds all application configuration
type Config struct {
	Server      ServerConfig           `mapstructure:"server"`
	Images      ImagesConfig           `mapstructure:"images"`
	Placeholder PlaceholderConfig      `mapstructure:"placeholder"`
	Routes      map[string]RouteConfig `mapstructure:"routes"`
	HTTP        HTTPConfig             `mapstructure:"http"`
	Logging     LoggingConfig          `mapstructure:"logging"`
	Cache       CacheConfig            `mapstructure:"cache"`
}

// ServerConfig holds Jellyfin server configuration
type ServerConfig struct {
	URL      string `mapstructure:"url"`      // Server base URL, images are requested relative to it
	Token    string `mapstructure:"token"`    // Access token or API key
	UserID   string `mapstructure:"user_id"`
	Username string `mapstructure:"username"` // Display only
}

// ImagesConfig holds the default image request parameters
type ImagesConfig struct {
	Quality int     `mapstructure:"quality"`
	Ratio   float64 `mapstructure:"ratio"` // device pixel ratio
	Width   int     `mapstructure:"width"` // 0 means unbounded
}

// PlaceholderConfig holds blurhash decoding configuration
type PlaceholderConfig struct {
	Workers int `mapstructure:"workers"` // 0 means one per CPU
	Width   int `mapstructure:"width"`
	Height  int `mapstructure:"height"`
	Punch   int `mapstructure:"punch"`
}

// RouteConfig is the view metadata of one screen. Backdrop is either a bool or
// a map with an opacity.
type RouteConfig struct {
	TransparentLayout bool `mapstructure:"transparent_layout"`
	Backdrop          any  `mapstructure:"backdrop"`
}

// HTTPConfig holds the API server configuration
type HTTPConfig struct {
	Listen string `mapstructure:"listen"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// CacheConfig holds the item cache configuration
type CacheConfig struct {
	Dir string `mapstructure:"dir"` // empty keeps the cache in memory only
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Images: ImagesConfig{
			Quality: 90,
			Ratio:   1,
		},
		Placeholder: PlaceholderConfig{
			Width:  32,
			Height: 32,
			Punch:  1,
		},
		Routes: map[string]RouteConfig{
			"libraries": {},
			"items":     {Backdrop: true},
			"item":      {TransparentLayout: true, Backdrop: map[string]any{"opacity": 0.5}},
		},
		HTTP: HTTPConfig{
			Listen: ":8097",
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
		Cache: CacheConfig{
			Dir: defaultCachePath(),
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "kinoart", "kinoart.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "kinoart", "kinoart.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "kinoart")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "kinoart")
	}
}

// defaultCachePath returns the default cache directory path for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "kinoart", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "kinoart", "cache")
	}
}

// Loader reads and writes config.yaml in one directory
type Loader struct {
	v   *viper.Viper
	dir string
}

// NewLoader creates a loader for dir; "" means the OS default config directory
func NewLoader(dir string) *Loader {
	if dir == "" {
		dir = defaultConfigPath()
	}
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	// Environment variable overrides, e.g. KINOART_SERVER_URL
	v.SetEnvPrefix("KINOART")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Loader{v: v, dir: dir}
}

// Path returns the config file path
func (l *Loader) Path() string {
	return filepath.Join(l.dir, "config.yaml")
}

// Load reads the config file if one exists and applies environment overrides
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()
	l.setDefaults(cfg)

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// setDefaults registers scalar keys so that AutomaticEnv can override them
func (l *Loader) setDefaults(cfg *Config) {
	l.v.SetDefault("server.url", cfg.Server.URL)
	l.v.SetDefault("server.token", cfg.Server.Token)
	l.v.SetDefault("server.user_id", cfg.Server.UserID)
	l.v.SetDefault("server.username", cfg.Server.Username)
	l.v.SetDefault("images.quality", cfg.Images.Quality)
	l.v.SetDefault("images.ratio", cfg.Images.Ratio)
	l.v.SetDefault("images.width", cfg.Images.Width)
	l.v.SetDefault("placeholder.workers", cfg.Placeholder.Workers)
	l.v.SetDefault("placeholder.width", cfg.Placeholder.Width)
	l.v.SetDefault("placeholder.height", cfg.Placeholder.Height)
	l.v.SetDefault("placeholder.punch", cfg.Placeholder.Punch)
	l.v.SetDefault("http.listen", cfg.HTTP.Listen)
	l.v.SetDefault("logging.file", cfg.Logging.File)
	l.v.SetDefault("logging.level", cfg.Logging.Level)
	l.v.SetDefault("cache.dir", cfg.Cache.Dir)
}

// Save writes the configuration to config.yaml
func (l *Loader) Save(cfg *Config) error {
	// Set fields individually to ensure correct key names (snake_case)
	l.v.Set("server.url", cfg.Server.URL)
	l.v.Set("server.token", cfg.Server.Token)
	l.v.Set("server.user_id", cfg.Server.UserID)
	l.v.Set("server.username", cfg.Server.Username)

	l.v.Set("images.quality", cfg.Images.Quality)
	l.v.Set("images.ratio", cfg.Images.Ratio)
	l.v.Set("images.width", cfg.Images.Width)

	l.v.Set("placeholder.workers", cfg.Placeholder.Workers)
	l.v.Set("placeholder.width", cfg.Placeholder.Width)
	l.v.Set("placeholder.height", cfg.Placeholder.Height)
	l.v.Set("placeholder.punch", cfg.Placeholder.Punch)

	routes := make(map[string]any, len(cfg.Routes))
	for name, r := range cfg.Routes {
		route := map[string]any{"transparent_layout": r.TransparentLayout}
		if r.Backdrop != nil {
			route["backdrop"] = r.Backdrop
		}
		routes[name] = route
	}
	l.v.Set("routes", routes)

	l.v.Set("http.listen", cfg.HTTP.Listen)
	l.v.Set("logging.file", cfg.Logging.File)
	l.v.Set("logging.level", cfg.Logging.Level)
	l.v.Set("cache.dir", cfg.Cache.Dir)

	return l.write()
}

// ClearServer removes the server URL and credentials while preserving other settings
func (l *Loader) ClearServer() error {
	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	l.v.Set("server.url", "")
	l.v.Set("server.token", "")
	l.v.Set("server.user_id", "")
	l.v.Set("server.username", "")

	return l.write()
}

func (l *Loader) write() error {
	if err := os.MkdirAll(l.dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := l.v.WriteConfigAs(l.Path()); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// IsConfigured returns true if the server URL and token are set
func (c *Config) IsConfigured() bool {
	return c.Server.URL != "" && c.Server.Token != ""
}

// RequireServer returns domain.ErrNotConfigured unless IsConfigured
func (c *Config) RequireServer() error {
	if !c.IsConfigured() {
		return fmt.Errorf("run 'kinoart setup' first: %w", domain.ErrNotConfigured)
	}
	return nil
}

// RouteTable converts the route section into page metadata
func (c *Config) RouteTable() (map[string]page.RouteMeta, error) {
	names := make([]string, 0, len(c.Routes))
	for name := range c.Routes {
		names = append(names, name)
	}
	sort.Strings(names)

	table := make(map[string]page.RouteMeta, len(names))
	for _, name := range names {
		r := c.Routes[name]
		backdrop, err := page.ParseBackdropMeta(r.Backdrop)
		if err != nil {
			return nil, fmt.Errorf("route %s: %w", name, err)
		}
		table[name] = page.RouteMeta{TransparentLayout: r.TransparentLayout, Backdrop: backdrop}
	}
	return table, nil
}

// ClearCache removes all cached data under dir
func ClearCache(dir string) error {
	if dir == "" {
		return nil
	}
	if err := os.RemoveAll(dir); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}
