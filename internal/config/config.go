// Package config loads the conan-ui configuration from a TOML file with
// environment variable overrides. A .env file in the working directory is
// honored before the environment is read.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/roknus/conan-ui/pkg/cache"
	"github.com/roknus/conan-ui/pkg/errors"
)

const appName = "conan-ui"

// DefaultCORSOrigin is allowed when no origins are configured. It matches
// the development frontend.
const DefaultCORSOrigin = "http://localhost:3000"

// Config is the full application configuration.
type Config struct {
	Server  ServerConfig   `toml:"server"`
	Cache   CacheConfig    `toml:"cache"`
	Remotes []RemoteConfig `toml:"remotes"`
}

// ServerConfig configures the REST backend.
type ServerConfig struct {
	Host        string   `toml:"host"`
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// CacheConfig selects the HTTP response cache backend.
type CacheConfig struct {
	// Backend is one of "memory", "file", "redis", or "none".
	Backend  string `toml:"backend"`
	Dir      string `toml:"dir"`
	RedisURL string `toml:"redis_url"`
}

// RemoteConfig describes one Conan remote.
type RemoteConfig struct {
	Name     string `toml:"name"`
	URL      string `toml:"url"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Default  bool   `toml:"default"`
}

// Default returns the built-in configuration: the conancenter remote,
// port 8000, and an in-process cache.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        8000,
			CORSOrigins: []string{DefaultCORSOrigin},
		},
		Cache: CacheConfig{Backend: "memory"},
		Remotes: []RemoteConfig{
			{Name: "conancenter", URL: "https://center.conan.io", Default: true},
		},
	}
}

// Load builds the configuration: built-in defaults, then the TOML file at
// path (skipped when path is empty), then remotes from $CONAN_HOME, then
// environment overrides. Validation runs last.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		// The file replaces the default remote list when it declares one.
		var file Config
		if err := toml.Unmarshal(data, &file); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
		cfg = merge(cfg, file)
	}

	if home := os.Getenv("CONAN_HOME"); home != "" {
		if err := mergeConanRemotes(&cfg, filepath.Join(home, "remotes.json")); err != nil {
			return Config{}, err
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func merge(base, file Config) Config {
	if file.Server.Host != "" {
		base.Server.Host = file.Server.Host
	}
	if file.Server.Port != 0 {
		base.Server.Port = file.Server.Port
	}
	if len(file.Server.CORSOrigins) > 0 {
		base.Server.CORSOrigins = file.Server.CORSOrigins
	}
	if file.Cache.Backend != "" {
		base.Cache.Backend = file.Cache.Backend
	}
	if file.Cache.Dir != "" {
		base.Cache.Dir = file.Cache.Dir
	}
	if file.Cache.RedisURL != "" {
		base.Cache.RedisURL = file.Cache.RedisURL
	}
	if len(file.Remotes) > 0 {
		base.Remotes = file.Remotes
	}
	return base
}

// applyEnv applies environment overrides. The variable names match the
// backend's deployment environment: BACKEND_PORT, CORS_ORIGINS, and the
// CUSTOM_REMOTE_* family that injects one extra remote.
func applyEnv(cfg *Config) {
	if v := os.Getenv("BACKEND_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.Server.CORSOrigins = splitList(v)
	}
	name, url := os.Getenv("CUSTOM_REMOTE_NAME"), os.Getenv("CUSTOM_REMOTE_URL")
	if name != "" || url != "" {
		if name == "" {
			name = "custom"
		}
		// An empty URL leaves the remote configured but unavailable,
		// which /repositories reports as "Not configured".
		cfg.upsertRemote(RemoteConfig{
			Name:     name,
			URL:      url,
			User:     os.Getenv("CUSTOM_REMOTE_USER"),
			Password: os.Getenv("CUSTOM_REMOTE_PASSWORD"),
		})
	}
	if v := os.Getenv("CONAN_UI_DEFAULT_REMOTE"); v != "" {
		cfg.setDefaultRemote(v)
	}
	if v := os.Getenv("CONAN_UI_CACHE_BACKEND"); v != "" {
		cfg.Cache.Backend = v
	}
	if v := os.Getenv("CONAN_UI_CACHE_DIR"); v != "" {
		cfg.Cache.Dir = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Cache.RedisURL = v
	}
}

// upsertRemote replaces the remote with the same name or appends a new one.
// A replaced remote keeps its default flag.
func (c *Config) upsertRemote(r RemoteConfig) {
	for i, existing := range c.Remotes {
		if existing.Name == r.Name {
			r.Default = existing.Default
			c.Remotes[i] = r
			return
		}
	}
	c.Remotes = append(c.Remotes, r)
}

func (c *Config) setDefaultRemote(name string) {
	for i := range c.Remotes {
		c.Remotes[i].Default = c.Remotes[i].Name == name
	}
}

// Remote returns the remote with the given name.
func (c Config) Remote(name string) (RemoteConfig, bool) {
	for _, r := range c.Remotes {
		if r.Name == name {
			return r, true
		}
	}
	return RemoteConfig{}, false
}

// DefaultRemote returns the remote flagged as default, falling back to the
// first configured remote.
func (c Config) DefaultRemote() (RemoteConfig, bool) {
	for _, r := range c.Remotes {
		if r.Default {
			return r, true
		}
	}
	if len(c.Remotes) > 0 {
		return c.Remotes[0], true
	}
	return RemoteConfig{}, false
}

// RemoteNames returns the configured remote names in order.
func (c Config) RemoteNames() []string {
	names := make([]string, len(c.Remotes))
	for i, r := range c.Remotes {
		names[i] = r.Name
	}
	return names
}

// Validate checks the configuration for consistency.
func (c Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return errors.New(errors.ErrCodeInvalidInput, "invalid port %d", c.Server.Port)
	}

	switch c.Cache.Backend {
	case "memory", "file", "none":
	case "redis":
		if c.Cache.RedisURL == "" {
			return errors.New(errors.ErrCodeInvalidInput, "cache backend redis requires redis_url")
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q", c.Cache.Backend)
	}

	seen := make(map[string]bool, len(c.Remotes))
	for _, r := range c.Remotes {
		if err := errors.ValidateRemoteName(r.Name); err != nil {
			return err
		}
		// An empty URL is allowed: the remote shows up as unavailable.
		if r.URL != "" {
			if err := errors.ValidateURL(r.URL); err != nil {
				return fmt.Errorf("remote %s: %w", r.Name, err)
			}
		}
		if seen[r.Name] {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate remote %q", r.Name)
		}
		seen[r.Name] = true
	}
	return nil
}

// Open constructs the configured cache backend.
func (c CacheConfig) Open() (cache.Cache, error) {
	switch c.Backend {
	case "none":
		return cache.NewNullCache(), nil
	case "memory", "":
		return cache.NewMemoryCache(), nil
	case "file":
		dir := c.Dir
		if dir == "" {
			var err error
			if dir, err = CacheDir(); err != nil {
				return nil, err
			}
		}
		return cache.NewFileCache(dir)
	case "redis":
		return cache.NewRedisCache(c.RedisURL)
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q", c.Backend)
	}
}

// CacheDir returns the cache directory using the XDG standard
// (~/.cache/conan-ui/).
func CacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
