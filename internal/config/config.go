// Package config loads the zxdraw configuration file.
//
// The file is TOML and every setting is optional:
//
//	[output]
//	dir = "diagrams"
//	formats = ["tikz", "svg"]
//
//	[cache]
//	backend = "redis"          # file, redis or none
//	dir = "/var/cache/zxdraw"  # file backend
//	ttl = "72h"
//	redis_url = "redis://localhost:6379/0"
//	namespace = "staging:"
//
//	[server]
//	addr = ":8080"
//
// Relative directories are resolved against the directory holding the file.
package config

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/zxdraw/pkg/cache"
	"github.com/matzehuels/zxdraw/pkg/errors"
	"github.com/matzehuels/zxdraw/pkg/pipeline"
)

const appName = "zxdraw"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the decoded configuration file.
type Config struct {
	Output OutputConfig `toml:"output"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// OutputConfig holds defaults for written artifacts.
type OutputConfig struct {
	Dir     string   `toml:"dir"` // empty means the working directory
	Formats []string `toml:"formats"`
}

// CacheConfig selects and configures the artifact cache.
type CacheConfig struct {
	Backend   string   `toml:"backend"`
	Dir       string   `toml:"dir"`
	TTL       Duration `toml:"ttl"`
	RedisURL  string   `toml:"redis_url"`
	Namespace string   `toml:"namespace"`
}

// ServerConfig configures the HTTP service.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Duration is a time.Duration written as a Go duration string ("36h").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Output: OutputConfig{Formats: []string{pipeline.DefaultFormat}},
		Cache:  CacheConfig{Backend: BackendFile, TTL: Duration{cache.DefaultTTL}},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/zxdraw/config.toml, falling back to
// ~/.config/zxdraw/config.toml.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the configuration at path on top of [Default].
//
// An empty path means [DefaultPath], and a missing default file is not an
// error. An explicitly named file must exist. Unknown keys, backends and
// formats are rejected with INVALID_CONFIG.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown setting %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", path)
	}
	cfg.resolvePaths(filepath.Dir(path))
	return cfg, nil
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (want file, redis or none)", c.Cache.Backend)
	}
	if c.Cache.Backend == BackendRedis && c.Cache.RedisURL == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_url is required for the redis backend")
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	if err := pipeline.ValidateFormats(c.Output.Formats); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "output.formats")
	}
	return nil
}

func (c *Config) resolvePaths(base string) {
	for _, p := range []*string{&c.Output.Dir, &c.Cache.Dir} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
}

// Keyer returns the cache keyer, scoped when a namespace is set.
func (c CacheConfig) Keyer() cache.Keyer {
	if c.Namespace == "" {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), c.Namespace)
}

// Open creates the configured cache backend. Connecting to Redis is retried
// with backoff while the server is unreachable.
func (c CacheConfig) Open(ctx context.Context) (cache.Cache, error) {
	switch c.Backend {
	case BackendNone:
		return cache.NewNullCache(), nil
	case BackendRedis:
		var rc *cache.RedisCache
		err := cache.RetryWithBackoff(ctx, 3, time.Second, func() error {
			var err error
			rc, err = cache.NewRedisCache(ctx, c.RedisURL)
			return err
		})
		if err != nil {
			return nil, err
		}
		return rc, nil
	}
	dir := c.Dir
	if dir == "" {
		d, err := cache.DefaultDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		dir = d
	}
	return cache.NewFileCache(dir)
}
