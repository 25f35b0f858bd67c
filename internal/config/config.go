// Package config loads the brush configuration file.
//
// Values are layered: built-in defaults, then the YAML or JSON file, then
// the PAINTBOTS_URL environment variable. Command line flags are applied
// last by the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/brush/pkg/adapters/file"
	brushhttp "github.com/aretw0/brush/pkg/adapters/http"
	"github.com/aretw0/brush/pkg/domain"
	"github.com/aretw0/brush/pkg/draw"
	"github.com/aretw0/brush/pkg/persistence/middleware"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// EnvURL names the environment variable that overrides the service URL.
const EnvURL = "PAINTBOTS_URL"

// EnvIdentityKey names the environment variable holding the identity
// encryption key.
const EnvIdentityKey = "BRUSH_IDENTITY_KEY"

// DefaultName is the bot name used when none is configured.
const DefaultName = "Bob"

// DefaultPath is the config file read when none is given.
const DefaultPath = "brush.yaml"

// Identity store backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config is the complete client configuration.
type Config struct {
	URL      string         `yaml:"url" json:"url"`
	Name     string         `yaml:"name" json:"name"`
	Timeout  string         `yaml:"timeout" json:"timeout"`
	Dedupe   bool           `yaml:"dedupe" json:"dedupe"`
	Log      LogConfig      `yaml:"log" json:"log"`
	Identity IdentityConfig `yaml:"identity" json:"identity"`
	Lock     LockConfig     `yaml:"lock" json:"lock"`
	Shapes   []ShapeConfig  `yaml:"shapes" json:"shapes"`
}

type LogConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}

// IdentityConfig selects where the registered bot id is remembered.
type IdentityConfig struct {
	Backend string      `yaml:"backend" json:"backend"`
	Path    string      `yaml:"path" json:"path"` // file or sqlite database
	Redis   RedisConfig `yaml:"redis" json:"redis"`
	// Key is a base64 AES-256 key. When set, bot ids are stored encrypted.
	Key     string      `yaml:"key" json:"key"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" json:"addr"`
	Password string `yaml:"password" json:"password"`
	DB       int    `yaml:"db" json:"db"`
	Prefix   string `yaml:"prefix" json:"prefix"`
}

// LockConfig enables the Redis bot lock. It uses Identity.Redis.
type LockConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	TTL     string `yaml:"ttl" json:"ttl"`
}

// ShapeConfig is one program step: a kind and its parameters.
type ShapeConfig struct {
	Kind   string         `yaml:"kind" json:"kind"`
	Params map[string]any `yaml:"params" json:"params"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		URL:     brushhttp.DefaultURL,
		Name:    DefaultName,
		Timeout: "10s",
		Dedupe:  true,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Identity: IdentityConfig{
			Backend: BackendFile,
			Path:    file.DefaultPath,
		},
		Lock: LockConfig{
			TTL: "1m",
		},
	}
}

// Load reads path on top of Default and applies the environment.
// A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return cfg, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := decode(path, data, &cfg); err != nil {
				return cfg, err
			}
		}
	}

	if url := os.Getenv(EnvURL); url != "" {
		cfg.URL = url
	}
	if key := os.Getenv(EnvIdentityKey); key != "" {
		cfg.Identity.Key = key
	}
	return cfg, cfg.Validate()
}

func decode(path string, data []byte, cfg *Config) error {
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
		return nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

// Validate checks the values that would otherwise fail late.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: bot name is empty", domain.ErrParameter)
	}
	if _, err := c.RequestTimeout(); err != nil {
		return err
	}
	if _, err := c.LockTTL(); err != nil {
		return err
	}
	switch c.Identity.Backend {
	case BackendFile, BackendSQLite, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("%w: unknown identity backend %q", domain.ErrParameter, c.Identity.Backend)
	}
	if c.Identity.Key != "" {
		if _, err := middleware.ParseKey(c.Identity.Key); err != nil {
			return err
		}
	}
	return nil
}

// RequestTimeout parses Timeout. Empty means no timeout.
func (c Config) RequestTimeout() (time.Duration, error) {
	return parseDuration("timeout", c.Timeout)
}

// LockTTL parses Lock.TTL.
func (c Config) LockTTL() (time.Duration, error) {
	return parseDuration("lock ttl", c.Lock.TTL)
}

func parseDuration(name, s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%w: invalid %s %q", domain.ErrParameter, name, s)
	}
	return d, nil
}

// Program builds the configured shapes, or the classic program if none are set.
func (c Config) Program() ([]draw.Shape, error) {
	if len(c.Shapes) == 0 {
		return draw.ClassicProgram(), nil
	}
	shapes := make([]draw.Shape, 0, len(c.Shapes))
	for i, sc := range c.Shapes {
		shape, err := sc.Build()
		if err != nil {
			return nil, fmt.Errorf("shape %d: %w", i, err)
		}
		shapes = append(shapes, shape)
	}
	return shapes, nil
}

// Build decodes Params into the shape named by Kind.
func (s ShapeConfig) Build() (draw.Shape, error) {
	var (
		shape draw.Shape
		err   error
	)
	switch strings.ToLower(s.Kind) {
	case "move":
		var m draw.MoveShape
		err = decodeParams(s.Params, &m)
		shape = m
	case "circle":
		var c draw.CircleShape
		err = decodeParams(s.Params, &c)
		shape = c
	case "droplet":
		var d draw.DropletShape
		err = decodeParams(s.Params, &d)
		shape = d
	case "wave":
		w := draw.DefaultWaveConfig()
		err = decodeParams(s.Params, &w)
		shape = w
	default:
		return nil, fmt.Errorf("%w: unknown shape kind %q", domain.ErrParameter, s.Kind)
	}
	if err != nil {
		return nil, err
	}
	return shape, nil
}

func decodeParams(params map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(params); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrParameter, err)
	}
	return nil
}
