// Package cli wires configuration, adapters and presentation for the brush
// commands.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/brush"
	"github.com/aretw0/brush/internal/config"
	"github.com/aretw0/brush/internal/logging"
	"github.com/aretw0/brush/pkg/adapters/file"
	brushhttp "github.com/aretw0/brush/pkg/adapters/http"
	"github.com/aretw0/brush/pkg/adapters/memory"
	"github.com/aretw0/brush/pkg/adapters/redis"
	"github.com/aretw0/brush/pkg/adapters/sqlite"
	"github.com/aretw0/brush/pkg/domain"
	"github.com/aretw0/brush/pkg/draw"
	"github.com/aretw0/brush/pkg/persistence/middleware"
	"github.com/aretw0/brush/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// DefaultDryRunCanvas is the canvas size used by dry runs.
var DefaultDryRunCanvas = domain.CanvasDimensions{Width: 80, Height: 40}

// Options are the flags shared by the commands that drive a bot.
type Options struct {
	ConfigPath string
	URL        string
	Name       string
	Debug      bool

	// DryRun draws on an in-memory canvas of DryRunCanvas size.
	DryRun       bool
	DryRunCanvas domain.CanvasDimensions

	Hooks       domain.CommandHooks
	SessionOpts []draw.Option
	LogOutput   io.Writer
}

// Setup is a ready-to-use client and the resources behind it.
type Setup struct {
	Config config.Config
	Logger *slog.Logger
	Client *brush.Client

	// Canvas is the in-memory canvas of a dry run, nil otherwise.
	Canvas *memory.Canvas

	closers []io.Closer
}

// Close releases stores and connections opened by NewSetup.
func (s *Setup) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i].Close())
	}
	return errors.Join(errs...)
}

// LoadConfig loads the config file and applies flag overrides.
func LoadConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return cfg, err
	}
	if opts.URL != "" {
		cfg.URL = opts.URL
	}
	if opts.Name != "" {
		cfg.Name = opts.Name
	}
	if opts.Debug {
		cfg.Log.Level = "debug"
	}
	return cfg, cfg.Validate()
}

// NewLogger builds the application logger from cfg.
func NewLogger(cfg config.Config, out io.Writer) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	logOpts := []logging.Option{logging.WithFormat(logging.Format(cfg.Log.Format))}
	if out != nil {
		logOpts = append(logOpts, logging.WithOutput(out))
	}
	return logging.New(level, logOpts...), nil
}

// OpenIdentityStore opens the backend selected by cfg, logging operations
// and encrypting ids when a key is configured. The returned closer may be nil.
func OpenIdentityStore(cfg config.Config, logger *slog.Logger) (ports.IdentityStore, io.Closer, error) {
	store, closer, err := openBackend(cfg)
	if err != nil {
		return nil, nil, err
	}
	mws := []middleware.Middleware{middleware.NewLoggingMiddleware(logger)}
	if cfg.Identity.Key != "" {
		key, err := middleware.ParseKey(cfg.Identity.Key)
		if err != nil {
			return nil, nil, errors.Join(err, closeIf(closer))
		}
		enc, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})
		if err != nil {
			return nil, nil, errors.Join(err, closeIf(closer))
		}
		mws = append(mws, enc)
	}
	return middleware.Chain(store, mws...), closer, nil
}

func closeIf(c io.Closer) error {
	if c == nil {
		return nil
	}
	return c.Close()
}

func openBackend(cfg config.Config) (ports.IdentityStore, io.Closer, error) {
	switch cfg.Identity.Backend {
	case config.BackendFile:
		return file.New(cfg.Identity.Path), nil, nil
	case config.BackendSQLite:
		path := cfg.Identity.Path
		if path == "" || path == file.DefaultPath {
			path = "brush.db"
		}
		store, err := sqlite.Open(path)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	case config.BackendRedis:
		store := redis.NewFromClient(newRedisClient(cfg.Identity.Redis), redisOptions(cfg.Identity.Redis)...)
		return store, store, nil
	case config.BackendMemory:
		return memory.NewIdentityStore(), nil, nil
	}
	return nil, nil, fmt.Errorf("%w: unknown identity backend %q", domain.ErrParameter, cfg.Identity.Backend)
}

func newRedisClient(rc config.RedisConfig) *backend.Client {
	return backend.NewClient(&backend.Options{
		Addr:     rc.Addr,
		Password: rc.Password,
		DB:       rc.DB,
	})
}

func redisOptions(rc config.RedisConfig) []redis.Option {
	if rc.Prefix == "" {
		return nil
	}
	return []redis.Option{redis.WithPrefix(rc.Prefix)}
}

func redisPrefix(rc config.RedisConfig) string {
	if rc.Prefix == "" {
		return redis.DefaultPrefix
	}
	return rc.Prefix
}

// NewSetup builds a client from the config file and opts.
func NewSetup(opts Options) (*Setup, error) {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return nil, err
	}
	logger, err := NewLogger(cfg, opts.LogOutput)
	if err != nil {
		return nil, err
	}
	s := &Setup{Config: cfg, Logger: logger}

	clientOpts := []brush.Option{
		brush.WithLogger(logger),
		brush.WithHooks(opts.Hooks),
		brush.WithSessionOptions(draw.WithDedupe(cfg.Dedupe)),
		brush.WithSessionOptions(opts.SessionOpts...),
	}

	if opts.DryRun {
		dims := opts.DryRunCanvas
		if dims == (domain.CanvasDimensions{}) {
			dims = DefaultDryRunCanvas
		}
		canvas, err := memory.NewCanvas(dims)
		if err != nil {
			return nil, err
		}
		s.Canvas = canvas
		clientOpts = append(clientOpts,
			brush.WithConnector(canvas),
			brush.WithIdentityStore(memory.NewIdentityStore()),
		)
	} else {
		timeout, err := cfg.RequestTimeout()
		if err != nil {
			return nil, err
		}
		httpOpts := []brushhttp.Option{brushhttp.WithLogger(logger)}
		if timeout > 0 {
			httpOpts = append(httpOpts, brushhttp.WithTimeout(timeout))
		}
		store, closer, err := OpenIdentityStore(cfg, logger)
		if err != nil {
			return nil, err
		}
		if closer != nil {
			s.closers = append(s.closers, closer)
		}
		clientOpts = append(clientOpts,
			brush.WithConnector(brushhttp.New(cfg.URL, httpOpts...)),
			brush.WithIdentityStore(store),
		)

		if cfg.Lock.Enabled {
			ttl, err := cfg.LockTTL()
			if err != nil {
				return nil, errors.Join(err, s.Close())
			}
			rdb := newRedisClient(cfg.Identity.Redis)
			s.closers = append(s.closers, rdb)
			clientOpts = append(clientOpts, brush.WithLocker(redis.NewLocker(rdb, redisPrefix(cfg.Identity.Redis)), ttl))
		}
	}

	client, err := brush.New(cfg.Name, clientOpts...)
	if err != nil {
		return nil, errors.Join(err, s.Close())
	}
	s.Client = client
	return s, nil
}
