package brush

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/brush/internal/logging"
	"github.com/aretw0/brush/pkg/adapters/file"
	brushhttp "github.com/aretw0/brush/pkg/adapters/http"
	"github.com/aretw0/brush/pkg/domain"
	"github.com/aretw0/brush/pkg/draw"
	"github.com/aretw0/brush/pkg/ports"
)

// DefaultLockTTL bounds how long a crashed client keeps its bot locked.
const DefaultLockTTL = time.Minute

// Client is the high-level entry point: it owns one bot on a canvas
// service, from registration to deregistration.
type Client struct {
	name      string
	connector ports.Connector
	store     ports.IdentityStore
	locker    ports.DistributedLocker
	lockTTL   time.Duration
	hooks     domain.CommandHooks
	sessOpts  []draw.Option
	logger    *slog.Logger

	identity domain.Identity
	canvas   ports.Canvas
	unlock   ports.UnlockFunc
}

// Option defines a functional option for configuring the Client.
type Option func(*Client)

// WithConnector sets the canvas service. Defaults to the HTTP client for
// brushhttp.DefaultURL.
func WithConnector(c ports.Connector) Option {
	return func(cl *Client) {
		cl.connector = c
	}
}

// WithIdentityStore sets where the bot identity is remembered. Defaults to
// the botConfig.cfg file in the working directory.
func WithIdentityStore(s ports.IdentityStore) Option {
	return func(cl *Client) {
		cl.store = s
	}
}

// WithLocker makes Connect hold a lock on the bot id until Close.
func WithLocker(l ports.DistributedLocker, ttl time.Duration) Option {
	return func(cl *Client) {
		cl.locker = l
		cl.lockTTL = ttl
	}
}

// WithHooks registers observability hooks on every session.
func WithHooks(hooks domain.CommandHooks) Option {
	return func(cl *Client) {
		cl.hooks = hooks
	}
}

// WithSessionOptions adds options to every session created by the client.
func WithSessionOptions(opts ...draw.Option) Option {
	return func(cl *Client) {
		cl.sessOpts = append(cl.sessOpts, opts...)
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(cl *Client) {
		cl.logger = logger
	}
}

// New creates a client for the bot called name. Nothing is sent to the
// service until Connect.
func New(name string, opts ...Option) (*Client, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: bot name is required", domain.ErrParameter)
	}
	c := &Client{
		name:    name,
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.connector == nil {
		c.connector = brushhttp.New(brushhttp.DefaultURL, brushhttp.WithLogger(c.logger))
	}
	if c.store == nil {
		c.store = file.New(file.DefaultPath)
	}
	c.logger = c.logger.With("bot", name)
	return c, nil
}

// Connect reuses the stored identity or registers a new bot and stores it,
// then reports where the bot is.
func (c *Client) Connect(ctx context.Context) (domain.AgentState, error) {
	identity, err := c.store.Load(ctx, c.name)
	switch {
	case err == nil:
		c.logger.Debug("Reusing stored identity", "id", identity.ID)
	case errors.Is(err, domain.ErrIdentityNotFound):
		identity, err = c.connector.Register(ctx, c.name)
		if err != nil {
			return domain.AgentState{}, err
		}
		if err := c.store.Save(ctx, identity); err != nil {
			return domain.AgentState{}, fmt.Errorf("failed to save identity: %w", err)
		}
		c.logger.Info("Bot registered", "id", identity.ID)
	default:
		return domain.AgentState{}, fmt.Errorf("failed to load identity: %w", err)
	}

	if c.locker != nil {
		unlock, err := c.locker.Lock(ctx, identity.ID, c.lockTTL)
		if err != nil {
			return domain.AgentState{}, fmt.Errorf("failed to lock bot: %w", err)
		}
		c.unlock = unlock
	}

	c.identity = identity
	c.canvas = c.connector.Connect(identity)

	state, err := c.canvas.Info(ctx)
	if err != nil {
		return domain.AgentState{}, errors.Join(err, c.release(ctx))
	}
	return state, nil
}

// Identity returns the connected bot.
func (c *Client) Identity() domain.Identity {
	return c.identity
}

// Canvas returns the command surface of the connected bot, or nil before Connect.
func (c *Client) Canvas() ports.Canvas {
	return c.canvas
}

// NewSession starts a draw session from state.
func (c *Client) NewSession(state domain.AgentState, opts ...draw.Option) (*draw.Session, error) {
	if c.canvas == nil {
		return nil, fmt.Errorf("%w: client is not connected", domain.ErrPrecondition)
	}
	all := append([]draw.Option{draw.WithLogger(c.logger), draw.WithHooks(c.hooks)}, c.sessOpts...)
	return draw.NewSession(c.canvas, state, append(all, opts...)...), nil
}

// Draw connects if needed, looks at the canvas and runs shapes in a new session.
func (c *Client) Draw(ctx context.Context, shapes ...draw.Shape) (domain.AgentState, error) {
	var (
		state domain.AgentState
		err   error
	)
	if c.canvas == nil {
		if state, err = c.Connect(ctx); err != nil {
			return state, err
		}
	} else if state, err = c.canvas.Info(ctx); err != nil {
		return state, err
	}

	dims, err := c.canvas.Look(ctx)
	if err != nil {
		return state, err
	}
	c.logger.Info("Drawing", "width", dims.Width, "height", dims.Height, "shapes", len(shapes))

	s, err := c.NewSession(state)
	if err != nil {
		return state, err
	}
	state, err = draw.Run(ctx, s, dims, shapes...)
	if err != nil {
		return state, err
	}
	return s.Finish(ctx), nil
}

// Close releases the bot lock. The bot stays registered.
func (c *Client) Close(ctx context.Context) error {
	return c.release(ctx)
}

// Deregister says bye to the service and forgets the stored identity. The
// identity is deleted even if bye fails.
func (c *Client) Deregister(ctx context.Context) error {
	if c.canvas == nil {
		identity, err := c.store.Load(ctx, c.name)
		if errors.Is(err, domain.ErrIdentityNotFound) {
			return c.release(ctx)
		}
		if err != nil {
			return fmt.Errorf("failed to load identity: %w", err)
		}
		c.identity = identity
		c.canvas = c.connector.Connect(identity)
	}
	byeErr := c.canvas.Bye(ctx)
	if byeErr != nil {
		c.logger.Warn("Bye failed, forgetting identity anyway", "id", c.identity.ID, "error", byeErr)
	}

	var delErr error
	if err := c.store.Delete(ctx, c.name); err != nil {
		delErr = fmt.Errorf("failed to delete identity: %w", err)
	}
	c.canvas = nil
	c.logger.Info("Bot deregistered", "id", c.identity.ID)
	return errors.Join(byeErr, delErr, c.release(ctx))
}

func (c *Client) release(ctx context.Context) error {
	if c.unlock == nil {
		return nil
	}
	unlock := c.unlock
	c.unlock = nil
	if err := unlock(ctx); err != nil {
		return fmt.Errorf("failed to unlock bot: %w", err)
	}
	return nil
}
