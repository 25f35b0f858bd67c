// Package http implements the canvas service protocol over HTTP.
//
// Every command is a form-encoded POST to the service root. Bot commands
// answer with the bot's pixel ("color=e&x=10&y=4"); look answers with the
// canvas as ASCII rows.
package http

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/brush/internal/logging"
	"github.com/aretw0/brush/pkg/domain"
	"github.com/aretw0/brush/pkg/ports"
)

// DefaultURL is used when no service URL is configured.
const DefaultURL = "http://localhost:31173/"

// Client talks to the canvas service. A Client returned by New can only
// register bots; Connect binds it to a registered identity.
type Client struct {
	baseURL    string
	httpClient *http.Client
	identity   domain.Identity
	logger     *slog.Logger
}

var (
	_ ports.Canvas    = (*Client)(nil)
	_ ports.Connector = (*Client)(nil)
)

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets a per-request timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient = &http.Client{Timeout: d}
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a client for the service at baseURL (DefaultURL if empty).
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	c := &Client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Connect returns a copy of the client bound to identity.
func (c *Client) Connect(identity domain.Identity) ports.Canvas {
	return c.Bind(identity)
}

// Bind returns a copy of the client bound to identity.
func (c *Client) Bind(identity domain.Identity) *Client {
	bound := *c
	bound.identity = identity
	bound.logger = c.logger.With("bot", identity.Name)
	return &bound
}

// Identity returns the bot the client is bound to.
func (c *Client) Identity() domain.Identity {
	return c.identity
}

// Register registers a bot under name and returns its identity.
func (c *Client) Register(ctx context.Context, name string) (domain.Identity, error) {
	body, err := c.post(ctx, "register", url.Values{"register": {name}})
	if err != nil {
		return domain.Identity{}, fmt.Errorf("failed to register: %w", err)
	}
	id := strings.TrimSpace(body)
	if id == "" {
		return domain.Identity{}, fmt.Errorf("failed to register: %w", &domain.RemoteCommandError{
			Command: "register",
			Status:  http.StatusOK,
			Err:     fmt.Errorf("empty bot id"),
		})
	}
	return domain.Identity{Name: name, ID: id}, nil
}

// Info returns the current bot state.
func (c *Client) Info(ctx context.Context) (domain.AgentState, error) {
	return c.command(ctx, "info", "info", "")
}

// MoveOneStep moves the bot one cell in dir.
func (c *Client) MoveOneStep(ctx context.Context, dir domain.Direction) (domain.AgentState, error) {
	return c.command(ctx, "move", "move", dir.String())
}

// SetColor selects the paint color.
func (c *Client) SetColor(ctx context.Context, color domain.Color) (domain.AgentState, error) {
	return c.command(ctx, "set color", "color", string(color))
}

// Paint paints the cell under the bot.
func (c *Client) Paint(ctx context.Context) (domain.AgentState, error) {
	return c.command(ctx, "paint", "paint", "")
}

// Clear clears the cell under the bot.
func (c *Client) Clear(ctx context.Context) (domain.AgentState, error) {
	return c.command(ctx, "clear pixel", "clear", "")
}

// Msg shows msg next to the bot name.
func (c *Client) Msg(ctx context.Context, msg string) (domain.AgentState, error) {
	return c.command(ctx, "send message", "msg", msg)
}

// Look returns the canvas dimensions: the width of the first row and the
// number of newline-terminated rows.
func (c *Client) Look(ctx context.Context) (domain.CanvasDimensions, error) {
	body, err := c.botPost(ctx, "look", "look", "")
	if err != nil {
		return domain.CanvasDimensions{}, fmt.Errorf("failed to look: %w", err)
	}
	return ParseLook(body), nil
}

// Bots returns the raw JSON list of registered bots.
func (c *Client) Bots(ctx context.Context) (string, error) {
	body, err := c.botPost(ctx, "bots", "bots", "")
	if err != nil {
		return "", fmt.Errorf("failed to get bots: %w", err)
	}
	return body, nil
}

// Bye deregisters the bot.
func (c *Client) Bye(ctx context.Context) error {
	if _, err := c.botPost(ctx, "bye", "bye", ""); err != nil {
		return fmt.Errorf("failed to bye: %w", err)
	}
	return nil
}

func (c *Client) command(ctx context.Context, name, key, value string) (domain.AgentState, error) {
	body, err := c.botPost(ctx, name, key, value)
	if err != nil {
		return domain.AgentState{}, fmt.Errorf("failed to %s: %w", name, err)
	}
	state, err := ParsePixel(body)
	if err != nil {
		return domain.AgentState{}, fmt.Errorf("failed to %s: %w", name, &domain.RemoteCommandError{
			Command: key,
			Status:  http.StatusOK,
			Body:    body,
			Err:     err,
		})
	}
	return state, nil
}

func (c *Client) botPost(ctx context.Context, name, key, value string) (string, error) {
	if c.identity.ID == "" {
		return "", fmt.Errorf("%w: %s requires a registered bot", domain.ErrPrecondition, name)
	}
	return c.post(ctx, key, url.Values{"id": {c.identity.ID}, key: {value}})
}

// post sends one command. 200 returns the body, 204 an empty body, any
// other status or transport failure a *domain.RemoteCommandError.
func (c *Client) post(ctx context.Context, command string, form url.Values) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", &domain.RemoteCommandError{Command: command, Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("Request failed", "command", command, "error", err)
		return "", &domain.RemoteCommandError{Command: command, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &domain.RemoteCommandError{Command: command, Status: resp.StatusCode, Err: err}
	}
	c.logger.Debug("Request", "command", command, "status", resp.StatusCode, "duration", time.Since(start))

	switch resp.StatusCode {
	case http.StatusOK:
		return string(data), nil
	case http.StatusNoContent:
		return "", nil
	}
	return "", &domain.RemoteCommandError{Command: command, Status: resp.StatusCode, Body: strings.TrimSpace(string(data))}
}

// ParsePixel decodes a "color=..&x=..&y=.." response.
func ParsePixel(body string) (domain.AgentState, error) {
	values, err := url.ParseQuery(strings.TrimSpace(body))
	if err != nil {
		return domain.AgentState{}, fmt.Errorf("unable to parse pixel response: %w", err)
	}

	color := domain.Color(values.Get("color"))
	x, errX := strconv.Atoi(values.Get("x"))
	y, errY := strconv.Atoi(values.Get("y"))
	if color == domain.NoColor || errX != nil || errY != nil {
		return domain.AgentState{}, fmt.Errorf("unable to parse pixel response (%q, %q, %q)", values.Get("color"), values.Get("x"), values.Get("y"))
	}
	return domain.AgentState{Location: domain.Known(domain.Pos(x, y)), Color: color}, nil
}

// ParseLook derives the canvas dimensions from a look response.
func ParseLook(body string) domain.CanvasDimensions {
	rows := strings.Split(body, "\n")
	return domain.CanvasDimensions{Width: len(rows[0]), Height: len(rows) - 1}
}
