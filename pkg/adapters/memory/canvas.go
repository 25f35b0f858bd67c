// Package memory provides an in-process canvas service, a bot agent bound to
// it and an in-memory identity store. It backs dry runs, the local sandbox
// server and tests.
package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/aretw0/brush/pkg/domain"
	"github.com/aretw0/brush/pkg/ports"
	"github.com/google/uuid"
)

// ErrUnknownBot is returned for commands addressed to an unregistered id.
var ErrUnknownBot = errors.New("unknown bot")

// EmptyCell is the look character for an unpainted cell.
const EmptyCell = '.'

type bot struct {
	identity domain.Identity
	pos      domain.Position
	color    domain.Color
	msg      string
}

func (b *bot) state() domain.AgentState {
	return domain.AgentState{Location: domain.Known(b.pos), Color: b.color}
}

// Canvas is a shared in-memory canvas. Bots spawn at the spawn point
// (default: canvas center) and moves are clamped to the canvas bounds.
// Safe for concurrent use.
type Canvas struct {
	mu     sync.Mutex
	dims   domain.CanvasDimensions
	spawn  domain.Position
	color  domain.Color
	pixels map[domain.Position]domain.Color
	bots   map[string]*bot
	names  map[string]string // name -> id
}

var _ ports.Connector = (*Canvas)(nil)

// CanvasOption configures a Canvas.
type CanvasOption func(*Canvas)

// WithSpawn sets where newly registered bots start.
func WithSpawn(p domain.Position) CanvasOption {
	return func(c *Canvas) {
		c.spawn = p
	}
}

// WithInitialColor sets the color of newly registered bots.
func WithInitialColor(color domain.Color) CanvasOption {
	return func(c *Canvas) {
		c.color = color
	}
}

// NewCanvas creates an empty canvas.
func NewCanvas(dims domain.CanvasDimensions, opts ...CanvasOption) (*Canvas, error) {
	if err := dims.Validate(); err != nil {
		return nil, err
	}
	c := &Canvas{
		dims:   dims,
		spawn:  dims.Center(),
		color:  domain.Black,
		pixels: make(map[domain.Position]domain.Color),
		bots:   make(map[string]*bot),
		names:  make(map[string]string),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Dimensions returns the canvas size.
func (c *Canvas) Dimensions() domain.CanvasDimensions {
	return c.dims
}

// Register registers name, or returns the existing identity if name is taken.
func (c *Canvas) Register(ctx context.Context, name string) (domain.Identity, error) {
	if err := ctx.Err(); err != nil {
		return domain.Identity{}, err
	}
	if strings.TrimSpace(name) == "" {
		return domain.Identity{}, fmt.Errorf("%w: bot name is empty", domain.ErrParameter)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if id, ok := c.names[name]; ok {
		return c.bots[id].identity, nil
	}
	identity := domain.Identity{Name: name, ID: uuid.NewString()}
	c.bots[identity.ID] = &bot{identity: identity, pos: c.clamp(c.spawn), color: c.color}
	c.names[name] = identity.ID
	return identity, nil
}

// Connect returns an agent bound to identity.
func (c *Canvas) Connect(identity domain.Identity) ports.Canvas {
	return &Agent{canvas: c, id: identity.ID}
}

// Info returns the state of bot id.
func (c *Canvas) Info(id string) (domain.AgentState, error) {
	return c.with(id, func(b *bot) error { return nil })
}

// Move moves bot id one cell, staying inside the canvas.
func (c *Canvas) Move(id string, dir domain.Direction) (domain.AgentState, error) {
	if !dir.Valid() {
		return domain.AgentState{}, fmt.Errorf("%w: unknown direction %q", domain.ErrParameter, dir)
	}
	return c.with(id, func(b *bot) error {
		b.pos = c.clamp(b.pos.Add(dir.Vector()))
		return nil
	})
}

// SetColor changes the color of bot id.
func (c *Canvas) SetColor(id string, color domain.Color) (domain.AgentState, error) {
	if !color.Valid() {
		return domain.AgentState{}, fmt.Errorf("%w: unknown color %q", domain.ErrParameter, color)
	}
	return c.with(id, func(b *bot) error {
		b.color = color
		return nil
	})
}

// Paint paints the cell under bot id.
func (c *Canvas) Paint(id string) (domain.AgentState, error) {
	return c.with(id, func(b *bot) error {
		c.pixels[b.pos] = b.color
		return nil
	})
}

// Clear clears the cell under bot id.
func (c *Canvas) Clear(id string) (domain.AgentState, error) {
	return c.with(id, func(b *bot) error {
		delete(c.pixels, b.pos)
		return nil
	})
}

// Msg sets the message shown next to bot id.
func (c *Canvas) Msg(id, msg string) (domain.AgentState, error) {
	return c.with(id, func(b *bot) error {
		b.msg = msg
		return nil
	})
}

// Bye deregisters bot id.
func (c *Canvas) Bye(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	b, ok := c.bots[id]
	if !ok {
		return ErrUnknownBot
	}
	delete(c.names, b.identity.Name)
	delete(c.bots, id)
	return nil
}

// Pixel returns the color painted at p.
func (c *Canvas) Pixel(p domain.Position) (domain.Color, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	color, ok := c.pixels[p]
	return color, ok
}

// Painted returns a copy of every painted cell.
func (c *Canvas) Painted() map[domain.Position]domain.Color {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[domain.Position]domain.Color, len(c.pixels))
	for p, color := range c.pixels {
		out[p] = color
	}
	return out
}

// Render returns the look view: one newline-terminated row per canvas row,
// one palette token (or EmptyCell) per cell.
func (c *Canvas) Render() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	var sb strings.Builder
	sb.Grow((c.dims.Width + 1) * c.dims.Height)
	for y := 0; y < c.dims.Height; y++ {
		for x := 0; x < c.dims.Width; x++ {
			if color, ok := c.pixels[domain.Pos(x, y)]; ok {
				sb.WriteString(string(color))
			} else {
				sb.WriteByte(EmptyCell)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// BotInfo is the public description of a registered bot.
type BotInfo struct {
	Name  string       `json:"name"`
	Color domain.Color `json:"color"`
	X     int          `json:"x"`
	Y     int          `json:"y"`
	Msg   string       `json:"msg,omitempty"`
}

// Bots returns every registered bot, sorted by name.
func (c *Canvas) Bots() []BotInfo {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]BotInfo, 0, len(c.bots))
	for _, b := range c.bots {
		out = append(out, BotInfo{Name: b.identity.Name, Color: b.color, X: b.pos.X, Y: b.pos.Y, Msg: b.msg})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// BotsJSON returns Bots encoded as JSON.
func (c *Canvas) BotsJSON() (string, error) {
	data, err := json.Marshal(c.Bots())
	if err != nil {
		return "", fmt.Errorf("failed to marshal bots: %w", err)
	}
	return string(data), nil
}

func (c *Canvas) with(id string, fn func(*bot) error) (domain.AgentState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	b, ok := c.bots[id]
	if !ok {
		return domain.AgentState{}, ErrUnknownBot
	}
	if err := fn(b); err != nil {
		return domain.AgentState{}, err
	}
	return b.state(), nil
}

func (c *Canvas) clamp(p domain.Position) domain.Position {
	return domain.Pos(
		min(max(p.X, 0), c.dims.Width-1),
		min(max(p.Y, 0), c.dims.Height-1),
	)
}
