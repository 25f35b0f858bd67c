// Package mcp exposes a connected bot as a Model Context Protocol server, so
// an assistant can look at the canvas and draw shapes with tool calls.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/brush"
	"github.com/aretw0/brush/internal/logging"
	"github.com/aretw0/brush/pkg/domain"
	"github.com/aretw0/brush/pkg/draw"
	"github.com/aretw0/brush/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// BotState is the tool result shared by every drawing tool.
type BotState struct {
	X     int    `json:"x" jsonschema_description:"Column of the bot"`
	Y     int    `json:"y" jsonschema_description:"Row of the bot"`
	Known bool   `json:"known" jsonschema_description:"Whether the position is known"`
	Color string `json:"color" jsonschema_description:"Selected palette token (0-f)"`
}

func toBotState(s domain.AgentState) BotState {
	p, known := s.Location.Get()
	return BotState{X: p.X, Y: p.Y, Known: known, Color: string(s.Color)}
}

type pointArgs struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type colorArgs struct {
	Color string `json:"color"`
}

type circleArgs struct {
	X      int     `json:"x"`
	Y      int     `json:"y"`
	Radius float64 `json:"radius"`
}

type dropletArgs struct {
	X         int     `json:"x"`
	Y         int     `json:"y"`
	Radius    float64 `json:"radius"`
	Sharpness float64 `json:"sharpness"`
}

type waveArgs struct {
	Mode      string  `json:"mode"`
	MaxRadius float64 `json:"max_radius"`
	MinRadius float64 `json:"min_radius"`
}

type noArgs struct{}

// Server serializes tool calls onto one draw session.
type Server struct {
	mu        sync.Mutex
	canvas    ports.Canvas
	session   *draw.Session
	dims      domain.CanvasDimensions
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

type Option func(*Server)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer exposes session, which must drive canvas, on a canvas of size dims.
func NewServer(canvas ports.Canvas, session *draw.Session, dims domain.CanvasDimensions, opts ...Option) *Server {
	s := &Server{
		canvas:    canvas,
		session:   session,
		dims:      dims,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("brush-mcp", strings.TrimSpace(brush.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves on port using SSE until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(fmt.Sprintf("http://localhost:%d", port)))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())
	httpServer := &http.Server{Addr: addr, Handler: mux}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("bot_state",
		mcp.WithDescription("Return the bot position and selected color."),
		mcp.WithOutputSchema[BotState](),
	), mcp.NewStructuredToolHandler(s.handleState))

	s.mcpServer.AddTool(mcp.NewTool("move_to",
		mcp.WithDescription("Move the bot to a cell, one step at a time, without painting."),
		mcp.WithNumber("x", mcp.Required(), mcp.Description("Target column")),
		mcp.WithNumber("y", mcp.Required(), mcp.Description("Target row")),
		mcp.WithOutputSchema[BotState](),
	), mcp.NewStructuredToolHandler(s.handleMoveTo))

	s.mcpServer.AddTool(mcp.NewTool("set_color",
		mcp.WithDescription("Select the paint color, a palette token from 0 to f."),
		mcp.WithString("color", mcp.Required(), mcp.Description("Palette token (0-f)")),
		mcp.WithOutputSchema[BotState](),
	), mcp.NewStructuredToolHandler(s.handleSetColor))

	s.mcpServer.AddTool(mcp.NewTool("paint",
		mcp.WithDescription("Paint the cell under the bot with the selected color."),
		mcp.WithOutputSchema[BotState](),
	), mcp.NewStructuredToolHandler(s.handlePaint))

	s.mcpServer.AddTool(mcp.NewTool("draw_circle",
		mcp.WithDescription("Draw a circle, left half pink and right half lavender."),
		mcp.WithNumber("x", mcp.Required(), mcp.Description("Center column")),
		mcp.WithNumber("y", mcp.Required(), mcp.Description("Center row")),
		mcp.WithNumber("radius", mcp.Required(), mcp.Description("Radius in cells")),
		mcp.WithOutputSchema[BotState](),
	), mcp.NewStructuredToolHandler(s.handleCircle))

	s.mcpServer.AddTool(mcp.NewTool("draw_droplet",
		mcp.WithDescription("Draw a teardrop with its tip pointing up."),
		mcp.WithNumber("x", mcp.Required(), mcp.Description("Center column")),
		mcp.WithNumber("y", mcp.Required(), mcp.Description("Center row")),
		mcp.WithNumber("radius", mcp.Required(), mcp.Description("Radius in cells")),
		mcp.WithNumber("sharpness", mcp.Description("Tip sharpness, 0 draws a circle")),
		mcp.WithOutputSchema[BotState](),
	), mcp.NewStructuredToolHandler(s.handleDroplet))

	s.mcpServer.AddTool(mcp.NewTool("draw_wave",
		mcp.WithDescription("Cross the canvas along one sine period, painting the wave or a circle at each point."),
		mcp.WithString("mode", mcp.Enum(string(draw.WaveCircles), string(draw.WavePoints)), mcp.Description("What to draw at each wave point")),
		mcp.WithNumber("max_radius", mcp.Description("Circle radius growth")),
		mcp.WithNumber("min_radius", mcp.Description("Smallest circle radius")),
		mcp.WithOutputSchema[BotState](),
	), mcp.NewStructuredToolHandler(s.handleWave))
}

func (s *Server) handleState(ctx context.Context, _ mcp.CallToolRequest, _ noArgs) (BotState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return toBotState(s.session.State()), nil
}

func (s *Server) handleMoveTo(ctx context.Context, _ mcp.CallToolRequest, args pointArgs) (BotState, error) {
	return s.run(ctx, "move_to", draw.MoveShape{Target: &domain.Position{X: args.X, Y: args.Y}})
}

func (s *Server) handleSetColor(ctx context.Context, _ mcp.CallToolRequest, args colorArgs) (BotState, error) {
	color, err := domain.ParseColor(args.Color)
	if err != nil {
		return BotState{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.session.SetColor(ctx, color); err != nil {
		return toBotState(s.session.State()), err
	}
	return toBotState(s.session.State()), nil
}

func (s *Server) handlePaint(ctx context.Context, _ mcp.CallToolRequest, _ noArgs) (BotState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.session.Paint(ctx); err != nil {
		return toBotState(s.session.State()), err
	}
	return toBotState(s.session.State()), nil
}

func (s *Server) handleCircle(ctx context.Context, _ mcp.CallToolRequest, args circleArgs) (BotState, error) {
	return s.run(ctx, "draw_circle", draw.CircleShape{Center: &domain.Position{X: args.X, Y: args.Y}, Radius: args.Radius})
}

func (s *Server) handleDroplet(ctx context.Context, _ mcp.CallToolRequest, args dropletArgs) (BotState, error) {
	return s.run(ctx, "draw_droplet", draw.DropletShape{
		Center:    &domain.Position{X: args.X, Y: args.Y},
		Radius:    args.Radius,
		Sharpness: args.Sharpness,
	})
}

func (s *Server) handleWave(ctx context.Context, _ mcp.CallToolRequest, args waveArgs) (BotState, error) {
	cfg := draw.DefaultWaveConfig()
	if args.Mode != "" {
		cfg.Mode = draw.WaveMode(args.Mode)
	}
	if args.MaxRadius > 0 {
		cfg.MaxRadius = args.MaxRadius
	}
	if args.MinRadius > 0 {
		cfg.MinRadius = args.MinRadius
	}
	return s.run(ctx, "draw_wave", cfg)
}

func (s *Server) run(ctx context.Context, tool string, shape draw.Shape) (BotState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.Debug("MCP tool call", "tool", tool)
	state, err := shape.Draw(ctx, s.session, s.dims)
	if err != nil {
		s.logger.Error("MCP tool failed", "tool", tool, "error", err)
		return toBotState(state), fmt.Errorf("%s failed: %w", tool, err)
	}
	return toBotState(state), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource("brush://canvas", "Canvas dimensions",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		data, err := json.Marshal(map[string]int{"width": s.dims.Width, "height": s.dims.Height})
		if err != nil {
			return nil, fmt.Errorf("failed to marshal canvas: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{URI: "brush://canvas", MIMEType: "application/json", Text: string(data)},
		}, nil
	})

	s.mcpServer.AddResource(mcp.NewResource("brush://bots", "Registered bots",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		bots, err := s.canvas.Bots(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list bots: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{URI: "brush://bots", MIMEType: "application/json", Text: bots},
		}, nil
	})
}
