// Package sandbox serves the paint-bot canvas protocol over an in-memory
// canvas, for local runs without the real service.
package sandbox

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/aretw0/brush/internal/logging"
	"github.com/aretw0/brush/pkg/adapters/memory"
	"github.com/aretw0/brush/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Commands that take a bot id, in the order they are looked up in a form.
var botCommands = []string{"info", "move", "color", "paint", "clear", "msg", "look", "bots", "bye"}

// Server answers protocol commands against a memory.Canvas.
type Server struct {
	canvas   *memory.Canvas
	logger   *slog.Logger
	registry *prometheus.Registry
	requests *prometheus.CounterVec
}

type Option func(*Server)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithRegistry registers the request counter with reg and serves reg on /metrics.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.registry = reg
	}
}

// New creates a sandbox server for canvas.
func New(canvas *memory.Canvas, opts ...Option) *Server {
	s := &Server{
		canvas: canvas,
		logger: logging.NewNop(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "brush_sandbox_requests_total",
				Help: "Total number of protocol commands served by the sandbox",
			},
			[]string{"command", "status"},
		),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.registry != nil {
		s.registry.MustRegister(s.requests)
	}
	return s
}

// Handler returns the HTTP handler.
//
//	POST /         protocol commands (form encoded)
//	GET  /         canvas as ASCII rows
//	GET  /bots     registered bots as JSON
//	GET  /health   liveness
//	GET  /metrics  Prometheus metrics, when a registry is configured
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Post("/", s.handleCommand)
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(s.canvas.Render()))
	})
	r.Get("/bots", func(w http.ResponseWriter, r *http.Request) {
		s.writeBots(w)
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if s.registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}
	return r
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.fail(w, "unknown", http.StatusBadRequest, "invalid form")
		return
	}
	form := r.PostForm

	if form.Has("register") {
		identity, err := s.canvas.Register(r.Context(), form.Get("register"))
		if err != nil {
			s.fail(w, "register", statusFor(err), err.Error())
			return
		}
		s.logger.Info("Bot registered", "bot", identity.Name, "id", identity.ID)
		s.ok(w, "register", identity.ID)
		return
	}

	id := form.Get("id")
	if id == "" {
		s.fail(w, "unknown", http.StatusBadRequest, "missing id")
		return
	}
	command := ""
	for _, c := range botCommands {
		if form.Has(c) {
			command = c
			break
		}
	}
	arg := form.Get(command)

	var (
		state domain.AgentState
		err   error
	)
	switch command {
	case "info":
		state, err = s.canvas.Info(id)
	case "move":
		var dir domain.Direction
		if dir, err = domain.ParseDirection(strings.ToUpper(arg)); err == nil {
			state, err = s.canvas.Move(id, dir)
		}
	case "color":
		var color domain.Color
		if color, err = domain.ParseColor(arg); err == nil {
			state, err = s.canvas.SetColor(id, color)
		}
	case "paint":
		state, err = s.canvas.Paint(id)
	case "clear":
		state, err = s.canvas.Clear(id)
	case "msg":
		state, err = s.canvas.Msg(id, arg)
	case "look":
		if _, err = s.canvas.Info(id); err == nil {
			s.ok(w, command, s.canvas.Render())
			return
		}
	case "bots":
		if _, err = s.canvas.Info(id); err == nil {
			s.writeBots(w)
			s.requests.WithLabelValues(command, "200").Inc()
			return
		}
	case "bye":
		if err = s.canvas.Bye(id); err == nil {
			s.logger.Info("Bot left", "id", id)
			s.requests.WithLabelValues(command, "204").Inc()
			w.WriteHeader(http.StatusNoContent)
			return
		}
	default:
		s.fail(w, "unknown", http.StatusBadRequest, "unknown command")
		return
	}
	if err != nil {
		s.fail(w, command, statusFor(err), err.Error())
		return
	}
	s.ok(w, command, EncodePixel(state))
}

func (s *Server) writeBots(w http.ResponseWriter) {
	data, err := s.canvas.BotsJSON()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(data))
}

func (s *Server) ok(w http.ResponseWriter, command, body string) {
	s.requests.WithLabelValues(command, "200").Inc()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(body))
}

func (s *Server) fail(w http.ResponseWriter, command string, status int, msg string) {
	s.requests.WithLabelValues(command, strconv.Itoa(status)).Inc()
	s.logger.Debug("Command rejected", "command", command, "status", status, "reason", msg)
	http.Error(w, msg, status)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, memory.ErrUnknownBot):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrParameter):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// EncodePixel renders a bot state as a "color=..&x=..&y=.." response.
func EncodePixel(state domain.AgentState) string {
	p, _ := state.Location.Get()
	return url.Values{
		"color": {string(state.Color)},
		"x":     {strconv.Itoa(p.X)},
		"y":     {strconv.Itoa(p.Y)},
	}.Encode()
}
