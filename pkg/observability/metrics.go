package observability

import (
	"context"
	"net/http"

	"github.com/aretw0/brush/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the draw session collectors.
type Metrics struct {
	Commands *prometheus.CounterVec
	Failures *prometheus.CounterVec
	Duration *prometheus.HistogramVec
	Phases   *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg uses a fresh private registry.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	m := &Metrics{
		Commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "brush_commands_total",
				Help: "Total number of agent commands issued",
			},
			[]string{"kind"},
		),
		Failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "brush_command_failures_total",
				Help: "Total number of agent commands that failed",
			},
			[]string{"kind"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "brush_command_duration_seconds",
				Help:    "Round-trip duration of agent commands",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
			},
			[]string{"kind"},
		),
		Phases: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "brush_session_phase_changes_total",
				Help: "Total number of draw session phase changes",
			},
			[]string{"to"},
		),
		gatherer: reg,
	}
	reg.MustRegister(m.Commands, m.Failures, m.Duration, m.Phases)
	return m
}

// Hooks returns session hooks that record into m.
func (m *Metrics) Hooks() domain.CommandHooks {
	return domain.CommandHooks{
		OnCommand: func(ctx context.Context, e *domain.CommandEvent) {
			m.Commands.WithLabelValues(string(e.Kind)).Inc()
		},
		OnCommandResult: func(ctx context.Context, e *domain.CommandEvent) {
			m.Duration.WithLabelValues(string(e.Kind)).Observe(e.Duration.Seconds())
			if e.Err != nil {
				m.Failures.WithLabelValues(string(e.Kind)).Inc()
			}
		},
		OnPhaseChange: func(ctx context.Context, e *domain.SessionEvent) {
			m.Phases.WithLabelValues(e.To).Inc()
		},
	}
}

// Handler serves the registry m was created with.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Chain returns hooks that call each of hooks in order. Nil callbacks are skipped.
func Chain(hooks ...domain.CommandHooks) domain.CommandHooks {
	return domain.CommandHooks{
		OnCommand: func(ctx context.Context, e *domain.CommandEvent) {
			for _, h := range hooks {
				if h.OnCommand != nil {
					h.OnCommand(ctx, e)
				}
			}
		},
		OnCommandResult: func(ctx context.Context, e *domain.CommandEvent) {
			for _, h := range hooks {
				if h.OnCommandResult != nil {
					h.OnCommandResult(ctx, e)
				}
			}
		},
		OnPhaseChange: func(ctx context.Context, e *domain.SessionEvent) {
			for _, h := range hooks {
				if h.OnPhaseChange != nil {
					h.OnPhaseChange(ctx, e)
				}
			}
		},
	}
}
