package observability_test

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aretw0/brush/pkg/adapters/memory"
	"github.com/aretw0/brush/pkg/curve"
	"github.com/aretw0/brush/pkg/domain"
	"github.com/aretw0/brush/pkg/draw"
	"github.com/aretw0/brush/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Hooks(t *testing.T) {
	m := observability.NewMetrics(prometheus.NewRegistry())
	hooks := m.Hooks()
	ctx := context.Background()

	move := &domain.CommandEvent{Kind: domain.CommandMove, Duration: 10 * time.Millisecond}
	hooks.OnCommand(ctx, move)
	hooks.OnCommandResult(ctx, move)

	paint := &domain.CommandEvent{Kind: domain.CommandPaint, Err: errors.New("boom")}
	hooks.OnCommand(ctx, paint)
	hooks.OnCommandResult(ctx, paint)

	hooks.OnPhaseChange(ctx, &domain.SessionEvent{From: "positioned", To: "drawing"})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Commands.WithLabelValues("move")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Commands.WithLabelValues("paint")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Failures.WithLabelValues("move")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Failures.WithLabelValues("paint")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Phases.WithLabelValues("drawing")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.Duration))
}

func TestMetrics_DrawSession(t *testing.T) {
	ctx := context.Background()
	m := observability.NewMetrics(nil)

	canvas, err := memory.NewCanvas(domain.CanvasDimensions{Width: 30, Height: 30})
	require.NoError(t, err)
	identity, err := canvas.Register(ctx, "Bob")
	require.NoError(t, err)
	agent := canvas.Connect(identity)
	start, err := agent.Info(ctx)
	require.NoError(t, err)

	samples, err := curve.Circle(domain.Pos(15, 15), 5)
	require.NoError(t, err)

	_, err = draw.DrawCurve(ctx, agent, start, samples, draw.Solid(domain.Pink), domain.Pos(15, 15), draw.WithHooks(m.Hooks()))
	require.NoError(t, err)

	painted := float64(len(canvas.Painted()))
	assert.GreaterOrEqual(t, testutil.ToFloat64(m.Commands.WithLabelValues("paint")), painted)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Commands.WithLabelValues("color")))
	assert.Positive(t, testutil.ToFloat64(m.Commands.WithLabelValues("move")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Phases.WithLabelValues("finished")))
}

func TestMetrics_Handler(t *testing.T) {
	m := observability.NewMetrics(nil)
	m.Commands.WithLabelValues("paint").Inc()

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `brush_commands_total{kind="paint"} 1`)
}

func TestChain(t *testing.T) {
	var calls []string
	a := domain.CommandHooks{
		OnCommand: func(ctx context.Context, e *domain.CommandEvent) { calls = append(calls, "a") },
	}
	b := domain.CommandHooks{
		OnCommand:     func(ctx context.Context, e *domain.CommandEvent) { calls = append(calls, "b") },
		OnPhaseChange: func(ctx context.Context, e *domain.SessionEvent) { calls = append(calls, "b-phase") },
	}

	chained := observability.Chain(a, b)
	chained.OnCommand(context.Background(), &domain.CommandEvent{})
	chained.OnCommandResult(context.Background(), &domain.CommandEvent{})
	chained.OnPhaseChange(context.Background(), &domain.SessionEvent{})

	assert.Equal(t, []string{"a", "b", "b-phase"}, calls)
}

func TestTally(t *testing.T) {
	tally := observability.NewTally()
	hooks := observability.Chain(tally.Hooks(), observability.NewMetrics(nil).Hooks())
	ctx := context.Background()

	hooks.OnCommandResult(ctx, &domain.CommandEvent{Kind: domain.CommandMove})
	hooks.OnCommandResult(ctx, &domain.CommandEvent{Kind: domain.CommandMove})
	hooks.OnCommandResult(ctx, &domain.CommandEvent{Kind: domain.CommandPaint, Err: errors.New("boom")})

	assert.Equal(t, map[domain.CommandKind]int{domain.CommandMove: 2, domain.CommandPaint: 1}, tally.Commands())
	assert.Equal(t, 1, tally.Failures())
}
