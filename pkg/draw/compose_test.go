package draw_test

import (
	"context"
	"testing"

	"github.com/aretw0/brush/pkg/curve"
	"github.com/aretw0/brush/pkg/domain"
	"github.com/aretw0/brush/pkg/draw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRules(t *testing.T) {
	ref := domain.Pos(10, 10)
	at := func(x, y int) domain.CurveSample { return domain.CurveSample{Position: domain.Pos(x, y)} }

	half := draw.HalfSplit(domain.Pink, domain.Lavender)
	assert.Equal(t, domain.Pink, half(ref, at(9, 0)))
	assert.Equal(t, domain.Lavender, half(ref, at(10, 0)))
	assert.Equal(t, domain.Lavender, half(ref, at(11, 20)))

	drop := draw.DropletSplit(domain.Pink, domain.Lavender)
	assert.Equal(t, domain.Pink, drop(ref, at(9, 5)), "upper left")
	assert.Equal(t, domain.Lavender, drop(ref, at(11, 5)), "upper right")
	assert.Equal(t, domain.Lavender, drop(ref, at(9, 15)), "lower left flips")
	assert.Equal(t, domain.Pink, drop(ref, at(11, 15)), "lower right flips")

	assert.Equal(t, domain.Red, draw.Solid(domain.Red)(ref, at(0, 0)))
}

func TestCircle_PaintsEveryCell(t *testing.T) {
	agent := newFakeAgent(10, 10)
	s := draw.NewSession(agent, agent.state())

	center := domain.Pos(10, 10)
	_, err := draw.Circle(context.Background(), s, center, 5)
	require.NoError(t, err)

	seq, err := curve.Circle(center, 5)
	require.NoError(t, err)
	want := map[domain.Position]bool{}
	for sample := range seq {
		want[sample.Position] = true
	}
	got := map[domain.Position]bool{}
	for _, p := range agent.painted {
		got[p] = true
	}
	assert.Equal(t, want, got)

	for i := 1; i < len(agent.painted); i++ {
		assert.False(t, agent.painted[i].Equal(agent.painted[i-1]), "no repeated paint at %v", agent.painted[i])
	}
}

func TestCircle_InvalidRadiusTouchesNothing(t *testing.T) {
	agent := newFakeAgent(0, 0)
	s := draw.NewSession(agent, agent.state())

	_, err := draw.Circle(context.Background(), s, domain.Pos(0, 0), 0)
	assert.ErrorIs(t, err, domain.ErrParameter)
	assert.Empty(t, agent.calls)
}

func TestDroplet(t *testing.T) {
	agent := newFakeAgent(20, 20)
	s := draw.NewSession(agent, agent.state())

	_, err := draw.Droplet(context.Background(), s, domain.Pos(20, 20), 8, 2)
	require.NoError(t, err)

	require.NotEmpty(t, agent.painted)
	assert.Equal(t, domain.Pos(20, 12), agent.painted[0], "drawing starts at the tip")
	assert.Positive(t, agent.count("color e"), "left color used")
	assert.Positive(t, agent.count("color d"), "right color used")
}

func TestWave_Points(t *testing.T) {
	agent := newFakeAgent(0, 0)
	s := draw.NewSession(agent, agent.state())
	canvas := domain.CanvasDimensions{Width: 40, Height: 20}

	_, err := draw.Wave(context.Background(), s, canvas, draw.WaveConfig{Mode: draw.WavePoints, Color: domain.Orange})
	require.NoError(t, err)

	seq, err := curve.Wave(40, 20, 5)
	require.NoError(t, err)
	var want []domain.Position
	for sample := range seq {
		want = append(want, sample.Position)
	}
	assert.Equal(t, want, agent.painted)
	assert.Equal(t, 1, agent.count("color 9"))
}

func TestWave_Circles(t *testing.T) {
	agent := newFakeAgent(0, 0)
	s := draw.NewSession(agent, agent.state())
	canvas := domain.CanvasDimensions{Width: 30, Height: 30}
	cfg := draw.DefaultWaveConfig()
	cfg.MaxRadius = 3
	cfg.MinRadius = 1

	state, err := draw.Wave(context.Background(), s, canvas, cfg)
	require.NoError(t, err)
	assert.True(t, state.Location.IsKnown())

	seq, err := curve.Wave(30, 30, 8)
	require.NoError(t, err)
	points := 0
	for range seq {
		points++
	}
	// every wave point gets at least a radius-1 circle (4+ distinct cells)
	assert.GreaterOrEqual(t, len(agent.painted), points*4)
}

func TestWave_InvalidConfig(t *testing.T) {
	agent := newFakeAgent(0, 0)
	s := draw.NewSession(agent, agent.state())

	_, err := draw.Wave(context.Background(), s, domain.CanvasDimensions{Width: 0, Height: 10}, draw.DefaultWaveConfig())
	assert.ErrorIs(t, err, domain.ErrParameter)

	_, err = draw.Wave(context.Background(), s, domain.CanvasDimensions{Width: 10, Height: 10}, draw.WaveConfig{Mode: "spiral"})
	assert.ErrorIs(t, err, domain.ErrParameter)

	_, err = draw.Wave(context.Background(), s, domain.CanvasDimensions{Width: 10, Height: 10}, draw.WaveConfig{Mode: draw.WaveCircles})
	assert.ErrorIs(t, err, domain.ErrParameter)
	assert.Empty(t, agent.calls)
}
