package draw

import (
	"context"
	"fmt"

	"github.com/aretw0/brush/pkg/domain"
)

// Shape is one step of a drawing program.
type Shape interface {
	Draw(ctx context.Context, s *Session, canvas domain.CanvasDimensions) (domain.AgentState, error)
}

// MoveShape moves the agent to Target, or to the canvas center when Target is nil.
type MoveShape struct {
	Target *domain.Position `yaml:"target" mapstructure:"target"`
}

func (m MoveShape) Draw(ctx context.Context, s *Session, canvas domain.CanvasDimensions) (domain.AgentState, error) {
	if err := s.MoveTo(ctx, anchor(m.Target, canvas)); err != nil {
		return s.State(), err
	}
	return s.State(), nil
}

// CircleShape draws a two-colored circle. A nil Center means the canvas center.
type CircleShape struct {
	Center *domain.Position `yaml:"center" mapstructure:"center"`
	Radius float64          `yaml:"radius" mapstructure:"radius"`
}

func (c CircleShape) Draw(ctx context.Context, s *Session, canvas domain.CanvasDimensions) (domain.AgentState, error) {
	return Circle(ctx, s, anchor(c.Center, canvas), c.Radius)
}

// DropletShape draws a teardrop. A nil Center means the canvas center.
type DropletShape struct {
	Center    *domain.Position `yaml:"center" mapstructure:"center"`
	Radius    float64          `yaml:"radius" mapstructure:"radius"`
	Sharpness float64          `yaml:"sharpness" mapstructure:"sharpness"`
}

func (d DropletShape) Draw(ctx context.Context, s *Session, canvas domain.CanvasDimensions) (domain.AgentState, error) {
	return Droplet(ctx, s, anchor(d.Center, canvas), d.Radius, d.Sharpness)
}

// Draw makes a WaveConfig usable as a program step.
func (c WaveConfig) Draw(ctx context.Context, s *Session, canvas domain.CanvasDimensions) (domain.AgentState, error) {
	return Wave(ctx, s, canvas, c)
}

// ClassicProgram is the drawing of the original paint bot: go to the middle
// of the canvas, then draw a wave of circles across it.
func ClassicProgram() []Shape {
	return []Shape{MoveShape{}, DefaultWaveConfig()}
}

// Run draws shapes in order and stops at the first failure.
func Run(ctx context.Context, s *Session, canvas domain.CanvasDimensions, shapes ...Shape) (domain.AgentState, error) {
	for i, shape := range shapes {
		if shape == nil {
			return s.State(), fmt.Errorf("%w: shape %d is nil", domain.ErrParameter, i)
		}
		s.logger.Debug("Drawing shape", "index", i, "shape", fmt.Sprintf("%T", shape))
		if _, err := shape.Draw(ctx, s, canvas); err != nil {
			return s.State(), fmt.Errorf("failed to draw shape %d: %w", i, err)
		}
	}
	return s.State(), nil
}

func anchor(p *domain.Position, canvas domain.CanvasDimensions) domain.Position {
	if p == nil {
		return canvas.Center()
	}
	return *p
}
