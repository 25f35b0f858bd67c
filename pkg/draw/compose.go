package draw

import (
	"context"
	"fmt"
	"math"

	"github.com/aretw0/brush/pkg/curve"
	"github.com/aretw0/brush/pkg/domain"
)

// Default colors of the composed shapes.
const (
	DefaultLeftColor  = domain.Pink
	DefaultRightColor = domain.Lavender
)

// Circle draws a circle around center, left half and right half in the default colors.
func Circle(ctx context.Context, s *Session, center domain.Position, radius float64) (domain.AgentState, error) {
	samples, err := curve.Circle(center, radius)
	if err != nil {
		return s.State(), err
	}
	return s.DrawCurve(ctx, samples, HalfSplit(DefaultLeftColor, DefaultRightColor), center)
}

// Droplet draws a teardrop with its tip pointing up. The color split flips
// between the upper and lower half.
func Droplet(ctx context.Context, s *Session, center domain.Position, radius, sharpness float64) (domain.AgentState, error) {
	samples, err := curve.SpiralPath(center, radius, curve.Droplet(sharpness))
	if err != nil {
		return s.State(), err
	}
	return s.DrawCurve(ctx, samples, DropletSplit(DefaultLeftColor, DefaultRightColor), center)
}

// WaveMode selects what is drawn at each point of a wave.
type WaveMode string

const (
	WaveCircles WaveMode = "circles"
	WavePoints  WaveMode = "points"
)

// WaveConfig configures Wave.
type WaveConfig struct {
	Mode WaveMode `yaml:"mode" mapstructure:"mode"`

	// Amplitude of the wave; 0 means a quarter of the canvas height.
	Amplitude float64 `yaml:"amplitude" mapstructure:"amplitude"`

	// Circle radius at wave point t is |round(sin t · MaxRadius)| + MinRadius.
	MaxRadius float64 `yaml:"max_radius" mapstructure:"max_radius"`
	MinRadius float64 `yaml:"min_radius" mapstructure:"min_radius"`

	// Color selected before the wave starts.
	Color domain.Color `yaml:"color" mapstructure:"color"`
}

// DefaultWaveConfig returns the wave of circles drawn by the classic bot.
func DefaultWaveConfig() WaveConfig {
	return WaveConfig{
		Mode:      WaveCircles,
		MaxRadius: 15,
		MinRadius: 5,
		Color:     DefaultRightColor,
	}
}

// Wave crosses the canvas along one sine period. In WaveCircles mode it
// draws a circle at every distinct wave point, its radius growing with the
// wave's distance from the middle line; in WavePoints mode it paints the
// wave itself.
func Wave(ctx context.Context, s *Session, canvas domain.CanvasDimensions, cfg WaveConfig) (domain.AgentState, error) {
	if err := canvas.Validate(); err != nil {
		return s.State(), err
	}
	amplitude := cfg.Amplitude
	if amplitude == 0 {
		amplitude = math.Round(float64(canvas.Height) / 4)
	}
	points, err := curve.Wave(canvas.Width, canvas.Height, amplitude)
	if err != nil {
		return s.State(), err
	}

	switch cfg.Mode {
	case WavePoints:
		color := cfg.Color
		if !color.Valid() {
			color = DefaultRightColor
		}
		return s.DrawCurve(ctx, points, Solid(color), canvas.Center())
	case WaveCircles, "":
	default:
		return s.State(), fmt.Errorf("%w: unknown wave mode %q", domain.ErrParameter, cfg.Mode)
	}

	if cfg.MinRadius <= 0 {
		return s.State(), fmt.Errorf("%w: min radius must be positive, got %v", domain.ErrParameter, cfg.MinRadius)
	}
	if cfg.Color.Valid() {
		if err := s.EnsureColor(ctx, cfg.Color); err != nil {
			return s.State(), err
		}
	}

	for p := range points {
		if err := s.MoveTo(ctx, p.Position); err != nil {
			return s.State(), err
		}
		radius := math.Abs(math.Round(math.Sin(p.T)*cfg.MaxRadius)) + cfg.MinRadius
		if _, err := Circle(ctx, s, p.Position, radius); err != nil {
			return s.State(), err
		}
	}
	return s.State(), nil
}
