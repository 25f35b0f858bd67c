package curve

import (
	"fmt"
	"iter"
	"math"

	"github.com/aretw0/brush/pkg/domain"
)

// Func maps the curve parameter t to a grid cell.
type Func func(t float64) domain.Position

// Real adapts a real-valued parametric function, rounding both coordinates
// to the nearest cell.
func Real(fn func(t float64) (x, y float64)) Func {
	return func(t float64) domain.Position {
		x, y := fn(t)
		return domain.Pos(round(x), round(y))
	}
}

// Parametric samples fn over the configured parameter domain. It is the
// extension point the named curves are built on.
func Parametric(fn Func, opts ...Option) (iter.Seq[domain.CurveSample], error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: curve function is nil", domain.ErrParameter)
	}
	cfg, err := newConfig(nil, opts)
	if err != nil {
		return nil, err
	}
	return parametric(cfg, fn), nil
}

func parametric(cfg config, fn Func) iter.Seq[domain.CurveSample] {
	return func(yield func(domain.CurveSample) bool) {
		i := 0
		for t := cfg.start; t < cfg.end; i++ {
			if !yield(domain.CurveSample{Position: fn(t), T: t, Index: i}) {
				return
			}
			t = cfg.next(i, t)
		}
		// closing sample at the inclusive upper bound
		yield(domain.CurveSample{Position: fn(cfg.end), T: cfg.end, Index: i})
	}
}

// Circle samples the circle of the given radius around center:
// (center.X + round(r·cos t), center.Y + round(r·sin t)).
func Circle(center domain.Position, radius float64, opts ...Option) (iter.Seq[domain.CurveSample], error) {
	if err := checkRadius(radius); err != nil {
		return nil, err
	}
	cfg, err := newConfig(nil, opts)
	if err != nil {
		return nil, err
	}
	return parametric(cfg, circleFunc(center, radius)), nil
}

func circleFunc(center domain.Position, radius float64) Func {
	return func(t float64) domain.Position {
		s, c := math.Sincos(t)
		return domain.Pos(center.X+round(radius*c), center.Y+round(radius*s))
	}
}

// Wave samples one sine period stretched across width:
// (round(t/2π·width), round(amplitude·sin t) + round(height/2)).
// Consecutive samples landing on the same cell are suppressed.
func Wave(width, height int, amplitude float64, opts ...Option) (iter.Seq[domain.CurveSample], error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: wave dimensions must be positive, got %dx%d", domain.ErrParameter, width, height)
	}
	if !finite(amplitude) {
		return nil, fmt.Errorf("%w: wave amplitude must be finite, got %v", domain.ErrParameter, amplitude)
	}
	cfg, err := newConfig(nil, opts)
	if err != nil {
		return nil, err
	}

	mid := round(float64(height) / 2)
	span := cfg.end - cfg.start
	fn := func(t float64) domain.Position {
		x := 0
		if span > 0 {
			x = round((t - cfg.start) / span * float64(width))
		}
		return domain.Pos(x, round(amplitude*math.Sin(t))+mid)
	}
	return Dedupe(parametric(cfg, fn)), nil
}

// Displacement moves a raw circle sample. It receives the path radius and
// center so it can recompute the point from sample.T.
type Displacement func(radius float64, center domain.Position, sample domain.CurveSample) domain.Position

// SpiralStep is the default variable increment of SpiralPath: 0.1 + |sin t|·0.05.
func SpiralStep(t float64) float64 {
	return 0.1 + math.Abs(math.Sin(t))*0.05
}

// SpiralPath walks a circle of pathRadius around center with a variable
// step (SpiralStep unless overridden) and passes every sample through
// displace before yielding it. A nil displace yields the raw circle.
func SpiralPath(center domain.Position, pathRadius float64, displace Displacement, opts ...Option) (iter.Seq[domain.CurveSample], error) {
	if err := checkRadius(pathRadius); err != nil {
		return nil, err
	}
	cfg, err := newConfig([]Option{WithStepFunc(SpiralStep)}, opts)
	if err != nil {
		return nil, err
	}

	raw := parametric(cfg, circleFunc(center, pathRadius))
	if displace == nil {
		return raw, nil
	}
	return func(yield func(domain.CurveSample) bool) {
		for s := range raw {
			s.Position = displace(pathRadius, center, s)
			if !yield(s) {
				return
			}
		}
	}, nil
}

// Droplet returns a displacement that bends the circle into a teardrop with
// its tip pointing up. The horizontal extent is modulated by sin(t/2)^sharpness;
// sharpness 0 yields a plain circle starting at the top.
func Droplet(sharpness float64) Displacement {
	return func(radius float64, center domain.Position, s domain.CurveSample) domain.Position {
		sin, cos := math.Sincos(s.T)
		mod := math.Pow(math.Abs(math.Sin(s.T/2)), sharpness)
		return domain.Pos(center.X+round(radius*sin*mod), center.Y-round(radius*cos))
	}
}

// Dedupe drops samples whose position equals the previously yielded one.
func Dedupe(seq iter.Seq[domain.CurveSample]) iter.Seq[domain.CurveSample] {
	return func(yield func(domain.CurveSample) bool) {
		var prev domain.Position
		first := true
		for s := range seq {
			if !first && s.Position.Equal(prev) {
				continue
			}
			first = false
			prev = s.Position
			if !yield(s) {
				return
			}
		}
	}
}

func checkRadius(r float64) error {
	if !(r > 0) || math.IsInf(r, 0) {
		return fmt.Errorf("%w: radius must be positive, got %v", domain.ErrParameter, r)
	}
	return nil
}
