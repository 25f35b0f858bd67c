package curve

import (
	"fmt"
	"math"

	"github.com/aretw0/brush/pkg/domain"
)

const (
	// DefaultStep is the angular increment used by fixed-step curves.
	DefaultStep = 0.1

	// MinStep is the smallest increment a curve ever advances by.
	MinStep = 0.01

	// TwoPi is the default end of the parameter domain.
	TwoPi = 2 * math.Pi
)

// StepFunc returns the increment to apply after sampling at t.
type StepFunc func(t float64) float64

type config struct {
	start, end float64
	step       float64
	stepFn     StepFunc
}

// Option configures a curve generator.
type Option func(*config)

// WithStep sets a fixed parameter increment. Steps smaller than MinStep are raised to MinStep.
func WithStep(step float64) Option {
	return func(c *config) {
		c.step = step
		c.stepFn = nil
	}
}

// WithStepFunc sets a variable parameter increment. Results smaller than
// MinStep (including NaN) are raised to MinStep, so sampling always terminates.
func WithStepFunc(fn StepFunc) Option {
	return func(c *config) {
		c.stepFn = fn
	}
}

// WithRange overrides the parameter domain [start, end].
func WithRange(start, end float64) Option {
	return func(c *config) {
		c.start = start
		c.end = end
	}
}

func newConfig(defaults []Option, opts []Option) (config, error) {
	cfg := config{start: 0, end: TwoPi, step: DefaultStep}
	for _, opt := range defaults {
		opt(&cfg)
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.stepFn == nil && !(cfg.step > 0) {
		return cfg, fmt.Errorf("%w: step must be positive, got %v", domain.ErrParameter, cfg.step)
	}
	if !finite(cfg.start) || !finite(cfg.end) || cfg.end < cfg.start {
		return cfg, fmt.Errorf("%w: invalid parameter range [%v, %v]", domain.ErrParameter, cfg.start, cfg.end)
	}
	return cfg, nil
}

// next returns the parameter of sample i+1, given sample i was taken at t.
// Fixed steps are computed from the index to avoid accumulating float error.
func (c config) next(i int, t float64) float64 {
	if c.stepFn == nil {
		return c.start + float64(i+1)*clampStep(c.step)
	}
	return t + clampStep(c.stepFn(t))
}

func clampStep(step float64) float64 {
	if math.IsNaN(step) || step < MinStep {
		return MinStep
	}
	return step
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func round(v float64) int {
	return int(math.Round(v))
}
