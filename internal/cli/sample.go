package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/aretw0/brush/pkg/curve"
	"github.com/aretw0/brush/pkg/domain"
	"github.com/aretw0/brush/pkg/movement"
)

// SampleParams selects a curve for Sample.
type SampleParams struct {
	Kind      string
	Center    domain.Position
	Radius    float64
	Sharpness float64
	Width     int
	Height    int
	Amplitude float64
	Step      float64
}

// Sample returns the samples of the curve described by p.
func Sample(p SampleParams) (iter.Seq[domain.CurveSample], error) {
	var opts []curve.Option
	if p.Step > 0 {
		opts = append(opts, curve.WithStep(p.Step))
	}
	switch strings.ToLower(p.Kind) {
	case "circle":
		return curve.Circle(p.Center, p.Radius, opts...)
	case "droplet":
		return curve.SpiralPath(p.Center, p.Radius, curve.Droplet(p.Sharpness), opts...)
	case "wave":
		return curve.Wave(p.Width, p.Height, p.Amplitude, opts...)
	}
	return nil, fmt.Errorf("%w: unknown curve %q", domain.ErrParameter, p.Kind)
}

// WriteSamples prints one sample per line, or a JSON array when asJSON is set.
func WriteSamples(w io.Writer, samples iter.Seq[domain.CurveSample], asJSON bool) error {
	if asJSON {
		all := []domain.CurveSample{}
		for s := range samples {
			all = append(all, s)
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(all)
	}
	for s := range samples {
		if _, err := fmt.Fprintf(w, "%d\t%.4f\t%d\t%d\n", s.Index, s.T, s.Position.X, s.Position.Y); err != nil {
			return err
		}
	}
	return nil
}

// WritePlan prints the move steps between two cells and their primitives.
func WritePlan(w io.Writer, from domain.Location, to domain.Position) error {
	steps, err := movement.Plan(from, to)
	if err != nil {
		return err
	}
	for i, step := range steps {
		if _, err := fmt.Fprintf(w, "%d\t%s\n", i, step); err != nil {
			return err
		}
	}
	dirs := movement.Flatten(steps)
	names := make([]string, len(dirs))
	for i, d := range dirs {
		names[i] = d.String()
	}
	_, err = fmt.Fprintf(w, "primitives (%d): %s\n", len(dirs), strings.Join(names, " "))
	return err
}
