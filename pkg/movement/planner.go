// Package movement translates grid positions into the axis-aligned unit
// moves a remote agent can execute.
package movement

import (
	"fmt"
	"iter"

	"github.com/aretw0/brush/pkg/domain"
)

// Plan returns the steps that take an agent from current to target.
// Horizontal movement always comes first, then vertical; there are no
// diagonal shortcuts. Equal positions yield an empty plan.
// An unknown current location fails with domain.ErrPrecondition.
func Plan(current domain.Location, target domain.Position) ([]domain.MoveStep, error) {
	from, ok := current.Get()
	if !ok {
		return nil, fmt.Errorf("%w: cannot plan a move to %v from an unknown position", domain.ErrPrecondition, target)
	}

	d := target.Sub(from)
	steps := make([]domain.MoveStep, 0, 2)
	if d.X != 0 {
		dir := domain.Right
		if d.X < 0 {
			dir = domain.Left
		}
		steps = append(steps, domain.MoveStep{Direction: dir, Count: abs(d.X)})
	}
	if d.Y != 0 {
		dir := domain.Down
		if d.Y < 0 {
			dir = domain.Up
		}
		steps = append(steps, domain.MoveStep{Direction: dir, Count: abs(d.Y)})
	}
	return steps, nil
}

// Primitives yields the steps as single unit moves, in order.
func Primitives(steps []domain.MoveStep) iter.Seq[domain.Direction] {
	return func(yield func(domain.Direction) bool) {
		for _, step := range steps {
			for range step.Count {
				if !yield(step.Direction) {
					return
				}
			}
		}
	}
}

// Flatten expands the steps into single unit moves.
func Flatten(steps []domain.MoveStep) []domain.Direction {
	n := 0
	for _, step := range steps {
		n += step.Count
	}
	out := make([]domain.Direction, 0, n)
	for dir := range Primitives(steps) {
		out = append(out, dir)
	}
	return out
}

// Apply moves p by each unit direction in turn.
func Apply(p domain.Position, dirs ...domain.Direction) domain.Position {
	for _, d := range dirs {
		p = p.Add(d.Vector())
	}
	return p
}

// Distance is the number of unit moves between two cells.
func Distance(a, b domain.Position) int {
	d := b.Sub(a)
	return abs(d.X) + abs(d.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
