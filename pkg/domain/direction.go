package domain

import "fmt"

// Direction is an axis-aligned unit move understood by the agent.
type Direction string

const (
	Up    Direction = "UP"
	Down  Direction = "DOWN"
	Left  Direction = "LEFT"
	Right Direction = "RIGHT"
)

// Directions lists every valid direction.
var Directions = []Direction{Up, Right, Down, Left}

// Vector returns the unit offset for d. Screen coordinates: y grows downwards.
func (d Direction) Vector() Position {
	switch d {
	case Up:
		return Position{Y: -1}
	case Down:
		return Position{Y: 1}
	case Left:
		return Position{X: -1}
	case Right:
		return Position{X: 1}
	}
	return Position{}
}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	switch d {
	case Up, Down, Left, Right:
		return true
	}
	return false
}

func (d Direction) String() string {
	return string(d)
}

// ParseDirection converts a protocol token into a Direction.
func ParseDirection(s string) (Direction, error) {
	d := Direction(s)
	if !d.Valid() {
		return "", fmt.Errorf("%w: unknown direction %q", ErrParameter, s)
	}
	return d, nil
}

// MoveStep is Count unit moves in Direction. Count is always >= 1.
type MoveStep struct {
	Direction Direction `json:"direction"`
	Count     int       `json:"count"`
}

// Primitives expands the step into single unit moves.
func (m MoveStep) Primitives() []Direction {
	out := make([]Direction, m.Count)
	for i := range out {
		out[i] = m.Direction
	}
	return out
}

// Offset returns the total displacement of the step.
func (m MoveStep) Offset() Position {
	v := m.Direction.Vector()
	return Position{X: v.X * m.Count, Y: v.Y * m.Count}
}

func (m MoveStep) String() string {
	return fmt.Sprintf("%s x%d", m.Direction, m.Count)
}
