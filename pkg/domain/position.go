package domain

import "fmt"

// Position is a cell on the integer canvas grid.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Pos returns the position (x, y).
func Pos(x, y int) Position {
	return Position{X: x, Y: y}
}

// Equal reports whether both coordinates match.
func (p Position) Equal(o Position) bool {
	return p.X == o.X && p.Y == o.Y
}

// Add translates p by the vector o.
func (p Position) Add(o Position) Position {
	return Position{X: p.X + o.X, Y: p.Y + o.Y}
}

// Sub returns the vector from o to p.
func (p Position) Sub(o Position) Position {
	return Position{X: p.X - o.X, Y: p.Y - o.Y}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Location is a Position that may not have been established yet.
// The zero value is Unknown.
type Location struct {
	pos   Position
	known bool
}

// Known wraps an established position.
func Known(p Position) Location {
	return Location{pos: p, known: true}
}

// Unknown returns a location with no established position.
func Unknown() Location {
	return Location{}
}

// Get returns the position and whether it is known.
func (l Location) Get() (Position, bool) {
	return l.pos, l.known
}

// IsKnown reports whether the location holds a position.
func (l Location) IsKnown() bool {
	return l.known
}

func (l Location) String() string {
	if !l.known {
		return "unknown"
	}
	return l.pos.String()
}

// CanvasDimensions is the drawable area reported by the canvas service.
// Positions outside of it are still legal values.
type CanvasDimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Validate checks that both dimensions are positive.
func (c CanvasDimensions) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: canvas dimensions must be positive, got %dx%d", ErrParameter, c.Width, c.Height)
	}
	return nil
}

// Center returns the cell at floor(width/2), floor(height/2).
func (c CanvasDimensions) Center() Position {
	return Position{X: c.Width / 2, Y: c.Height / 2}
}
