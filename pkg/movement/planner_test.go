package movement_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/aretw0/brush/pkg/domain"
	"github.com/aretw0/brush/pkg/movement"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlan(t *testing.T) {
	tests := []struct {
		name     string
		from, to domain.Position
		expected []domain.MoveStep
	}{
		{
			name:     "right and down",
			from:     domain.Pos(0, 0),
			to:       domain.Pos(3, 2),
			expected: []domain.MoveStep{{Direction: domain.Right, Count: 3}, {Direction: domain.Down, Count: 2}},
		},
		{
			name:     "left and up",
			from:     domain.Pos(10, 10),
			to:       domain.Pos(4, 1),
			expected: []domain.MoveStep{{Direction: domain.Left, Count: 6}, {Direction: domain.Up, Count: 9}},
		},
		{
			name:     "vertical only",
			from:     domain.Pos(5, 5),
			to:       domain.Pos(5, 0),
			expected: []domain.MoveStep{{Direction: domain.Up, Count: 5}},
		},
		{
			name:     "horizontal only",
			from:     domain.Pos(-3, 7),
			to:       domain.Pos(2, 7),
			expected: []domain.MoveStep{{Direction: domain.Right, Count: 5}},
		},
		{
			name:     "same cell",
			from:     domain.Pos(8, 8),
			to:       domain.Pos(8, 8),
			expected: []domain.MoveStep{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			steps, err := movement.Plan(domain.Known(tt.from), tt.to)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, steps)
		})
	}
}

func TestPlan_Properties(t *testing.T) {
	for x0 := -4; x0 <= 4; x0 += 2 {
		for y0 := -3; y0 <= 3; y0 += 3 {
			for x1 := -5; x1 <= 5; x1++ {
				for y1 := -5; y1 <= 5; y1++ {
					from, to := domain.Pos(x0, y0), domain.Pos(x1, y1)
					steps, err := movement.Plan(domain.Known(from), to)
					require.NoError(t, err)

					var sum domain.Position
					horizontal, vertical := 0, 0
					for i, s := range steps {
						require.GreaterOrEqual(t, s.Count, 1, "no zero-count steps")
						sum = sum.Add(s.Offset())
						switch s.Direction {
						case domain.Left, domain.Right:
							horizontal++
							assert.Equal(t, 0, i, "horizontal step must come first")
						case domain.Up, domain.Down:
							vertical++
						}
					}
					assert.Equal(t, to.Sub(from), sum)
					assert.LessOrEqual(t, horizontal, 1)
					assert.LessOrEqual(t, vertical, 1)

					dirs := movement.Flatten(steps)
					assert.Equal(t, to, movement.Apply(from, dirs...))
					assert.Len(t, dirs, movement.Distance(from, to))
				}
			}
		}
	}
}

func TestPlan_SamePositionIsEmpty(t *testing.T) {
	for _, p := range []domain.Position{{}, {X: -1, Y: 9}, {X: 1000, Y: -1000}} {
		steps, err := movement.Plan(domain.Known(p), p)
		require.NoError(t, err)
		assert.Empty(t, steps)
	}
}

func TestPlan_UnknownPosition(t *testing.T) {
	for _, target := range []domain.Position{{}, {X: 5, Y: 5}, {X: -2, Y: 3}} {
		steps, err := movement.Plan(domain.Unknown(), target)
		assert.ErrorIs(t, err, domain.ErrPrecondition)
		assert.Nil(t, steps)
	}
}

func TestPrimitives_EarlyStop(t *testing.T) {
	steps := []domain.MoveStep{{Direction: domain.Right, Count: 10}}
	n := 0
	for range movement.Primitives(steps) {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}

func TestPlan_GoldenTour(t *testing.T) {
	tour := []domain.Position{
		domain.Pos(0, 0),
		domain.Pos(3, -2),
		domain.Pos(3, -2),
		domain.Pos(1, 1),
		domain.Pos(1, 4),
		domain.Pos(0, 0),
	}

	var buf bytes.Buffer
	for i := 1; i < len(tour); i++ {
		from, to := tour[i-1], tour[i]
		steps, err := movement.Plan(domain.Known(from), to)
		require.NoError(t, err)

		planned, prims := []string{}, []string{}
		for _, s := range steps {
			planned = append(planned, s.String())
		}
		for _, d := range movement.Flatten(steps) {
			prims = append(prims, d.String())
		}
		fmt.Fprintf(&buf, "%v -> %v | %s | %s\n", from, to, orDash(strings.Join(planned, ", ")), orDash(strings.Join(prims, " ")))
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "tour", buf.Bytes())
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
