package draw_test

import (
	"context"

	"github.com/aretw0/brush/pkg/domain"
)

// fakeAgent records every command and can fail the n-th paint.
type fakeAgent struct {
	pos         domain.Position
	known       bool
	color       domain.Color
	calls       []string
	painted     []domain.Position
	paints      int
	failPaintAt int
}

func newFakeAgent(x, y int) *fakeAgent {
	return &fakeAgent{pos: domain.Pos(x, y), known: true}
}

func (a *fakeAgent) state() domain.AgentState {
	loc := domain.Unknown()
	if a.known {
		loc = domain.Known(a.pos)
	}
	return domain.AgentState{Location: loc, Color: a.color}
}

func (a *fakeAgent) MoveOneStep(_ context.Context, dir domain.Direction) (domain.AgentState, error) {
	a.calls = append(a.calls, "move "+dir.String())
	a.pos = a.pos.Add(dir.Vector())
	a.known = true
	return a.state(), nil
}

func (a *fakeAgent) SetColor(_ context.Context, c domain.Color) (domain.AgentState, error) {
	a.calls = append(a.calls, "color "+c.String())
	a.color = c
	return a.state(), nil
}

func (a *fakeAgent) Paint(context.Context) (domain.AgentState, error) {
	a.paints++
	if a.paints == a.failPaintAt {
		a.calls = append(a.calls, "paint failed")
		return domain.AgentState{}, &domain.RemoteCommandError{Command: "paint", Status: 500, Body: "canvas unavailable"}
	}
	a.calls = append(a.calls, "paint")
	a.painted = append(a.painted, a.pos)
	return a.state(), nil
}

func (a *fakeAgent) count(call string) int {
	n := 0
	for _, c := range a.calls {
		if c == call {
			n++
		}
	}
	return n
}

func samplesOf(pts ...domain.Position) func(func(domain.CurveSample) bool) {
	return func(yield func(domain.CurveSample) bool) {
		for i, p := range pts {
			if !yield(domain.CurveSample{Position: p, T: float64(i) / 10, Index: i}) {
				return
			}
		}
	}
}
