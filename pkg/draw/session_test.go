package draw_test

import (
	"context"
	"testing"

	"github.com/aretw0/brush/pkg/domain"
	"github.com/aretw0/brush/pkg/draw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func noColor(domain.Position, domain.CurveSample) domain.Color { return domain.NoColor }

func byIndex(_ domain.Position, s domain.CurveSample) domain.Color {
	if s.Index%2 == 0 {
		return domain.Pink
	}
	return domain.Lavender
}

func TestDrawCurve_PaintsEverySampleInOrder(t *testing.T) {
	agent := newFakeAgent(0, 0)
	samples := samplesOf(domain.Pos(2, 0), domain.Pos(2, 3), domain.Pos(1, 1))

	state, err := draw.DrawCurve(context.Background(), agent, agent.state(), samples, byIndex, domain.Pos(0, 0))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"color e", "move RIGHT", "move RIGHT", "paint",
		"color d", "move DOWN", "move DOWN", "move DOWN", "paint",
		"color e", "move LEFT", "move UP", "move UP", "paint",
	}, agent.calls)
	assert.Equal(t, []domain.Position{domain.Pos(2, 0), domain.Pos(2, 3), domain.Pos(1, 1)}, agent.painted)
	assert.Equal(t, domain.Known(domain.Pos(1, 1)), state.Location)
	assert.Equal(t, domain.Pink, state.Color)
}

func TestDrawCurve_FailureOnSecondPaintAborts(t *testing.T) {
	agent := newFakeAgent(0, 0)
	agent.failPaintAt = 2
	samples := samplesOf(domain.Pos(2, 0), domain.Pos(2, 3), domain.Pos(5, 5))

	s := draw.NewSession(agent, agent.state())
	state, err := s.DrawCurve(context.Background(), samples, byIndex, domain.Pos(0, 0))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRemoteCommand)
	var rce *domain.RemoteCommandError
	require.ErrorAs(t, err, &rce)
	assert.Equal(t, "paint", rce.Command)

	assert.Equal(t, 2, agent.count("color e")+agent.count("color d"), "two color selections")
	assert.Equal(t, 1, agent.count("paint"), "one successful paint")
	assert.Equal(t, 5, agent.count("move RIGHT")+agent.count("move DOWN"), "moves of the first two samples only")
	assert.Equal(t, "paint failed", agent.calls[len(agent.calls)-1], "nothing is issued after the failure")

	// the last good state is kept for recovery
	assert.Equal(t, domain.Known(domain.Pos(2, 3)), state.Location)
	assert.Equal(t, state, s.State())
	assert.Equal(t, draw.PhaseDrawing, s.Phase())
}

func TestDrawCurve_SelectsColorOnlyWhenItChanges(t *testing.T) {
	agent := newFakeAgent(5, 5)
	samples := samplesOf(domain.Pos(6, 5), domain.Pos(7, 5), domain.Pos(8, 5))

	_, err := draw.DrawCurve(context.Background(), agent, agent.state(), samples, draw.Solid(domain.Blue), domain.Pos(0, 0))
	require.NoError(t, err)

	assert.Equal(t, 1, agent.count("color c"))
	assert.Equal(t, 3, agent.count("paint"))
}

func TestDrawCurve_UnknownPosition(t *testing.T) {
	agent := &fakeAgent{}
	s := draw.NewSession(agent, domain.AgentState{})
	assert.Equal(t, draw.PhaseUninitialized, s.Phase())

	_, err := s.DrawCurve(context.Background(), samplesOf(domain.Pos(1, 1)), draw.Solid(domain.Red), domain.Pos(0, 0))
	assert.ErrorIs(t, err, domain.ErrPrecondition)
	assert.Empty(t, agent.calls, "no command may be issued without a known origin")
}

func TestDrawCurve_InvalidArguments(t *testing.T) {
	agent := newFakeAgent(0, 0)
	s := draw.NewSession(agent, agent.state())

	_, err := s.DrawCurve(context.Background(), nil, draw.Solid(domain.Red), domain.Pos(0, 0))
	assert.ErrorIs(t, err, domain.ErrParameter)

	_, err = s.DrawCurve(context.Background(), samplesOf(domain.Pos(1, 1)), nil, domain.Pos(0, 0))
	assert.ErrorIs(t, err, domain.ErrParameter)

	_, err = s.DrawCurve(context.Background(), samplesOf(domain.Pos(1, 1)), noColor, domain.Pos(0, 0))
	assert.ErrorIs(t, err, domain.ErrParameter)
	assert.Empty(t, agent.calls)
}

func TestDrawCurve_Dedupe(t *testing.T) {
	pts := []domain.Position{domain.Pos(1, 0), domain.Pos(1, 0), domain.Pos(2, 0), domain.Pos(2, 0)}

	agent := newFakeAgent(0, 0)
	_, err := draw.DrawCurve(context.Background(), agent, agent.state(), samplesOf(pts...), draw.Solid(domain.Red), domain.Pos(0, 0))
	require.NoError(t, err)
	assert.Equal(t, 2, agent.count("paint"))

	agent = newFakeAgent(0, 0)
	_, err = draw.DrawCurve(context.Background(), agent, agent.state(), samplesOf(pts...), draw.Solid(domain.Red), domain.Pos(0, 0), draw.WithDedupe(false))
	require.NoError(t, err)
	assert.Equal(t, 4, agent.count("paint"))
}

func TestSession_Phases(t *testing.T) {
	agent := &fakeAgent{}
	var phases []string
	s := draw.NewSession(agent, domain.AgentState{}, draw.WithHooks(domain.CommandHooks{
		OnPhaseChange: func(_ context.Context, e *domain.SessionEvent) {
			phases = append(phases, e.From+"->"+e.To)
		},
	}))
	ctx := context.Background()

	err := s.MoveTo(ctx, domain.Pos(3, 3))
	assert.ErrorIs(t, err, domain.ErrPrecondition)

	require.NoError(t, s.Step(ctx, domain.Right))
	assert.Equal(t, draw.PhasePositioned, s.Phase())

	require.NoError(t, s.MoveTo(ctx, domain.Pos(3, 3)))
	_, err = s.DrawCurve(ctx, samplesOf(domain.Pos(3, 4)), draw.Solid(domain.Red), domain.Pos(0, 0))
	require.NoError(t, err)
	assert.Equal(t, draw.PhaseDrawing, s.Phase())

	final := s.Finish(ctx)
	assert.Equal(t, domain.Known(domain.Pos(3, 4)), final.Location)
	assert.ErrorIs(t, s.Paint(ctx), domain.ErrSessionFinished)
	_, err = s.DrawCurve(ctx, samplesOf(domain.Pos(1, 1)), draw.Solid(domain.Red), domain.Pos(0, 0))
	assert.ErrorIs(t, err, domain.ErrSessionFinished)

	assert.Equal(t, []string{
		"uninitialized->positioned",
		"positioned->drawing",
		"drawing->finished",
	}, phases)
}

func TestSession_Hooks(t *testing.T) {
	agent := newFakeAgent(0, 0)
	var issued, failed []domain.CommandKind
	hooks := domain.CommandHooks{
		OnCommand: func(_ context.Context, e *domain.CommandEvent) {
			issued = append(issued, e.Kind)
		},
		OnCommandResult: func(_ context.Context, e *domain.CommandEvent) {
			if e.Err != nil {
				failed = append(failed, e.Kind)
			}
		},
	}
	agent.failPaintAt = 1

	_, err := draw.DrawCurve(context.Background(), agent, agent.state(), samplesOf(domain.Pos(0, 1)), draw.Solid(domain.Red), domain.Pos(0, 0), draw.WithHooks(hooks), draw.WithSessionID("s-1"))
	require.Error(t, err)

	assert.Equal(t, []domain.CommandKind{domain.CommandColor, domain.CommandMove, domain.CommandPaint}, issued)
	assert.Equal(t, []domain.CommandKind{domain.CommandPaint}, failed)
}

func TestSession_CanceledContext(t *testing.T) {
	agent := newFakeAgent(0, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := draw.DrawCurve(ctx, agent, agent.state(), samplesOf(domain.Pos(4, 4)), draw.Solid(domain.Red), domain.Pos(0, 0))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, agent.calls)
}

type mockAgent struct {
	mock.Mock
}

func (m *mockAgent) MoveOneStep(ctx context.Context, dir domain.Direction) (domain.AgentState, error) {
	args := m.Called(ctx, dir)
	return args.Get(0).(domain.AgentState), args.Error(1)
}

func (m *mockAgent) SetColor(ctx context.Context, c domain.Color) (domain.AgentState, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(domain.AgentState), args.Error(1)
}

func (m *mockAgent) Paint(ctx context.Context) (domain.AgentState, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.AgentState), args.Error(1)
}

func TestDrawCurve_ThreadsReturnedState(t *testing.T) {
	at := func(x, y int, c domain.Color) domain.AgentState {
		return domain.AgentState{Location: domain.Known(domain.Pos(x, y)), Color: c}
	}

	m := new(mockAgent)
	mock.InOrder(
		m.On("SetColor", mock.Anything, domain.Red).Return(at(0, 0, domain.Red), nil).Once(),
		// the agent reports it was pushed back, so the next plan starts from (0, 0) again
		m.On("MoveOneStep", mock.Anything, domain.Right).Return(at(0, 0, domain.Red), nil).Once(),
		m.On("Paint", mock.Anything).Return(at(0, 0, domain.Red), nil).Once(),
		m.On("MoveOneStep", mock.Anything, domain.Right).Return(at(1, 0, domain.Red), nil).Once(),
		m.On("Paint", mock.Anything).Return(at(1, 0, domain.Red), nil).Once(),
	)

	state, err := draw.DrawCurve(context.Background(), m, at(0, 0, domain.NoColor), samplesOf(domain.Pos(1, 0), domain.Pos(1, 0)), draw.Solid(domain.Red), domain.Pos(0, 0), draw.WithDedupe(false))
	require.NoError(t, err)
	assert.Equal(t, at(1, 0, domain.Red), state)
	m.AssertExpectations(t)
}
