package draw

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/aretw0/brush/internal/logging"
	"github.com/aretw0/brush/pkg/domain"
	"github.com/aretw0/brush/pkg/movement"
	"github.com/aretw0/brush/pkg/ports"
	"github.com/google/uuid"
)

// Phase is the lifecycle stage of a Session.
type Phase int

const (
	PhaseUninitialized Phase = iota
	PhasePositioned
	PhaseDrawing
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhasePositioned:
		return "positioned"
	case PhaseDrawing:
		return "drawing"
	case PhaseFinished:
		return "finished"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Session issues move, color and paint commands to a single agent.
// It is not safe for concurrent use.
type Session struct {
	agent  ports.Agent
	state  domain.AgentState
	phase  Phase
	id     string
	dedupe bool
	logger *slog.Logger
	hooks  domain.CommandHooks
}

// Option configures a Session.
type Option func(*Session)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.CommandHooks) Option {
	return func(s *Session) {
		s.hooks = hooks
	}
}

// WithSessionID sets the id used in logs and events (default: random UUID).
func WithSessionID(id string) Option {
	return func(s *Session) {
		s.id = id
	}
}

// WithDedupe controls whether DrawCurve skips a sample that lands on the
// same cell as the previous one (default: true).
func WithDedupe(enabled bool) Option {
	return func(s *Session) {
		s.dedupe = enabled
	}
}

// NewSession creates a session for agent, starting from the state the agent
// last reported (usually the result of an info command).
func NewSession(agent ports.Agent, initial domain.AgentState, opts ...Option) *Session {
	s := &Session{
		agent:  agent,
		state:  initial,
		dedupe: true,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.id == "" {
		s.id = uuid.NewString()
	}
	s.logger = s.logger.With("session_id", s.id)
	if initial.Location.IsKnown() {
		s.phase = PhasePositioned
	}
	return s
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// State returns the most recent state reported by the agent.
func (s *Session) State() domain.AgentState { return s.state }

// Phase returns the current lifecycle stage.
func (s *Session) Phase() Phase { return s.phase }

// Step issues a single unit move.
func (s *Session) Step(ctx context.Context, dir domain.Direction) error {
	return s.issue(ctx, domain.CommandMove, dir.String(), func(ctx context.Context) (domain.AgentState, error) {
		return s.agent.MoveOneStep(ctx, dir)
	})
}

// SetColor selects the paint color, even if it is already current.
func (s *Session) SetColor(ctx context.Context, color domain.Color) error {
	if !color.Valid() {
		return fmt.Errorf("%w: cannot select color %q", domain.ErrParameter, color)
	}
	return s.issue(ctx, domain.CommandColor, color.String(), func(ctx context.Context) (domain.AgentState, error) {
		return s.agent.SetColor(ctx, color)
	})
}

// EnsureColor selects color only if the agent reports a different one.
func (s *Session) EnsureColor(ctx context.Context, color domain.Color) error {
	if s.state.Color == color {
		return nil
	}
	return s.SetColor(ctx, color)
}

// Paint paints the cell under the agent with the current color.
func (s *Session) Paint(ctx context.Context) error {
	return s.issue(ctx, domain.CommandPaint, "", func(ctx context.Context) (domain.AgentState, error) {
		return s.agent.Paint(ctx)
	})
}

// MoveTo walks the agent to target one unit move at a time, horizontal
// moves first. It fails with domain.ErrPrecondition if the agent position
// is unknown.
func (s *Session) MoveTo(ctx context.Context, target domain.Position) error {
	steps, err := movement.Plan(s.state.Location, target)
	if err != nil {
		return err
	}
	for dir := range movement.Primitives(steps) {
		if err := s.Step(ctx, dir); err != nil {
			return err
		}
	}
	return nil
}

// DrawCurve paints every sample in order: pick the color with rule, select
// it if it differs from the current one, move to the sample and paint.
// It returns the final agent state. On failure the returned state is the
// last one the agent reported before the failing command.
func (s *Session) DrawCurve(ctx context.Context, samples iter.Seq[domain.CurveSample], rule domain.ColorRule, reference domain.Position) (domain.AgentState, error) {
	if samples == nil || rule == nil {
		return s.state, fmt.Errorf("%w: draw requires samples and a color rule", domain.ErrParameter)
	}
	if s.phase == PhaseFinished {
		return s.state, domain.ErrSessionFinished
	}

	var (
		prev    domain.Position
		painted bool
		count   int
	)
	for sample := range samples {
		if _, ok := s.state.Location.Get(); !ok {
			return s.state, fmt.Errorf("%w: agent position unknown before sample %d", domain.ErrPrecondition, sample.Index)
		}
		if s.dedupe && painted && sample.Position.Equal(prev) {
			continue
		}
		s.setPhase(ctx, PhaseDrawing)

		color := rule(reference, sample)
		if !color.Valid() {
			return s.state, fmt.Errorf("%w: color rule returned %q for sample %d", domain.ErrParameter, color, sample.Index)
		}
		if err := s.EnsureColor(ctx, color); err != nil {
			return s.state, err
		}
		if err := s.MoveTo(ctx, sample.Position); err != nil {
			return s.state, err
		}
		if err := s.Paint(ctx); err != nil {
			return s.state, err
		}
		prev, painted = sample.Position, true
		count++
	}

	s.logger.Debug("Curve drawn", "samples", count, "position", s.state.Location.String())
	return s.state, nil
}

// Finish ends the session. Later commands fail with domain.ErrSessionFinished.
func (s *Session) Finish(ctx context.Context) domain.AgentState {
	s.setPhase(ctx, PhaseFinished)
	return s.state
}

func (s *Session) issue(ctx context.Context, kind domain.CommandKind, arg string, call func(context.Context) (domain.AgentState, error)) error {
	if s.phase == PhaseFinished {
		return domain.ErrSessionFinished
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	event := &domain.CommandEvent{
		Timestamp: time.Now(),
		SessionID: s.id,
		Kind:      kind,
		Argument:  arg,
	}
	if s.hooks.OnCommand != nil {
		s.hooks.OnCommand(ctx, event)
	}

	state, err := call(ctx)
	event.Duration = time.Since(event.Timestamp)
	event.Err = err
	if s.hooks.OnCommandResult != nil {
		s.hooks.OnCommandResult(ctx, event)
	}

	if err != nil {
		s.logger.Error("Command failed", "command", kind, "arg", arg, "phase", s.phase.String(), "error", err)
		return fmt.Errorf("failed to %s: %w", kind, err)
	}

	s.logger.Debug("Command", "command", kind, "arg", arg, "position", state.Location.String(), "color", state.Color.String())
	s.state = state
	if s.phase == PhaseUninitialized && state.Location.IsKnown() {
		s.setPhase(ctx, PhasePositioned)
	}
	return nil
}

func (s *Session) setPhase(ctx context.Context, to Phase) {
	if s.phase == to {
		return
	}
	from := s.phase
	s.phase = to
	s.logger.Debug("Phase changed", "from", from.String(), "to", to.String())
	if s.hooks.OnPhaseChange != nil {
		s.hooks.OnPhaseChange(ctx, &domain.SessionEvent{
			Timestamp: time.Now(),
			SessionID: s.id,
			From:      from.String(),
			To:        to.String(),
		})
	}
}

// DrawCurve draws samples with a fresh session for agent, starting from start.
func DrawCurve(ctx context.Context, agent ports.Agent, start domain.AgentState, samples iter.Seq[domain.CurveSample], rule domain.ColorRule, reference domain.Position, opts ...Option) (domain.AgentState, error) {
	s := NewSession(agent, start, opts...)
	state, err := s.DrawCurve(ctx, samples, rule, reference)
	if err != nil {
		return state, err
	}
	return s.Finish(ctx), nil
}
