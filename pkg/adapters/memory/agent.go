package memory

import (
	"context"

	"github.com/aretw0/brush/pkg/domain"
	"github.com/aretw0/brush/pkg/ports"
)

// Agent is a bot bound to an in-memory Canvas. Canvas errors are reported
// as *domain.RemoteCommandError, like the HTTP transport does.
type Agent struct {
	canvas *Canvas
	id     string
}

var _ ports.Canvas = (*Agent)(nil)

func (a *Agent) MoveOneStep(ctx context.Context, dir domain.Direction) (domain.AgentState, error) {
	return a.call(ctx, "move", func() (domain.AgentState, error) { return a.canvas.Move(a.id, dir) })
}

func (a *Agent) SetColor(ctx context.Context, color domain.Color) (domain.AgentState, error) {
	return a.call(ctx, "color", func() (domain.AgentState, error) { return a.canvas.SetColor(a.id, color) })
}

func (a *Agent) Paint(ctx context.Context) (domain.AgentState, error) {
	return a.call(ctx, "paint", func() (domain.AgentState, error) { return a.canvas.Paint(a.id) })
}

func (a *Agent) Info(ctx context.Context) (domain.AgentState, error) {
	return a.call(ctx, "info", func() (domain.AgentState, error) { return a.canvas.Info(a.id) })
}

func (a *Agent) Clear(ctx context.Context) (domain.AgentState, error) {
	return a.call(ctx, "clear", func() (domain.AgentState, error) { return a.canvas.Clear(a.id) })
}

func (a *Agent) Msg(ctx context.Context, msg string) (domain.AgentState, error) {
	return a.call(ctx, "msg", func() (domain.AgentState, error) { return a.canvas.Msg(a.id, msg) })
}

func (a *Agent) Look(ctx context.Context) (domain.CanvasDimensions, error) {
	if _, err := a.Info(ctx); err != nil {
		return domain.CanvasDimensions{}, err
	}
	return a.canvas.Dimensions(), nil
}

func (a *Agent) Bots(ctx context.Context) (string, error) {
	if _, err := a.Info(ctx); err != nil {
		return "", err
	}
	return a.canvas.BotsJSON()
}

func (a *Agent) Bye(ctx context.Context) error {
	_, err := a.call(ctx, "bye", func() (domain.AgentState, error) {
		return domain.AgentState{}, a.canvas.Bye(a.id)
	})
	return err
}

func (a *Agent) call(ctx context.Context, command string, fn func() (domain.AgentState, error)) (domain.AgentState, error) {
	if err := ctx.Err(); err != nil {
		return domain.AgentState{}, &domain.RemoteCommandError{Command: command, Err: err}
	}
	state, err := fn()
	if err != nil {
		return domain.AgentState{}, &domain.RemoteCommandError{Command: command, Err: err}
	}
	return state, nil
}
