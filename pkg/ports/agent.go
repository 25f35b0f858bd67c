package ports

import (
	"context"

	"github.com/aretw0/brush/pkg/domain"
)

// Agent is the remote cursor driven by a draw session.
// Every call is a blocking round-trip that returns the agent's new state.
// Failures are reported as *domain.RemoteCommandError.
type Agent interface {
	MoveOneStep(ctx context.Context, dir domain.Direction) (domain.AgentState, error)
	SetColor(ctx context.Context, color domain.Color) (domain.AgentState, error)
	Paint(ctx context.Context) (domain.AgentState, error)
}

// Canvas is the complete command surface of the canvas service.
// Implementations are bound to a single registered bot.
type Canvas interface {
	Agent

	// Info is a no-op command returning the current state.
	Info(ctx context.Context) (domain.AgentState, error)

	// Look returns the dimensions of the shared canvas.
	Look(ctx context.Context) (domain.CanvasDimensions, error)

	// Clear erases the pixel under the agent.
	Clear(ctx context.Context) (domain.AgentState, error)

	// Msg displays a message next to the bot name.
	Msg(ctx context.Context, msg string) (domain.AgentState, error)

	// Bots returns the raw JSON description of every registered bot.
	Bots(ctx context.Context) (string, error)

	// Bye deregisters the bot. Its id is no longer usable afterwards.
	Bye(ctx context.Context) error
}

// Registrar creates bot identities with the canvas service.
type Registrar interface {
	Register(ctx context.Context, name string) (domain.Identity, error)
}

// Connector registers bots and binds a Canvas to a registered identity.
type Connector interface {
	Registrar
	Connect(identity domain.Identity) Canvas
}
