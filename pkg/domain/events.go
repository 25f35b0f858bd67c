package domain

import (
	"context"
	"time"
)

// CommandKind identifies the agent primitive that was issued.
type CommandKind string

const (
	CommandMove  CommandKind = "move"
	CommandColor CommandKind = "color"
	CommandPaint CommandKind = "paint"
)

// CommandEvent describes one agent command issued by a draw session.
type CommandEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	SessionID string        `json:"session_id"`
	Kind      CommandKind   `json:"kind"`
	Argument  string        `json:"argument,omitempty"` // direction or color token
	Duration  time.Duration `json:"duration,omitempty"`
	Err       error         `json:"-"`
}

// SessionEvent describes a draw session phase change.
type SessionEvent struct {
	Timestamp time.Time `json:"timestamp"`
	SessionID string    `json:"session_id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
}

// CommandHooks defines callbacks for draw session observability.
// Every field is optional.
type CommandHooks struct {
	OnCommand       func(context.Context, *CommandEvent)
	OnCommandResult func(context.Context, *CommandEvent)
	OnPhaseChange   func(context.Context, *SessionEvent)
}
