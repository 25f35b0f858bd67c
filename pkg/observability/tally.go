package observability

import (
	"context"
	"maps"
	"sync"

	"github.com/aretw0/brush/pkg/domain"
)

// Tally counts commands in memory, for end-of-run summaries.
type Tally struct {
	mu       sync.Mutex
	commands map[domain.CommandKind]int
	failures int
}

// NewTally creates an empty tally.
func NewTally() *Tally {
	return &Tally{commands: make(map[domain.CommandKind]int)}
}

// Hooks returns session hooks that record into t.
func (t *Tally) Hooks() domain.CommandHooks {
	return domain.CommandHooks{
		OnCommandResult: func(ctx context.Context, e *domain.CommandEvent) {
			t.mu.Lock()
			defer t.mu.Unlock()
			t.commands[e.Kind]++
			if e.Err != nil {
				t.failures++
			}
		},
	}
}

// Commands returns a copy of the per-kind command counts.
func (t *Tally) Commands() map[domain.CommandKind]int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return maps.Clone(t.commands)
}

// Failures returns the number of failed commands.
func (t *Tally) Failures() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.failures
}
