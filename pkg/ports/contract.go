package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/brush/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunIdentityStoreContract runs a suite of tests to verify that an IdentityStore
// implementation adheres to the defined interface contract.
func RunIdentityStoreContract(t *testing.T, store IdentityStore) {
	ctx := context.Background()
	name := "contract-bot-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		identity := domain.Identity{Name: name, ID: "id-1"}

		err := store.Save(ctx, identity)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, identity, loaded)
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, domain.Identity{Name: name, ID: "id-1"}))
		require.NoError(t, store.Save(ctx, domain.Identity{Name: name, ID: "id-2"}))

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, "id-2", loaded.ID)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+name)
		assert.ErrorIs(t, err, domain.ErrIdentityNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, domain.Identity{Name: name, ID: "id-3"}))

		err := store.Delete(ctx, name)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, name)
		assert.ErrorIs(t, err, domain.ErrIdentityNotFound, "Load after Delete should return ErrIdentityNotFound")

		assert.NoError(t, store.Delete(ctx, name), "Delete of a missing identity should not fail")
	})
}

// RunAgentContract verifies that an Agent reports state changes for each primitive.
// The agent must start at a known position.
func RunAgentContract(t *testing.T, agent Agent) {
	ctx := context.Background()

	t.Run("SetColor", func(t *testing.T) {
		state, err := agent.SetColor(ctx, domain.Pink)
		require.NoError(t, err)
		assert.Equal(t, domain.Pink, state.Color)
	})

	t.Run("MoveOneStep", func(t *testing.T) {
		state, err := agent.SetColor(ctx, domain.Lavender)
		require.NoError(t, err)
		start, ok := state.Location.Get()
		require.True(t, ok, "agent must start at a known position")

		for _, dir := range domain.Directions {
			before, _ := state.Location.Get()
			state, err = agent.MoveOneStep(ctx, dir)
			require.NoError(t, err)

			after, ok := state.Location.Get()
			require.True(t, ok)
			assert.Equal(t, before.Add(dir.Vector()), after, "move %s", dir)
		}

		end, _ := state.Location.Get()
		assert.Equal(t, start, end, "a full loop returns to the start")
	})

	t.Run("Paint", func(t *testing.T) {
		before, err := agent.SetColor(ctx, domain.Green)
		require.NoError(t, err)

		state, err := agent.Paint(ctx)
		require.NoError(t, err)
		assert.Equal(t, before.Location, state.Location, "paint does not move the agent")
		assert.Equal(t, domain.Green, state.Color)
	})
}
