package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	r := New()
	require.NotNil(t, r)
	assert.NotNil(t, r.modules)
	assert.Empty(t, r.modules)
	assert.NotNil(t, r.providers)
}

func TestRegister(t *testing.T) {
	t.Run("registers a new definition without evaluating it", func(t *testing.T) {
		r := New()
		evaluated := false

		err := r.Register("cat", func(ctx context.Context) (any, error) {
			evaluated = true
			return "Cat:Bugsy", nil
		})
		require.NoError(t, err)
		assert.False(t, evaluated)
		assert.Equal(t, StateRegistered, r.State("cat"))
	})

	t.Run("re-registering the identical definition is a no-op", func(t *testing.T) {
		r := New()
		def := func(ctx context.Context) (any, error) { return 1, nil }

		require.NoError(t, r.Register("cat", def))
		require.NoError(t, r.Register("cat", def))
		assert.Equal(t, StateRegistered, r.State("cat"))
	})

	t.Run("conflicting re-registration fails", func(t *testing.T) {
		r := New()
		require.NoError(t, r.Register("cat", func(ctx context.Context) (any, error) { return 1, nil }))

		err := r.Register("cat", func(ctx context.Context) (any, error) { return 2, nil })
		var dup *DuplicateRegistrationError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "cat", dup.Name)
	})

	t.Run("nil definition panics", func(t *testing.T) {
		r := New()
		assert.Panics(t, func() { _ = r.Register("cat", nil) })
	})
}

func TestState(t *testing.T) {
	r := New()
	assert.Equal(t, StateUnregistered, r.State("ghost"))

	require.NoError(t, r.Register("cat", func(ctx context.Context) (any, error) { return "meow", nil }))
	assert.Equal(t, StateRegistered, r.State("cat"))

	_, err := r.ImportSync(context.Background(), "cat")
	require.NoError(t, err)
	assert.Equal(t, StateResolved, r.State("cat"))
}

func TestSnapshotAndNames(t *testing.T) {
	r := New()
	ok := func(ctx context.Context) (any, error) { return "ok", nil }
	broken := func(ctx context.Context) (any, error) { return nil, assert.AnError }

	require.NoError(t, r.Register("zebra", ok))
	require.NoError(t, r.Register("ant", broken))

	_, err := r.ImportSync(context.Background(), "ant")
	require.Error(t, err)

	assert.Equal(t, []string{"ant", "zebra"}, r.Names())
	assert.Equal(t, map[string]State{
		"ant":   StateFailed,
		"zebra": StateRegistered,
	}, r.Snapshot())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "unregistered", StateUnregistered.String())
	assert.Equal(t, "registered", StateRegistered.String())
	assert.Equal(t, "pending", StatePending.String())
	assert.Equal(t, "resolved", StateResolved.String())
	assert.Equal(t, "failed", StateFailed.String())
}
