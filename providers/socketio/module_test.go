package socketio

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/lazymod/internal/registry"
)

func TestRegister(t *testing.T) {
	r := registry.New()
	(&Plugin{}).Register(r)

	provider, ok := r.Provider("socketio")
	require.True(t, ok)
	assert.False(t, provider.SyncSafe, "the exchange is deferred work")
}

func TestBuildSocketIO(t *testing.T) {
	t.Run("invalid timeout fails at build time", func(t *testing.T) {
		_, err := buildSocketIO(context.Background(), &Input{
			URL:     "http://localhost:9999",
			OnEvent: "module_payload",
			Timeout: "later",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid timeout")
	})

	t.Run("build does not connect", func(t *testing.T) {
		// Nothing listens on this address; building must still succeed
		// because the connection belongs to resolution.
		def, err := buildSocketIO(context.Background(), &Input{
			URL:     "http://127.0.0.1:1",
			OnEvent: "module_payload",
			Timeout: "50ms",
		})
		require.NoError(t, err)
		require.NotNil(t, def)
	})
}
