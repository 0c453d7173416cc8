package env

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

	provider, ok := r.Provider("env")
	require.True(t, ok)
	assert.True(t, provider.SyncSafe)
}

func TestBuildEnv(t *testing.T) {
	t.Setenv("LAZYMOD_TEST_SPECIES", "cat")
	t.Setenv("LAZYMOD_TEST_NAME", "Bugsy")
	t.Setenv("OTHER_VARIABLE", "ignored")

	t.Run("filters by prefix", func(t *testing.T) {
		def, err := buildEnv(context.Background(), &Input{Prefix: "LAZYMOD_TEST_"})
		require.NoError(t, err)

		value, err := def(context.Background())
		require.NoError(t, err)

		envMap, ok := value.(map[string]string)
		require.True(t, ok)
		assert.Equal(t, map[string]string{
			"LAZYMOD_TEST_SPECIES": "cat",
			"LAZYMOD_TEST_NAME":    "Bugsy",
		}, envMap)
	})

	t.Run("no prefix returns the whole environment", func(t *testing.T) {
		def, err := buildEnv(context.Background(), &Input{})
		require.NoError(t, err)

		value, err := def(context.Background())
		require.NoError(t, err)

		envMap, ok := value.(map[string]string)
		require.True(t, ok)
		assert.Contains(t, envMap, "LAZYMOD_TEST_SPECIES")
		assert.Contains(t, envMap, "OTHER_VARIABLE")
	})
}
