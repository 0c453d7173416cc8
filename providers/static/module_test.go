package static

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

	provider, ok := r.Provider("static")
	require.True(t, ok)
	assert.True(t, provider.SyncSafe)
	assert.NotNil(t, provider.NewInput())
}

func TestBuildStatic(t *testing.T) {
	value := map[string]any{"species": "cat", "name": "Bugsy"}
	def, err := buildStatic(context.Background(), &Input{Value: value})
	require.NoError(t, err)

	got, err := def(context.Background())
	require.NoError(t, err)
	assert.Equal(t, value, got)
}

func TestStaticModule_EndToEnd(t *testing.T) {
	r := registry.New()
	(&Plugin{}).Register(r)

	provider, _ := r.Provider("static")
	def, err := provider.Build(context.Background(), &Input{Value: "Cat:Bugsy"})
	require.NoError(t, err)
	require.NoError(t, r.Register("cat", def))

	got, err := r.ImportSync(context.Background(), "cat")
	require.NoError(t, err)
	assert.Equal(t, "Cat:Bugsy", got)
}
