package httpfetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/lazymod/internal/registry"
)

func TestRegister(t *testing.T) {
	r := registry.New()
	(&Plugin{}).Register(r)

	provider, ok := r.Provider("httpfetch")
	require.True(t, ok)
	assert.False(t, provider.SyncSafe, "fetching is deferred work")
}

func TestBuildFetch(t *testing.T) {
	t.Run("fetches and decodes a JSON payload", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"Dog": "woof", "Wolf": "howl"}`))
		}))
		defer server.Close()

		def, err := buildFetch(context.Background(), &Input{URL: server.URL})
		require.NoError(t, err)

		value, err := def(context.Background())
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"Dog": "woof", "Wolf": "howl"}, value)
	})

	t.Run("build does not fetch", func(t *testing.T) {
		var hits atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
		}))
		defer server.Close()

		_, err := buildFetch(context.Background(), &Input{URL: server.URL})
		require.NoError(t, err)
		assert.Equal(t, int32(0), hits.Load(), "the round trip belongs to resolution, not registration")
	})

	t.Run("non-2xx status fails", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "gone fishing", http.StatusInternalServerError)
		}))
		defer server.Close()

		def, err := buildFetch(context.Background(), &Input{URL: server.URL})
		require.NoError(t, err)

		_, err = def(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected status")
	})

	t.Run("non-JSON payload fails", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>not json</html>"))
		}))
		defer server.Close()

		def, err := buildFetch(context.Background(), &Input{URL: server.URL})
		require.NoError(t, err)

		_, err = def(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode")
	})

	t.Run("invalid timeout fails at build time", func(t *testing.T) {
		_, err := buildFetch(context.Background(), &Input{URL: "http://example.com", Timeout: "soon"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid timeout")
	})

	t.Run("custom method is honored", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			_, _ = w.Write([]byte(`"ok"`))
		}))
		defer server.Close()

		def, err := buildFetch(context.Background(), &Input{URL: server.URL, Method: http.MethodPost})
		require.NoError(t, err)

		value, err := def(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "ok", value)
	})
}

func TestFetchModule_CachedAfterFirstImport(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"Dog": "woof"}`))
	}))
	defer server.Close()

	r := registry.New()
	def, err := buildFetch(context.Background(), &Input{URL: server.URL})
	require.NoError(t, err)
	require.NoError(t, r.Register("zoo", def))

	first, err := r.ImportAsync(context.Background(), "zoo").Await(context.Background())
	require.NoError(t, err)
	second, err := r.ImportAsync(context.Background(), "zoo").Await(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), hits.Load(), "a resolved module never refetches")
}
