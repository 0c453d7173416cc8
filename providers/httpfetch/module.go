// Package httpfetch provides a module whose value is a JSON document fetched
// over HTTP when the module is first imported. It is the canonical deferred
// provider: the network round trip happens inside the definition, so the cost
// is paid on first demand and never again.
package httpfetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"time"

	"github.com/vk/lazymod/internal/ctxlog"
	"github.com/vk/lazymod/internal/registry"
)

// Plugin implements the registry.Plugin interface for this package.
type Plugin struct{}

// httpClient is shared by every httpfetch definition to reuse TCP connections
// across module loads.
var httpClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	},
}

// Input defines the arguments for an httpfetch module.
type Input struct {
	URL     string `lmod:"url"`
	Method  string `lmod:"method,optional"`
	Timeout string `lmod:"timeout,optional"`
}

// buildFetch validates the manifest arguments up front, so a malformed
// timeout fails at startup rather than on first import, and returns a
// definition that performs the fetch.
func buildFetch(ctx context.Context, input any) (registry.Definition, error) {
	in := input.(*Input)

	method := in.Method
	if method == "" {
		method = http.MethodGet
	}

	timeout := 10 * time.Second
	if in.Timeout != "" {
		parsed, err := time.ParseDuration(in.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout %q: %w", in.Timeout, err)
		}
		timeout = parsed
	}

	return func(ctx context.Context) (any, error) {
		logger := ctxlog.FromContext(ctx).With("provider", "httpfetch", "method", method, "url", in.URL)
		logger.Debug("Fetching module payload")

		opCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		req, err := http.NewRequestWithContext(opCtx, method, in.URL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch module payload: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("unexpected status %s fetching module payload", resp.Status)
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read module payload: %w", err)
		}

		var payload any
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, fmt.Errorf("failed to decode module payload: %w", err)
		}

		logger.Debug("Module payload fetched", "status", resp.Status, "bytes", len(body))
		return payload, nil
	}, nil
}

// Register registers the provider with the registry.
func (p *Plugin) Register(r *registry.Registry) {
	r.RegisterProvider("httpfetch", &registry.RegisteredProvider{
		NewInput:  func() any { return new(Input) },
		InputType: reflect.TypeOf(Input{}),
		Build:     buildFetch,
	})
}
