// Package socketio provides a module whose value is delivered over a
// Socket.IO connection: on first import the definition connects to the given
// namespace, optionally emits a request event, and resolves with the payload
// of the first matching response event.
package socketio

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"reflect"
	"sync/atomic"
	"time"

	"github.com/vk/lazymod/internal/ctxlog"
	"github.com/vk/lazymod/internal/registry"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// Plugin implements the registry.Plugin interface for this package.
type Plugin struct{}

// Input defines the arguments for a socketio module.
type Input struct {
	URL                string         `lmod:"url"`
	Namespace          string         `lmod:"namespace,optional"`
	OnEvent            string         `lmod:"on_event"`
	EmitEvent          string         `lmod:"emit_event,optional"`
	EmitData           map[string]any `lmod:"emit_data,optional"`
	Timeout            string         `lmod:"timeout,optional"`
	InsecureSkipVerify bool           `lmod:"insecure_skip_verify,optional"`
}

// opResult is a private struct to safely pass results through the done channel.
type opResult struct {
	value any
	err   error
}

// buildSocketIO validates the manifest arguments and returns a definition
// that performs the connect/emit/await exchange when the module is imported.
func buildSocketIO(ctx context.Context, input any) (registry.Definition, error) {
	in := input.(*Input)

	timeout := 10 * time.Second
	if in.Timeout != "" {
		parsed, err := time.ParseDuration(in.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout %q: %w", in.Timeout, err)
		}
		timeout = parsed
	}

	parsedURL, err := url.Parse(in.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)

	return func(ctx context.Context) (any, error) {
		logger := ctxlog.FromContext(ctx).With("provider", "socketio", "url", in.URL, "onEvent", in.OnEvent)
		logger.Debug("Connecting for module payload")

		var isConnected atomic.Bool

		done := make(chan opResult, 1)
		opCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		opts := socket.DefaultOptions()
		opts.SetPath(parsedURL.Path)
		if in.InsecureSkipVerify {
			logger.Warn("Skipping TLS certificate verification")
			opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
		}
		opts.SetTransports(types.NewSet(transports.WebSocket))

		manager := socket.NewManager(baseURL, opts)
		io := manager.Socket(in.Namespace, opts)
		defer func() {
			logger.Debug("Disconnecting socket client")
			io.Disconnect()
		}()

		io.On(types.EventName("connect"), func(...any) {
			isConnected.Store(true)
			logger.Debug("Connected", "namespace", in.Namespace, "sid", io.Id())
			if in.EmitEvent != "" {
				logger.Debug("Emitting request event", "event", in.EmitEvent)
				io.Emit(in.EmitEvent, in.EmitData)
			}
		})

		io.On(types.EventName("connect_error"), func(errs ...any) {
			if len(errs) > 0 {
				if err, ok := errs[0].(error); ok {
					done <- opResult{err: err}
					return
				}
			}
			done <- opResult{err: fmt.Errorf("socket.io connection failed")}
		})

		io.On(types.EventName(in.OnEvent), func(data ...any) {
			var payload any
			if len(data) > 0 {
				payload = data[0]
			}
			done <- opResult{value: payload}
		})

		io.Connect()

		select {
		case <-opCtx.Done():
			if isConnected.Load() {
				return nil, fmt.Errorf("timed out after connecting while waiting for event '%s'", in.OnEvent)
			}
			return nil, fmt.Errorf("timed out while waiting for initial connection")
		case res := <-done:
			return res.value, res.err
		}
	}, nil
}

// Register registers the provider with the registry.
func (p *Plugin) Register(r *registry.Registry) {
	r.RegisterProvider("socketio", &registry.RegisteredProvider{
		NewInput:  func() any { return new(Input) },
		InputType: reflect.TypeOf(Input{}),
		Build:     buildSocketIO,
	})
}
