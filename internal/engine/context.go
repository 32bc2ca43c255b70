package engine

import (
	"context"

	"github.com/stormcast-dev/stormcast/internal/transport"
)

type contextKey int

const (
	httpClientKey contextKey = iota
	wsClientKey
)

// WithHTTPClient attaches the HTTP transport adapter the HTTP action should
// use. cmd/stormcast wires this from the descriptor's target before calling
// Environment.Run; the engine never constructs a transport.Client itself.
func WithHTTPClient(ctx context.Context, c transport.HTTPClient) context.Context {
	return context.WithValue(ctx, httpClientKey, c)
}

func httpClientFrom(ctx context.Context) (transport.HTTPClient, bool) {
	c, ok := ctx.Value(httpClientKey).(transport.HTTPClient)
	return c, ok
}

// WithWSClient attaches the WebSocket transport adapter the WebSocket
// actions should use.
func WithWSClient(ctx context.Context, c transport.WSClient) context.Context {
	return context.WithValue(ctx, wsClientKey, c)
}

func wsClientFrom(ctx context.Context) (transport.WSClient, bool) {
	c, ok := ctx.Value(wsClientKey).(transport.WSClient)
	return c, ok
}
