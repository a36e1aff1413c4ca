// Package kit holds the small transport-agnostic plumbing shared by the
// service surfaces: the Endpoint abstraction, middleware chaining, request
// context accessors, and the MCP tool adapter.
package kit

import "context"

// Endpoint is one operation: typed request in, typed response out. HTTP
// handlers and MCP tools both terminate in an Endpoint.
type Endpoint func(ctx context.Context, req any) (any, error)

// Middleware wraps an Endpoint.
type Middleware func(Endpoint) Endpoint

// Chain composes middlewares outermost-first: Chain(a, b, c) runs a, then b,
// then c, then the endpoint.
func Chain(mws ...Middleware) Middleware {
	return func(next Endpoint) Endpoint {
		for i := len(mws) - 1; i >= 0; i-- {
			next = mws[i](next)
		}
		return next
	}
}
