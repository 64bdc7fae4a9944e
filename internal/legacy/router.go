// Package legacy implements a minimal message-model dispatcher: a route table
// of handlers that consume and produce message.Request/Response pairs. It is
// the in-process invocation target the bridge adapts into the host pipeline.
package legacy

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"httpbridge/internal/message"
)

// HandlerFunc is a legacy-style handler: it receives the request message and
// the exchange context and returns a response message. A nil response with a
// nil error is a contract violation the bridge surfaces as an internal error.
type HandlerFunc func(ctx context.Context, req *message.Request) (*message.Response, error)

type routeKey struct {
	method string
	path   string
}

// Router dispatches request messages to registered handlers. Registration
// happens at startup; Invoke is safe for concurrent use afterwards.
type Router struct {
	routes map[routeKey]HandlerFunc
	logger *slog.Logger
}

// NewRouter creates an empty Router.
func NewRouter(logger *slog.Logger) *Router {
	return &Router{
		routes: make(map[routeKey]HandlerFunc),
		logger: logger.With("component", "legacy_router"),
	}
}

// Handle registers h for the given method and path. Paths are matched
// exactly, ignoring a trailing slash.
func (r *Router) Handle(method, path string, h HandlerFunc) {
	r.routes[routeKey{method: strings.ToUpper(method), path: normalize(path)}] = h
}

// Invoke dispatches req to the matching handler. When no route matches it
// returns a 404 response tagged as soft not-found so the bridge can defer to
// later host pipeline stages instead of answering.
func (r *Router) Invoke(ctx context.Context, req *message.Request) (*message.Response, error) {
	key := routeKey{method: strings.ToUpper(req.Method), path: normalize(req.URL.Path)}

	h, ok := r.routes[key]
	if !ok {
		r.logger.Debug("no route matched",
			"method", req.Method,
			"path", req.URL.Path,
		)
		resp := message.NewResponse(http.StatusNotFound)
		resp.MarkNoRouteMatched()
		resp.Request = req
		return resp, nil
	}

	resp, err := h(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp != nil && resp.Request == nil {
		resp.Request = req
	}
	return resp, nil
}

func normalize(path string) string {
	if path == "" {
		return "/"
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}
