// Package bridge adapts a legacy message-model HTTP pipeline into an Echo
// host: it translates each inbound exchange into a request message, invokes
// the configured handler, and translates the response message back onto the
// host connection, preserving status, headers, framing and cancellation.
package bridge

import (
	"context"
	"errors"
	"net/http"

	"httpbridge/internal/message"
)

// Invoker is the legacy invocation target: it consumes a request message and
// produces a response message. A successful invocation never returns a nil
// response. The context carries the exchange's cancellation signal and, when
// present, the authenticated principal.
type Invoker interface {
	Invoke(ctx context.Context, req *message.Request) (*message.Response, error)
}

// InvokerFunc adapts a function to the Invoker interface.
type InvokerFunc func(ctx context.Context, req *message.Request) (*message.Response, error)

// Invoke implements Invoker.
func (f InvokerFunc) Invoke(ctx context.Context, req *message.Request) (*message.Response, error) {
	return f(ctx, req)
}

// BufferPolicy decides per exchange whether bodies are fully materialized
// before processing or streamed incrementally.
type BufferPolicy interface {
	BufferRequest(r *http.Request) bool
	BufferResponse(r *http.Request) bool
}

// StaticPolicy is a BufferPolicy with fixed answers.
type StaticPolicy struct {
	Requests  bool
	Responses bool
}

// BufferRequest implements BufferPolicy.
func (p StaticPolicy) BufferRequest(*http.Request) bool { return p.Requests }

// BufferResponse implements BufferPolicy.
func (p StaticPolicy) BufferResponse(*http.Request) bool { return p.Responses }

// Options configures a Bridge. The bundle is built once at startup and shared
// read-only across all concurrent exchanges.
type Options struct {
	// Invoker is the legacy invocation target. Required.
	Invoker Invoker

	// Policy decides request/response buffering. Defaults to buffering
	// responses and streaming requests.
	Policy BufferPolicy

	// ExceptionLogger records adaptation failures. Defaults to a slog-backed
	// logger.
	ExceptionLogger ExceptionLogger

	// ExceptionHandler optionally produces substitute responses for
	// pre-header failures. Nil means no recovery.
	ExceptionHandler ExceptionHandler

	// StrictTransferEncoding surfaces ErrChunkedTransfer instead of silently
	// dropping a chunked token the host cannot emit verbatim.
	StrictTransferEncoding bool
}

func (o *Options) validate() error {
	if o.Invoker == nil {
		return errors.New("bridge: Options.Invoker is required")
	}
	return nil
}
