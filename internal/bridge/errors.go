package bridge

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"httpbridge/internal/message"
)

// Phase identifies where in the adaptation pipeline a failure was captured.
type Phase string

// Capture points, in pipeline order.
const (
	PhaseBuffering     Phase = "buffering"
	PhaseContentLength Phase = "content_length"
	PhaseStreaming     Phase = "streaming"
)

// ErrChunkedTransfer is returned in strict mode when a response explicitly
// marked chunked would have its transfer-encoding token silently dropped
// because the host supplies its own framing.
var ErrChunkedTransfer = errors.New("bridge: response requested chunked transfer-encoding the host cannot emit verbatim")

// errNoResponse reports the legacy handler contract violation of returning
// neither a response nor an error.
var errNoResponse = errors.New("bridge: handler returned no response")

// ExceptionContext carries a captured failure to loggers and handlers.
// Response is the response being adapted when the failure occurred, or nil.
type ExceptionContext struct {
	Err      error
	Phase    Phase
	Request  *message.Request
	Response *message.Response
}

// ExceptionLogger records adaptation failures for diagnostics. Implementations
// run synchronously; the pipeline does not proceed until they return.
type ExceptionLogger interface {
	LogException(ctx context.Context, ec ExceptionContext)
}

// ExceptionHandler optionally converts a failure into a substitute response.
// Returning (nil, nil) means no recovery is available and the original error
// propagates.
type ExceptionHandler interface {
	HandleException(ctx context.Context, ec ExceptionContext) (*message.Response, error)
}

// SlogExceptionLogger logs adaptation failures through slog.
type SlogExceptionLogger struct {
	logger *slog.Logger
}

// NewSlogExceptionLogger creates a SlogExceptionLogger.
func NewSlogExceptionLogger(logger *slog.Logger) *SlogExceptionLogger {
	return &SlogExceptionLogger{logger: logger.With("component", "bridge")}
}

// LogException implements ExceptionLogger.
func (l *SlogExceptionLogger) LogException(_ context.Context, ec ExceptionContext) {
	attrs := []any{
		"phase", string(ec.Phase),
		"err", ec.Err,
	}
	if ec.Request != nil {
		attrs = append(attrs, "method", ec.Request.Method, "path", ec.Request.URL.Path)
	}
	if ec.Response != nil {
		attrs = append(attrs, "status", ec.Response.StatusCode)
	}
	l.logger.Error("adaptation failure", attrs...)
}

// JSONErrorHandler recovers from pre-header failures with a 500 response
// whose JSON body carries the failure message.
type JSONErrorHandler struct{}

// HandleException implements ExceptionHandler.
func (JSONErrorHandler) HandleException(_ context.Context, ec ExceptionContext) (*message.Response, error) {
	resp := message.NewResponse(http.StatusInternalServerError)
	resp.Content = message.NewJSONContent(map[string]string{
		"message": ec.Err.Error(),
	})
	resp.Request = ec.Request
	return resp, nil
}

// isCancellation reports whether err (or the exchange context) signals that
// the client went away. Cancellation is an outcome, not an application error:
// it bypasses logging and recovery entirely.
func isCancellation(ctx context.Context, err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	return ctx.Err() != nil
}
