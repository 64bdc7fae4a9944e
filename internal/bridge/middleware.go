package bridge

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"httpbridge/internal/message"
	"httpbridge/internal/metrics"
)

// Bridge is the per-exchange pipeline adapter. It is safe for concurrent use:
// all mutable state is exchange-local, and the Options bundle is read-only.
type Bridge struct {
	opts    Options
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New creates a Bridge. The metrics parameter is optional; pass nil to
// disable exchange metrics recording.
func New(opts Options, logger *slog.Logger, m *metrics.Metrics) (*Bridge, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if opts.Policy == nil {
		opts.Policy = StaticPolicy{Responses: true}
	}
	if opts.ExceptionLogger == nil {
		opts.ExceptionLogger = NewSlogExceptionLogger(logger)
	}
	return &Bridge{
		opts:    opts,
		logger:  logger.With("component", "bridge"),
		metrics: m,
	}, nil
}

// Middleware returns the Echo middleware stage for the bridge. The stage
// terminates the exchange itself except in the soft not-found case, where it
// calls the next stage exactly once and writes nothing.
func (b *Bridge) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			return b.handle(c, next)
		}
	}
}

func (b *Bridge) handle(c echo.Context, next echo.HandlerFunc) error {
	if b.metrics != nil {
		b.metrics.ExchangesInFlight.Inc()
		defer b.metrics.ExchangesInFlight.Dec()
	}
	start := time.Now()
	outcome := metrics.OutcomeError
	defer func() {
		b.observe(c.Request().Method, outcome, start)
	}()

	hr := c.Request()
	ctx := hr.Context()

	req := translateRequest(c)
	defer func() { _ = req.Close() }()

	if req.Content != nil && b.opts.Policy.BufferRequest(hr) {
		if err := req.Content.Buffer(); err != nil {
			if isCancellation(ctx, err) {
				return err
			}
			b.logException(ctx, ExceptionContext{Err: err, Phase: PhaseBuffering, Request: req})
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to buffer request body").SetInternal(err)
		}
	}

	if req.Principal != nil {
		ctx = message.WithPrincipal(ctx, req.Principal)
	}

	resp, err := b.opts.Invoker.Invoke(ctx, req)
	if err != nil {
		return err
	}
	if resp == nil {
		// Contract violation: surfaced, never retried.
		return echo.NewHTTPError(http.StatusInternalServerError, errNoResponse.Error()).SetInternal(errNoResponse)
	}
	defer func() { _ = resp.Close() }()

	if resp.StatusCode == http.StatusNotFound && resp.NoRouteMatched() {
		// Soft not-found: nothing was written; later stages may still serve
		// the request.
		_ = resp.Close()
		outcome = metrics.OutcomePassthrough
		return next(c)
	}

	final, err := b.prepareResponse(ctx, hr, resp)
	if err != nil {
		return err
	}
	defer func() { _ = final.Close() }()

	if err := b.send(ctx, c, final); err != nil {
		return err
	}
	outcome = metrics.OutcomeHandled
	return nil
}

// prepareResponse applies the response buffering policy. On a buffering
// failure it logs, asks the exception handler for a substitute response and
// buffers that too; a second failure degrades to an empty internal error. With
// no substitute available the original error propagates and the exchange is
// fatal.
func (b *Bridge) prepareResponse(ctx context.Context, hr *http.Request, resp *message.Response) (*message.Response, error) {
	if resp.Content == nil || !b.opts.Policy.BufferResponse(hr) {
		return resp, nil
	}

	err := resp.Content.Buffer()
	if err == nil {
		return resp, nil
	}
	if isCancellation(ctx, err) {
		return nil, err
	}

	ec := ExceptionContext{Err: err, Phase: PhaseBuffering, Request: resp.Request, Response: resp}
	b.logException(ctx, ec)

	if b.opts.ExceptionHandler == nil {
		return nil, err
	}
	sub, herr := b.opts.ExceptionHandler.HandleException(ctx, ec)
	if herr != nil {
		return nil, herr
	}
	if sub == nil {
		return nil, err
	}

	if sub.Request == nil {
		sub.Request = resp.Request
	}
	_ = resp.Close()

	if sub.Content != nil {
		if err2 := sub.Content.Buffer(); err2 != nil {
			if isCancellation(ctx, err2) {
				_ = sub.Close()
				return nil, err2
			}
			b.logException(ctx, ExceptionContext{Err: err2, Phase: PhaseBuffering, Request: sub.Request, Response: sub})
			_ = sub.Close()
			empty := message.NewResponse(http.StatusInternalServerError)
			empty.Request = resp.Request
			return empty, nil
		}
	}
	return sub, nil
}

// send resolves framing, writes status and headers, then copies the body.
// Framing resolution runs strictly before the header copy, which runs
// strictly before the body copy.
func (b *Bridge) send(ctx context.Context, c echo.Context, resp *message.Response) error {
	length, known, err := resolveFraming(resp, b.opts.StrictTransferEncoding)
	if err != nil {
		if errors.Is(err, ErrChunkedTransfer) {
			// Configuration error, not an adaptation failure.
			return err
		}
		if isCancellation(ctx, err) {
			return err
		}
		// Length computation failed before headers were committed. A recovery
		// body is ruled out since the length itself is unknown: emit an empty
		// internal error.
		b.logException(ctx, ExceptionContext{Err: err, Phase: PhaseContentLength, Request: resp.Request, Response: resp})
		h := c.Response().Header()
		h.Set("Content-Length", "0")
		c.Response().WriteHeader(http.StatusInternalServerError)
		return nil
	}

	copyResponseHeaders(c.Response().Header(), resp, length, known)
	c.Response().WriteHeader(resp.StatusCode)

	if resp.Content == nil || (known && length == 0) {
		return nil
	}

	body, err := resp.Content.Body()
	if err != nil {
		// Headers are already on the wire; recovery is impossible.
		if isCancellation(ctx, err) {
			return nil
		}
		b.logException(ctx, ExceptionContext{Err: err, Phase: PhaseStreaming, Request: resp.Request, Response: resp})
		// With an unknown length the host would otherwise write a clean
		// terminating chunk and the truncation would be invisible to the
		// client. ErrAbortHandler tears the connection down; Echo's Recover
		// middleware re-panics it so the abort reaches the server.
		panic(http.ErrAbortHandler)
	}

	if _, err := io.Copy(c.Response(), body); err != nil {
		if isCancellation(ctx, err) {
			// Client went away mid-copy: abandon the exchange silently.
			return nil
		}
		b.logException(ctx, ExceptionContext{Err: err, Phase: PhaseStreaming, Request: resp.Request, Response: resp})
		panic(http.ErrAbortHandler)
	}
	return nil
}

func (b *Bridge) logException(ctx context.Context, ec ExceptionContext) {
	b.opts.ExceptionLogger.LogException(ctx, ec)
	if b.metrics != nil {
		b.metrics.AdaptationFailures.WithLabelValues(string(ec.Phase)).Inc()
	}
}

func (b *Bridge) observe(method, outcome string, start time.Time) {
	if b.metrics == nil {
		return
	}
	m := metrics.NormalizeMethod(method)
	b.metrics.ExchangesTotal.WithLabelValues(m, outcome).Inc()
	b.metrics.ExchangeDuration.WithLabelValues(m, outcome).Observe(time.Since(start).Seconds())
}
