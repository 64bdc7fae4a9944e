package message

import (
	"net/http"
	"net/url"
)

// Well-known property bag keys.
const (
	// PropRequestID carries the host's request correlation ID.
	PropRequestID = "httpbridge.requestID"
	// PropRemoteAddr carries the client address as seen by the host.
	PropRemoteAddr = "httpbridge.remoteAddr"
)

// Request is the mutable legacy-side representation of one inbound exchange.
// Header holds message headers only; body-describing headers live on Content.
// A Request is owned by the adapter for the duration of one exchange and must
// be closed on every exit path.
type Request struct {
	Method     string
	URL        *url.URL
	Header     http.Header
	Content    *Content
	Properties map[string]any
	Principal  *Principal
}

// NewRequest returns a Request with empty header and property collections.
func NewRequest(method string, u *url.URL) *Request {
	return &Request{
		Method:     method,
		URL:        u,
		Header:     make(http.Header),
		Properties: make(map[string]any),
	}
}

// SetProperty stashes host-specific context for later pipeline steps.
func (r *Request) SetProperty(key string, v any) {
	r.Properties[key] = v
}

// Property returns a previously stashed value.
func (r *Request) Property(key string) (any, bool) {
	v, ok := r.Properties[key]
	return v, ok
}

// Close releases the request body. Safe to call more than once and on a nil
// receiver.
func (r *Request) Close() error {
	if r == nil || r.Content == nil {
		return nil
	}
	return r.Content.Close()
}
