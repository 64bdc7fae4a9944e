package message

import (
	"net/http"
	"strings"
)

// Response is the mutable legacy-side representation of an outbound response.
// Header holds message headers only; body-describing headers live on Content.
type Response struct {
	StatusCode   int
	ReasonPhrase string
	Header       http.Header
	Content      *Content
	Request      *Request

	noRouteMatched bool
}

// NewResponse returns a Response with the given status and the standard
// reason phrase for it.
func NewResponse(status int) *Response {
	return &Response{
		StatusCode:   status,
		ReasonPhrase: http.StatusText(status),
		Header:       make(http.Header),
	}
}

// MarkNoRouteMatched tags the response as a soft not-found: the dispatcher
// found no route and later pipeline stages may still serve the request.
func (r *Response) MarkNoRouteMatched() {
	r.noRouteMatched = true
}

// NoRouteMatched reports whether the response carries the soft not-found tag.
func (r *Response) NoRouteMatched() bool {
	return r.noRouteMatched
}

// TransferEncodingChunked reports whether the message headers carry a
// "chunked" transfer-encoding token.
func (r *Response) TransferEncodingChunked() bool {
	for _, v := range r.Header.Values("Transfer-Encoding") {
		for _, tok := range strings.Split(v, ",") {
			if strings.EqualFold(strings.TrimSpace(tok), "chunked") {
				return true
			}
		}
	}
	return false
}

// Close releases the response body. Safe to call more than once and on a nil
// receiver.
func (r *Response) Close() error {
	if r == nil || r.Content == nil {
		return nil
	}
	return r.Content.Close()
}
