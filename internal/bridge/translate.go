package bridge

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"httpbridge/internal/message"
)

// translateRequest converts the host request into a request message,
// partitioning inbound headers into the message and content collections and
// wrapping the body as streaming content. Value order within each header key
// is preserved.
func translateRequest(c echo.Context) *message.Request {
	hr := c.Request()
	req := message.NewRequest(hr.Method, hr.URL)

	contentHeader := make(http.Header)
	for name, vals := range hr.Header {
		dst := req.Header
		if message.IsContentHeader(name) {
			dst = contentHeader
		}
		dst[http.CanonicalHeaderKey(name)] = append([]string(nil), vals...)
	}
	if hr.Host != "" {
		req.Header.Set("Host", hr.Host)
	}

	// A request carries content when it has a body or any body-describing
	// headers. hr.ContentLength is -1 for chunked uploads.
	if hr.ContentLength > 0 || hr.ContentLength == -1 || len(contentHeader) > 0 {
		content := message.NewReaderContent(hr.Body, hr.ContentLength, "")
		content.Header = contentHeader
		req.Content = content
	}

	req.SetProperty(message.PropRequestID, c.Response().Header().Get(echo.HeaderXRequestID))
	req.SetProperty(message.PropRemoteAddr, c.RealIP())

	if p, ok := message.PrincipalFromContext(hr.Context()); ok {
		req.Principal = p
	}

	return req
}

// copyResponseHeaders merges the message and content header collections onto
// the host response. Content-Length is owned by the framing resolution and
// set from the resolved length only; a handler-set value on either collection
// is never copied.
func copyResponseHeaders(dst http.Header, resp *message.Response, length int64, known bool) {
	for name, vals := range resp.Header {
		if http.CanonicalHeaderKey(name) == "Content-Length" {
			continue
		}
		for _, v := range vals {
			dst.Add(name, v)
		}
	}
	if resp.Content != nil {
		for name, vals := range resp.Content.Header {
			if http.CanonicalHeaderKey(name) == "Content-Length" {
				continue
			}
			for _, v := range vals {
				dst.Add(name, v)
			}
		}
	}
	if known {
		dst.Set("Content-Length", strconv.FormatInt(length, 10))
	}
}
