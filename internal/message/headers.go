// Package message defines the legacy-style HTTP message model: mutable
// request and response records with separate message (transport) and content
// (body-describing) header collections.
package message

import "net/http"

// contentHeaderNames lists the headers that belong to the content collection.
// Everything else is a message header.
var contentHeaderNames = map[string]bool{
	"Allow":               true,
	"Content-Disposition": true,
	"Content-Encoding":    true,
	"Content-Language":    true,
	"Content-Length":      true,
	"Content-Location":    true,
	"Content-Md5":         true,
	"Content-Range":       true,
	"Content-Type":        true,
	"Expires":             true,
	"Last-Modified":       true,
}

// IsContentHeader reports whether the named header describes the body rather
// than the message. Classification is by name only, so callers never need a
// try-one-collection-then-the-other fallback.
func IsContentHeader(name string) bool {
	return contentHeaderNames[http.CanonicalHeaderKey(name)]
}
