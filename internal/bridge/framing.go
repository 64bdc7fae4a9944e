package bridge

import (
	"net/http"
	"strings"

	"httpbridge/internal/message"
)

// resolveFraming decides the outgoing framing for resp and repairs its
// headers accordingly. It must run before any header is copied to the host,
// because resolving a lazily computed length can fail and headers must be
// complete before the copy.
//
// Returns the body length and whether it is known. Unknown length defers
// framing to the host, which emits its own Transfer-Encoding.
func resolveFraming(resp *message.Response, strict bool) (length int64, known bool, err error) {
	if resp.Content == nil {
		// No content: Content-Length 0, no body, no transfer coding.
		resp.Header.Del("Transfer-Encoding")
		return 0, true, nil
	}

	if resp.TransferEncodingChunked() {
		// Chunked and Content-Length are mutually exclusive. The host frames
		// the connection itself, so the chunked token is dropped rather than
		// passed through where it would desynchronize framing; any other
		// transfer-coding extension tokens are preserved.
		if strict {
			return 0, false, ErrChunkedTransfer
		}
		resp.Header.Del("Content-Length")
		resp.Content.Header.Del("Content-Length")
		stripChunkedToken(resp.Header)
		return 0, false, nil
	}

	return resp.Content.Length()
}

// stripChunkedToken removes "chunked" from the Transfer-Encoding token list,
// deleting the header when chunked was the only token.
func stripChunkedToken(h http.Header) {
	var kept []string
	for _, v := range h.Values("Transfer-Encoding") {
		for _, tok := range strings.Split(v, ",") {
			tok = strings.TrimSpace(tok)
			if tok == "" || strings.EqualFold(tok, "chunked") {
				continue
			}
			kept = append(kept, tok)
		}
	}
	if len(kept) == 0 {
		h.Del("Transfer-Encoding")
		return
	}
	h["Transfer-Encoding"] = []string{strings.Join(kept, ", ")}
}
