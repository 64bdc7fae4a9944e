package bridge

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"httpbridge/internal/message"
)

func TestResolveFraming_NoContent(t *testing.T) {
	resp := message.NewResponse(http.StatusNoContent)
	resp.Header.Set("Transfer-Encoding", "chunked")

	length, known, err := resolveFraming(resp, false)
	if err != nil {
		t.Fatalf("resolveFraming() error = %v", err)
	}
	if !known || length != 0 {
		t.Errorf("resolveFraming() = (%d, %v), want (0, true)", length, known)
	}
	if resp.Header.Get("Transfer-Encoding") != "" {
		t.Error("Transfer-Encoding survived on a response with no content")
	}
}

func TestResolveFraming_ChunkedSuppressesContentLength(t *testing.T) {
	resp := message.NewResponse(http.StatusOK)
	resp.Header.Set("Transfer-Encoding", "chunked")
	resp.Header.Set("Content-Length", "3")
	resp.Content = message.NewReaderContent(io.NopCloser(strings.NewReader("abc")), 3, "")
	resp.Content.Header.Set("Content-Length", "3")

	length, known, err := resolveFraming(resp, false)
	if err != nil {
		t.Fatalf("resolveFraming() error = %v", err)
	}
	if known {
		t.Errorf("resolveFraming() = (%d, %v), want unknown length", length, known)
	}
	if resp.Content.Header.Get("Content-Length") != "" {
		t.Error("Content-Length survived on the content collection of a chunked response")
	}
	if resp.Header.Get("Content-Length") != "" {
		t.Error("Content-Length survived on the message collection of a chunked response")
	}
	if resp.Header.Get("Transfer-Encoding") != "" {
		t.Error("sole chunked token was not dropped")
	}
}

func TestResolveFraming_ChunkedKeepsOtherTokens(t *testing.T) {
	resp := message.NewResponse(http.StatusOK)
	resp.Header.Set("Transfer-Encoding", "gzip, chunked")
	resp.Content = message.NewReaderContent(io.NopCloser(strings.NewReader("abc")), -1, "")

	if _, _, err := resolveFraming(resp, false); err != nil {
		t.Fatalf("resolveFraming() error = %v", err)
	}
	if got := resp.Header.Get("Transfer-Encoding"); got != "gzip" {
		t.Errorf("Transfer-Encoding = %q, want %q", got, "gzip")
	}
}

func TestResolveFraming_ChunkedStrictMode(t *testing.T) {
	resp := message.NewResponse(http.StatusOK)
	resp.Header.Set("Transfer-Encoding", "chunked")
	resp.Content = message.NewReaderContent(io.NopCloser(strings.NewReader("abc")), -1, "")

	if _, _, err := resolveFraming(resp, true); !errors.Is(err, ErrChunkedTransfer) {
		t.Errorf("resolveFraming() error = %v, want ErrChunkedTransfer", err)
	}
}

func TestResolveFraming_KnownLength(t *testing.T) {
	resp := message.NewResponse(http.StatusOK)
	resp.Content = message.NewBytesContent([]byte("hello"), "text/plain")

	length, known, err := resolveFraming(resp, false)
	if err != nil {
		t.Fatalf("resolveFraming() error = %v", err)
	}
	if !known || length != 5 {
		t.Errorf("resolveFraming() = (%d, %v), want (5, true)", length, known)
	}
}

func TestResolveFraming_LengthFailure(t *testing.T) {
	boom := errors.New("length blew up")
	resp := message.NewResponse(http.StatusOK)
	resp.Content = message.NewLazyContent(func() ([]byte, error) { return nil, boom }, "")

	if _, _, err := resolveFraming(resp, false); !errors.Is(err, boom) {
		t.Errorf("resolveFraming() error = %v, want %v", err, boom)
	}
}

func TestStripChunkedToken(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want string
	}{
		{"sole token", []string{"chunked"}, ""},
		{"mixed case", []string{"Chunked"}, ""},
		{"leading token", []string{"chunked, gzip"}, "gzip"},
		{"multiple values", []string{"gzip", "chunked"}, "gzip"},
		{"no chunked", []string{"gzip, deflate"}, "gzip, deflate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.Header{"Transfer-Encoding": tt.in}
			stripChunkedToken(h)
			if got := h.Get("Transfer-Encoding"); got != tt.want {
				t.Errorf("Transfer-Encoding = %q, want %q", got, tt.want)
			}
		})
	}
}
