package bridge

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"httpbridge/internal/message"
)

func newEchoContext(req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestTranslateRequest_HeaderPartition(t *testing.T) {
	hr := httptest.NewRequest(http.MethodPost, "http://example.test/echo", strings.NewReader("body"))
	hr.Header.Set("Accept", "application/json")
	hr.Header.Set("Authorization", "Bearer tok")
	hr.Header["Accept-Language"] = []string{"en", "de"}
	hr.Header.Set("Content-Type", "application/json")
	hr.Header.Set("Content-Language", "en")
	c, _ := newEchoContext(hr)

	req := translateRequest(c)
	defer func() { _ = req.Close() }()

	if req.Method != http.MethodPost {
		t.Errorf("Method = %q, want POST", req.Method)
	}
	if got := req.Header.Get("Accept"); got != "application/json" {
		t.Errorf("message header Accept = %q, want application/json", got)
	}
	if got := req.Header.Get("Authorization"); got != "Bearer tok" {
		t.Errorf("message header Authorization = %q", got)
	}
	if !reflect.DeepEqual(req.Header.Values("Accept-Language"), []string{"en", "de"}) {
		t.Errorf("Accept-Language values = %v, want order preserved", req.Header.Values("Accept-Language"))
	}
	if got := req.Header.Get("Host"); got != "example.test" {
		t.Errorf("Host = %q, want example.test", got)
	}

	if req.Content == nil {
		t.Fatal("Content = nil, want request body content")
	}
	if got := req.Content.Header.Get("Content-Type"); got != "application/json" {
		t.Errorf("content header Content-Type = %q", got)
	}
	if got := req.Content.Header.Get("Content-Language"); got != "en" {
		t.Errorf("content header Content-Language = %q", got)
	}
	// Content headers must not leak into the message collection.
	if req.Header.Get("Content-Type") != "" {
		t.Error("Content-Type leaked into message headers")
	}
}

func TestTranslateRequest_NoBody(t *testing.T) {
	hr := httptest.NewRequest(http.MethodGet, "http://example.test/hello", http.NoBody)
	hr.Header.Set("Accept", "*/*")
	c, _ := newEchoContext(hr)

	req := translateRequest(c)
	defer func() { _ = req.Close() }()

	if req.Content != nil {
		t.Error("Content != nil for a bodyless GET")
	}
}

func TestTranslateRequest_Properties(t *testing.T) {
	hr := httptest.NewRequest(http.MethodGet, "http://example.test/hello", http.NoBody)
	c, _ := newEchoContext(hr)
	c.Response().Header().Set(echo.HeaderXRequestID, "req-42")

	req := translateRequest(c)
	defer func() { _ = req.Close() }()

	if id, _ := req.Property(message.PropRequestID); id != "req-42" {
		t.Errorf("request ID property = %v, want req-42", id)
	}
	if _, ok := req.Property(message.PropRemoteAddr); !ok {
		t.Error("remote address property missing")
	}
}

func TestTranslateRequest_Principal(t *testing.T) {
	hr := httptest.NewRequest(http.MethodGet, "http://example.test/hello", http.NoBody)
	p := &message.Principal{Name: "alice"}
	hr = hr.WithContext(message.WithPrincipal(hr.Context(), p))
	c, _ := newEchoContext(hr)

	req := translateRequest(c)
	defer func() { _ = req.Close() }()

	if req.Principal != p {
		t.Errorf("Principal = %v, want the context principal", req.Principal)
	}
}

func TestCopyResponseHeaders_RoundTrip(t *testing.T) {
	resp := message.NewResponse(http.StatusOK)
	resp.Header.Set("X-Custom", "a")
	resp.Header["X-Multi"] = []string{"1", "2"}
	resp.Content = message.NewBytesContent([]byte("hi"), "text/plain")
	resp.Content.Header.Set("Content-Language", "en")
	// A stale Content-Length on the content collection must not win over the
	// resolved framing.
	resp.Content.Header.Set("Content-Length", "999")

	dst := make(http.Header)
	copyResponseHeaders(dst, resp, 2, true)

	if got := dst.Get("X-Custom"); got != "a" {
		t.Errorf("X-Custom = %q", got)
	}
	if !reflect.DeepEqual(dst.Values("X-Multi"), []string{"1", "2"}) {
		t.Errorf("X-Multi = %v, want order preserved", dst.Values("X-Multi"))
	}
	if got := dst.Get("Content-Type"); got != "text/plain" {
		t.Errorf("Content-Type = %q", got)
	}
	if got := dst.Get("Content-Language"); got != "en" {
		t.Errorf("Content-Language = %q", got)
	}
	if got := dst.Get("Content-Length"); got != "2" {
		t.Errorf("Content-Length = %q, want 2", got)
	}
}

func TestCopyResponseHeaders_UnknownLength(t *testing.T) {
	resp := message.NewResponse(http.StatusOK)
	resp.Content = message.NewBytesContent([]byte("hi"), "")

	dst := make(http.Header)
	copyResponseHeaders(dst, resp, 0, false)

	if got := dst.Get("Content-Length"); got != "" {
		t.Errorf("Content-Length = %q, want unset for unknown length", got)
	}
}
