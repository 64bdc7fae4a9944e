package message

import (
	"context"
	"net/url"
	"testing"
)

func TestIsContentHeader(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"Content-Type", true},
		{"content-length", true},
		{"CONTENT-ENCODING", true},
		{"Last-Modified", true},
		{"Expires", true},
		{"Allow", true},
		{"Accept", false},
		{"Authorization", false},
		{"Transfer-Encoding", false},
		{"X-Request-Id", false},
		{"Connection", false},
	}

	for _, tt := range tests {
		if got := IsContentHeader(tt.name); got != tt.want {
			t.Errorf("IsContentHeader(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestRequest_Properties(t *testing.T) {
	u, _ := url.Parse("http://example.test/hello")
	req := NewRequest("GET", u)

	req.SetProperty(PropRequestID, "abc-123")

	v, ok := req.Property(PropRequestID)
	if !ok || v != "abc-123" {
		t.Errorf("Property(%q) = (%v, %v), want (abc-123, true)", PropRequestID, v, ok)
	}
	if _, ok := req.Property("missing"); ok {
		t.Error("Property(missing) ok = true, want false")
	}
}

func TestRequest_Close_NilContent(t *testing.T) {
	u, _ := url.Parse("http://example.test/")
	req := NewRequest("GET", u)

	if err := req.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}

	var nilReq *Request
	if err := nilReq.Close(); err != nil {
		t.Errorf("nil Close() error = %v", err)
	}
}

func TestResponse_NoRouteMatched(t *testing.T) {
	resp := NewResponse(404)

	if resp.NoRouteMatched() {
		t.Error("NoRouteMatched() = true before marking")
	}
	resp.MarkNoRouteMatched()
	if !resp.NoRouteMatched() {
		t.Error("NoRouteMatched() = false after marking")
	}
	if resp.ReasonPhrase != "Not Found" {
		t.Errorf("ReasonPhrase = %q, want %q", resp.ReasonPhrase, "Not Found")
	}
}

func TestResponse_TransferEncodingChunked(t *testing.T) {
	resp := NewResponse(200)
	if resp.TransferEncodingChunked() {
		t.Error("TransferEncodingChunked() = true with no header")
	}

	resp.Header.Set("Transfer-Encoding", "gzip, Chunked")
	if !resp.TransferEncodingChunked() {
		t.Error("TransferEncodingChunked() = false, want true for mixed token list")
	}
}

func TestPrincipal_ContextRoundTrip(t *testing.T) {
	p := &Principal{Name: "alice", Roles: []string{"admin"}}
	ctx := WithPrincipal(context.Background(), p)

	got, ok := PrincipalFromContext(ctx)
	if !ok || got != p {
		t.Errorf("PrincipalFromContext = (%v, %v), want original principal", got, ok)
	}

	if _, ok := PrincipalFromContext(context.Background()); ok {
		t.Error("PrincipalFromContext on empty context ok = true, want false")
	}
}
