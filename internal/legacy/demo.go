package legacy

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"httpbridge/internal/message"
)

// NewDemoRouter returns a Router with the sample handlers served by the demo
// binary: a JSON greeting, a body echo, and a handler whose response body
// fails during serialization to exercise the recovery path.
func NewDemoRouter(logger *slog.Logger) *Router {
	r := NewRouter(logger)
	r.Handle(http.MethodGet, "/hello", helloHandler)
	r.Handle(http.MethodPost, "/echo", echoHandler)
	r.Handle(http.MethodGet, "/error", errorHandler)
	return r
}

func helloHandler(_ context.Context, req *message.Request) (*message.Response, error) {
	resp := message.NewResponse(http.StatusOK)
	resp.Content = message.NewJSONContent("Hello from the bridge")
	resp.Request = req
	return resp, nil
}

func echoHandler(_ context.Context, req *message.Request) (*message.Response, error) {
	resp := message.NewResponse(http.StatusOK)
	resp.Request = req

	if req.Content == nil {
		resp.Content = message.NewBytesContent(nil, "application/json")
		return resp, nil
	}

	body, err := req.Content.Body()
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}

	mediaType := req.Content.Header.Get("Content-Type")
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}
	resp.Content = message.NewBytesContent(data, mediaType)
	return resp, nil
}

// faultyPayload fails on serialization, standing in for a body whose property
// access throws while it is being written out.
type faultyPayload struct{}

func (faultyPayload) MarshalJSON() ([]byte, error) {
	return nil, errors.New("value could not be serialized")
}

func errorHandler(_ context.Context, req *message.Request) (*message.Response, error) {
	resp := message.NewResponse(http.StatusOK)
	resp.Content = message.NewJSONContent(faultyPayload{})
	resp.Request = req
	return resp, nil
}
