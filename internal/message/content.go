package message

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// lengthUnknown marks content whose size cannot be determined without
// materializing the body.
const lengthUnknown = -1

// Content is a message body plus its content headers. The body may be held as
// bytes, read incrementally from a stream, or produced lazily on first use
// (modeling deferred serialization, which can fail).
type Content struct {
	Header http.Header

	buf      []byte
	buffered bool
	body     io.ReadCloser
	length   int64
	produce  func() ([]byte, error)
	closed   bool
}

// NewBytesContent returns content backed by an in-memory byte slice.
// mediaType may be empty.
func NewBytesContent(b []byte, mediaType string) *Content {
	c := &Content{
		Header:   make(http.Header),
		buf:      b,
		buffered: true,
		length:   int64(len(b)),
	}
	if mediaType != "" {
		c.Header.Set("Content-Type", mediaType)
	}
	return c
}

// NewReaderContent returns content that streams from rc. length is the body
// size in bytes, or -1 when unknown.
func NewReaderContent(rc io.ReadCloser, length int64, mediaType string) *Content {
	c := &Content{
		Header: make(http.Header),
		body:   rc,
		length: length,
	}
	if length < 0 {
		c.length = lengthUnknown
	}
	if mediaType != "" {
		c.Header.Set("Content-Type", mediaType)
	}
	return c
}

// NewLazyContent returns content whose bytes are produced on first use.
// produce is called at most once; its error surfaces from Length, Buffer or
// Body, whichever runs first.
func NewLazyContent(produce func() ([]byte, error), mediaType string) *Content {
	c := &Content{
		Header:  make(http.Header),
		length:  lengthUnknown,
		produce: produce,
	}
	if mediaType != "" {
		c.Header.Set("Content-Type", mediaType)
	}
	return c
}

// NewJSONContent returns lazy content that serializes v as JSON.
func NewJSONContent(v any) *Content {
	return NewLazyContent(func() ([]byte, error) {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("serialize body: %w", err)
		}
		return b, nil
	}, "application/json")
}

// Length returns the body size in bytes. known is false when the size cannot
// be determined without consuming the stream. Lazy content is materialized to
// answer, so the producer's error surfaces here.
func (c *Content) Length() (n int64, known bool, err error) {
	if c.produce != nil && !c.buffered {
		if err := c.materialize(); err != nil {
			return 0, false, err
		}
	}
	if c.length == lengthUnknown {
		return 0, false, nil
	}
	return c.length, true, nil
}

// Buffer fully materializes the body in memory. It is idempotent; after a
// successful call Length is known and Body re-reads from the buffer.
func (c *Content) Buffer() error {
	if c.buffered {
		return nil
	}
	if c.produce != nil {
		return c.materialize()
	}
	b, err := io.ReadAll(c.body)
	closeErr := c.body.Close()
	c.body = nil
	if err != nil {
		return fmt.Errorf("buffer body: %w", err)
	}
	if closeErr != nil {
		return fmt.Errorf("buffer body: %w", closeErr)
	}
	c.buf = b
	c.buffered = true
	c.length = int64(len(b))
	return nil
}

func (c *Content) materialize() error {
	b, err := c.produce()
	if err != nil {
		return err
	}
	c.buf = b
	c.buffered = true
	c.length = int64(len(b))
	return nil
}

// Body returns a reader over the content bytes. Buffered content re-reads
// from memory; lazy content is materialized first, so the producer's error
// can surface here.
func (c *Content) Body() (io.Reader, error) {
	if c.produce != nil && !c.buffered {
		if err := c.materialize(); err != nil {
			return nil, err
		}
	}
	if c.buffered {
		return bytes.NewReader(c.buf), nil
	}
	return c.body, nil
}

// Bytes returns the buffered body, or nil when the content has not been
// materialized.
func (c *Content) Bytes() []byte {
	if !c.buffered {
		return nil
	}
	return c.buf
}

// Close releases the underlying stream. Safe to call more than once.
func (c *Content) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	if c.body != nil {
		err := c.body.Close()
		c.body = nil
		return err
	}
	return nil
}
