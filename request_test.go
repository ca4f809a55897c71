package dashdoc_test

import (
	"io"
	"strings"
	"testing"

	"github.com/fwojciec/dashdoc"
	"github.com/stretchr/testify/assert"
)

func TestReadRequest(t *testing.T) {
	t.Parallel()

	t.Run("reads target from GET request line", func(t *testing.T) {
		t.Parallel()

		req := dashdoc.ReadRequest(strings.NewReader("GET /?query=foo HTTP/1.1\r\nHost: localhost\r\n\r\n"))

		assert.Equal(t, "GET", req.Method)
		assert.Equal(t, "/?query=foo", req.Target)
	})

	t.Run("accepts bare newlines", func(t *testing.T) {
		t.Parallel()

		req := dashdoc.ReadRequest(strings.NewReader("GET /docs HTTP/1.0\n\n"))

		assert.Equal(t, "/docs", req.Target)
	})

	t.Run("accepts request line without headers or terminator", func(t *testing.T) {
		t.Parallel()

		req := dashdoc.ReadRequest(strings.NewReader("GET / HTTP/1.1"))

		assert.Equal(t, "/", req.Target)
	})

	t.Run("skips lines before the request line", func(t *testing.T) {
		t.Parallel()

		req := dashdoc.ReadRequest(strings.NewReader("garbage\r\nGET /?query=x HTTP/1.1\r\n\r\n"))

		assert.Equal(t, "/?query=x", req.Target)
	})

	t.Run("keeps first matching request line", func(t *testing.T) {
		t.Parallel()

		req := dashdoc.ReadRequest(strings.NewReader("GET /first HTTP/1.1\r\nGET /second HTTP/1.1\r\n\r\n"))

		assert.Equal(t, "/first", req.Target)
	})

	t.Run("returns empty target for other methods", func(t *testing.T) {
		t.Parallel()

		req := dashdoc.ReadRequest(strings.NewReader("POST /?query=foo HTTP/1.1\r\n\r\n"))

		assert.Empty(t, req.Method)
		assert.Empty(t, req.Target)
	})

	t.Run("returns empty target for unsupported HTTP version", func(t *testing.T) {
		t.Parallel()

		req := dashdoc.ReadRequest(strings.NewReader("GET / HTTP/2.0\r\n\r\n"))

		assert.Empty(t, req.Target)
	})

	t.Run("returns empty target for malformed line", func(t *testing.T) {
		t.Parallel()

		req := dashdoc.ReadRequest(strings.NewReader("GET\r\n\r\n"))

		assert.Empty(t, req.Target)
	})

	t.Run("returns empty target for empty input", func(t *testing.T) {
		t.Parallel()

		req := dashdoc.ReadRequest(strings.NewReader(""))

		assert.Empty(t, req.Target)
	})

	t.Run("stops at the first empty line", func(t *testing.T) {
		t.Parallel()

		r := strings.NewReader("\r\nGET /late HTTP/1.1\r\n\r\n")
		req := dashdoc.ReadRequest(r)

		assert.Empty(t, req.Target)
	})

	t.Run("does not read past the end of the request head", func(t *testing.T) {
		t.Parallel()

		pr, pw := io.Pipe()
		go func() {
			// The writer never closes: ReadRequest must return without
			// waiting for more input.
			_, _ = io.WriteString(pw, "GET /?query=x HTTP/1.1\r\nHost: a\r\n\r\n")
		}()

		req := dashdoc.ReadRequest(pr)

		assert.Equal(t, "/?query=x", req.Target)
	})

	t.Run("returns empty target for over-long line", func(t *testing.T) {
		t.Parallel()

		line := "GET /?query=" + strings.Repeat("a", 100*1024) + " HTTP/1.1\r\n\r\n"
		req := dashdoc.ReadRequest(strings.NewReader(line))

		assert.Empty(t, req.Target)
	})
}
