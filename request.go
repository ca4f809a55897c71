package dashdoc

import (
	"bufio"
	"io"
	"regexp"
	"strings"
)

// requestLineRe matches a GET request line with an HTTP/1.x version.
var requestLineRe = regexp.MustCompile(`^GET (\S+) HTTP/1\.\d+$`)

// Request is the part of an HTTP request the responder interprets.
type Request struct {
	Method string
	Target string
}

// ReadRequest reads lines from r until it finds a GET request line or
// reaches the empty line that ends the request head. Headers are consumed
// but ignored. Any other method, a malformed request line, an over-long
// line or a stream that ends early all produce a Request with an empty
// Target; ReadRequest never fails.
func ReadRequest(r io.Reader) Request {
	var req Request

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			break
		}
		if req.Method != "" {
			continue
		}
		if m := requestLineRe.FindStringSubmatch(line); m != nil {
			req.Method = "GET"
			req.Target = m[1]
		}
	}

	return req
}
