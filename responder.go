package dashdoc

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
)

// ContentType is the media type of every response body.
const ContentType = "text/html"

// maxMenuSize caps the visible height of the docset list.
const maxMenuSize = 12

// Response is a rendered search page.
type Response struct {
	Status int
	Body   []byte
}

// WriteTo writes the response to w as an HTTP/1.0 message.
func (r *Response) WriteTo(w io.Writer) (int64, error) {
	head := fmt.Sprintf("HTTP/1.0 %d %s\r\nContent-Type: %s\r\n\r\n",
		r.Status, http.StatusText(r.Status), ContentType)

	n, err := io.WriteString(w, head)
	if err != nil {
		return int64(n), err
	}
	m, err := w.Write(r.Body)
	return int64(n + m), err
}

// Responder turns one request into one search page. It holds no state of
// its own, so a single Responder may serve any number of requests.
type Responder struct {
	Docsets  DocsetService
	Searcher Searcher
}

// NewResponder returns a Responder backed by the given collaborators.
func NewResponder(docsets DocsetService, searcher Searcher) *Responder {
	return &Responder{Docsets: docsets, Searcher: searcher}
}

// Respond reads one request from r and writes the search page to w.
//
// A request that cannot be understood is answered with the default page.
// If a collaborator fails, a 500 page is written and the collaborator's
// error is returned. Write errors are returned as they are.
func (s *Responder) Respond(ctx context.Context, r io.Reader, w io.Writer) error {
	req := ReadRequest(r)

	resp, err := s.Render(ctx, req.Target)
	if _, werr := resp.WriteTo(w); werr != nil {
		return fmt.Errorf("write response: %w", werr)
	}
	return err
}

// Render builds the search page for a request target such as
// "/?query=open&docsets=Python". The returned Response is never nil. When a
// collaborator fails, the Response is a 500 page and the error is returned
// alongside it.
func (s *Responder) Render(ctx context.Context, target string) (*Response, error) {
	params := ParseQuery(target)

	all, err := s.Docsets.ListDocsets(ctx, "")
	if err != nil {
		return errorResponse(err), fmt.Errorf("list docsets: %w", err)
	}
	filtered, err := s.Docsets.ListDocsets(ctx, params.Docsets)
	if err != nil {
		return errorResponse(err), fmt.Errorf("list docsets %q: %w", params.Docsets, err)
	}
	menu := SelectDocsets(all, filtered)

	var b bytes.Buffer
	writeHeader(&b, params)
	writeForm(&b, params, menu)

	if !menu.Installed() {
		fmt.Fprintf(&b, "<p class=\"notice\">No docsets are installed. Nothing to search in docsets matching <code>%s</code>.</p>\n",
			params.EscapedDocsets)
	} else {
		result, err := s.Searcher.Search(ctx, params.Query, params.Docsets)
		if err != nil {
			return errorResponse(err), fmt.Errorf("search %q in %q: %w", params.Query, params.Docsets, err)
		}
		if result != nil && result.Found {
			b.WriteString(result.HTML)
			b.WriteString("\n")
		} else {
			filter := params.EscapedDocsets
			if filter == "" {
				filter = "."
			}
			fmt.Fprintf(&b, "<p class=\"notice\">No results for <code>%s</code> in docsets matching <code>%s</code>.</p>\n",
				params.EscapedQuery, filter)
		}
	}

	b.WriteString("</body>\n</html>\n")

	return &Response{Status: http.StatusOK, Body: b.Bytes()}, nil
}

func writeHeader(b *bytes.Buffer, params QueryParams) {
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(b, "<title>dashdoc: %s [%s]</title>\n", params.EscapedQuery, params.EscapedDocsets)
	b.WriteString("<style>\n" +
		"body { font-family: sans-serif; margin: 1em 2em; }\n" +
		"select { min-width: 16em; }\n" +
		"option.ignored { color: #999; }\n" +
		".notice { font-style: italic; }\n" +
		".results .type, .results .docset { color: #666; font-size: smaller; }\n" +
		"</style>\n")
	b.WriteString("</head>\n<body>\n")
}

func writeForm(b *bytes.Buffer, params QueryParams, menu DocsetMenu) {
	b.WriteString("<form method=\"get\" action=\"/\">\n")
	fmt.Fprintf(b, "<input type=\"search\" name=\"query\" value=\"%s\" placeholder=\"query\" autofocus>\n", params.EscapedQuery)
	fmt.Fprintf(b, "<input type=\"text\" name=\"docsets\" value=\"%s\" placeholder=\"docsets\">\n", params.EscapedDocsets)
	b.WriteString("<button type=\"submit\">Search</button>\n")

	fmt.Fprintf(b, "<p><label for=\"docset-menu\">Docsets: matched %d out of %d</label></p>\n",
		menu.MatchedCount, menu.TotalCount)

	size := min(max(menu.TotalCount, 1), maxMenuSize)
	fmt.Fprintf(b, "<select id=\"docset-menu\" name=\"docsets\" multiple size=\"%d\">\n", size)
	for _, e := range menu.Entries {
		name := EscapeHTML(e.Name)
		attrs := ""
		if menu.Highlight() {
			switch {
			case !e.Matched:
				attrs = " class=\"ignored\""
			case params.Docsets != "":
				attrs = " selected"
			}
		}
		fmt.Fprintf(b, "<option value=\"^%s$\"%s>%s</option>\n", name, attrs, name)
	}
	b.WriteString("</select>\n</form>\n")
}

// errorResponse renders the page shown when a collaborator fails. Only the
// message of application errors is shown; anything else reads
// "Internal error.".
func errorResponse(err error) *Response {
	var b bytes.Buffer
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	b.WriteString("<title>dashdoc: error</title>\n</head>\n<body>\n")
	fmt.Fprintf(&b, "<p class=\"error\">%s</p>\n", EscapeHTML(ErrorMessage(err)))
	b.WriteString("</body>\n</html>\n")
	return &Response{Status: http.StatusInternalServerError, Body: b.Bytes()}
}
