package dashdoc

import "strings"

// Names of the accepted query parameters. Any other parameter is dropped.
const (
	ParamQuery   = "query"
	ParamDocsets = "docsets"
)

// QueryParams holds the decoded values of the accepted query parameters.
//
// Query and Docsets are the raw decoded values passed to the collaborators.
// EscapedQuery and EscapedDocsets are the same values escaped for display.
// An empty value means the parameter was absent.
type QueryParams struct {
	Query   string
	Docsets string

	EscapedQuery   string
	EscapedDocsets string
}

// ParseQuery decodes the query string of a request target.
//
// The path is discarded and the remainder is split on '?' and '&' into
// name=value segments. Only "query" and "docsets" are kept. Repeated
// occurrences of a name are joined with a single space, so a form posting
// several docsets selections yields one space-separated filter. Empty
// occurrences add nothing.
func ParseQuery(target string) QueryParams {
	var p QueryParams

	i := strings.IndexByte(target, '?')
	if i < 0 {
		return p
	}

	segments := strings.FieldsFunc(target[i+1:], func(r rune) bool {
		return r == '?' || r == '&'
	})
	for _, seg := range segments {
		name, value, _ := strings.Cut(seg, "=")
		switch name {
		case ParamQuery:
			p.Query = appendValue(p.Query, decodeValue(value))
		case ParamDocsets:
			p.Docsets = appendValue(p.Docsets, decodeValue(value))
		}
	}

	p.EscapedQuery = EscapeHTML(p.Query)
	p.EscapedDocsets = EscapeHTML(p.Docsets)
	return p
}

// appendValue joins a repeated parameter value onto the accumulated one.
func appendValue(acc, value string) string {
	switch {
	case value == "":
		return acc
	case acc == "":
		return value
	default:
		return acc + " " + value
	}
}

// decodeValue decodes a form value: '+' becomes a space, then every %XX
// hex escape becomes its byte. Malformed escapes are copied through as-is.
func decodeValue(s string) string {
	s = strings.ReplaceAll(s, "+", " ")
	if !strings.Contains(s, "%") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
