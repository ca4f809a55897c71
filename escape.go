package dashdoc

import "strings"

// htmlReplacer escapes the five XML predefined entities. Ampersand comes
// first so that the entities produced by the later pairs are not escaped
// again.
var htmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
	"'", "&#39;",
	"<", "&lt;",
	">", "&gt;",
)

// EscapeHTML returns s with &, ", ', < and > replaced by HTML entities.
// It is safe for both element content and quoted attribute values.
func EscapeHTML(s string) string {
	return htmlReplacer.Replace(s)
}
