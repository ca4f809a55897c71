package dashdoc

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms an HTML fragment, such as the one returned by a
	// Searcher, into Markdown suitable for a terminal.
	Convert(html string) (string, error)
}
