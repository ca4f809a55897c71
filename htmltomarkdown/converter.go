// Package htmltomarkdown renders search result fragments as Markdown for
// the terminal.
package htmltomarkdown

import (
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/dashdoc"
)

// Ensure Converter implements dashdoc.Converter at compile time.
var _ dashdoc.Converter = (*Converter)(nil)

// Converter turns the result list produced by a Searcher into a Markdown
// list. Each entry becomes a link followed by its entry type as inline code
// and its docset title in parentheses:
//
//	- [fmt.Println](file:///.../fmt/index.html#Println) `Function` *(Go)*
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms an HTML fragment into Markdown. Blank input is an
// EINVALID error.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", dashdoc.Errorf(dashdoc.EINVALID, "empty HTML input")
	}

	labeled, err := labelResults(html)
	if err != nil {
		return "", err
	}

	result, err := c.conv.ConvertString(labeled)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(result), nil
}

// labelResults rewrites the type and docset spans of result entries into
// markup that survives conversion. Fragments without a result list pass
// through unchanged.
func labelResults(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing result HTML: %w", err)
	}

	items := doc.Find("ul.results li")
	if items.Length() == 0 {
		return html, nil
	}

	items.Find("span.type").Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			s.ReplaceWithHtml("<code>" + dashdoc.EscapeHTML(text) + "</code>")
			return
		}
		s.Remove()
	})
	items.Find("span.docset").Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			s.ReplaceWithHtml("<em>(" + dashdoc.EscapeHTML(text) + ")</em>")
			return
		}
		s.Remove()
	})

	return doc.Find("body").Html()
}
