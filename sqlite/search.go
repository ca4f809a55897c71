package sqlite

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/dashdoc"
)

// DefaultLimit is the number of results returned per docset when a
// Searcher has no explicit limit.
const DefaultLimit = 50

// Ensure Searcher implements dashdoc.Searcher at compile time.
var _ dashdoc.Searcher = (*Searcher)(nil)

// Searcher implements dashdoc.Searcher over the SQLite indexes of the
// installed docsets.
type Searcher struct {
	docsets dashdoc.DocsetService

	// Limit caps the results taken from each docset. Zero means DefaultLimit.
	Limit int
}

// NewSearcher creates a new Searcher that resolves docset filters with docsets.
func NewSearcher(docsets dashdoc.DocsetService) *Searcher {
	return &Searcher{docsets: docsets}
}

// Result is one entry of a docset index.
type Result struct {
	Docset *dashdoc.Docset
	Name   string
	Type   string
	Path   string
}

// URL returns the link to the result's document. Paths that already carry
// a scheme are returned as they are; anything else resolves to a file
// inside the docset.
func (r *Result) URL() string {
	if u, err := url.Parse(r.Path); err == nil && u.Scheme != "" {
		return r.Path
	}
	page, fragment, _ := strings.Cut(r.Path, "#")
	u := url.URL{
		Scheme:   "file",
		Path:     filepath.ToSlash(filepath.Join(r.Docset.DocumentsPath(), page)),
		Fragment: fragment,
	}
	return u.String()
}

// Search returns the index entries whose names contain the words of query,
// in order, across the docsets selected by the docsets filter.
func (s *Searcher) Search(ctx context.Context, query, docsets string) (*dashdoc.SearchResult, error) {
	results, err := s.Find(ctx, query, docsets)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return &dashdoc.SearchResult{Found: false}, nil
	}
	return &dashdoc.SearchResult{Found: true, HTML: FormatResults(results)}, nil
}

// Find returns the matching index entries without rendering them.
// A blank query matches nothing.
func (s *Searcher) Find(ctx context.Context, query, docsets string) ([]*Result, error) {
	pattern := likePattern(query)
	if pattern == "" {
		return nil, nil
	}

	selected, err := s.docsets.FindDocsets(ctx, docsets)
	if err != nil {
		return nil, err
	}

	seen := make(map[uint64]struct{})
	var results []*Result
	for _, docset := range selected {
		found, err := s.searchDocset(ctx, docset, pattern)
		if err != nil {
			return nil, err
		}
		for _, r := range found {
			key := xxhash.Sum64String(docset.Name + "\x00" + r.Name + "\x00" + r.Type + "\x00" + r.Path)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			results = append(results, r)
		}
	}
	return results, nil
}

func (s *Searcher) limit() int {
	if s.Limit > 0 {
		return s.Limit
	}
	return DefaultLimit
}

// searchDocset queries one docset index. Docsets without an index file are
// skipped.
func (s *Searcher) searchDocset(ctx context.Context, docset *dashdoc.Docset, pattern string) ([]*Result, error) {
	if _, err := os.Stat(docset.IndexPath()); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	db := NewDB(docset.IndexPath())
	if err := db.Open(); err != nil {
		return nil, fmt.Errorf("docset %s: %w", docset.Name, err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `
		SELECT name, COALESCE(type, ''), path
		FROM searchIndex
		WHERE name LIKE ? ESCAPE '\'
		ORDER BY length(name), name
		LIMIT ?
	`, pattern, s.limit())
	if err != nil {
		return nil, fmt.Errorf("docset %s: %w", docset.Name, err)
	}
	defer rows.Close()

	var results []*Result
	for rows.Next() {
		r := &Result{Docset: docset}
		if err := rows.Scan(&r.Name, &r.Type, &r.Path); err != nil {
			return nil, fmt.Errorf("docset %s: %w", docset.Name, err)
		}
		r.Path = stripDashEntries(r.Path)
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("docset %s: %w", docset.Name, err)
	}

	return results, nil
}

// likeEscaper escapes the LIKE metacharacters of a search word.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern turns a query into a LIKE pattern where each run of spaces
// matches any run of characters. It returns "" for a blank query.
func likePattern(query string) string {
	words := strings.Fields(query)
	if len(words) == 0 {
		return ""
	}
	for i, w := range words {
		words[i] = likeEscaper.Replace(w)
	}
	return "%" + strings.Join(words, "%") + "%"
}

// dashEntryRe matches the <dash_entry_...> markers some docsets embed in
// their index paths.
var dashEntryRe = regexp.MustCompile(`<dash_entry_[^>]*>`)

func stripDashEntries(path string) string {
	return dashEntryRe.ReplaceAllString(path, "")
}

// FormatResults renders results as an HTML list.
func FormatResults(results []*Result) string {
	var b strings.Builder
	b.WriteString("<ul class=\"results\">\n")
	for _, r := range results {
		fmt.Fprintf(&b, "<li><a href=\"%s\">%s</a> <span class=\"type\">%s</span> <span class=\"docset\">%s</span></li>\n",
			dashdoc.EscapeHTML(r.URL()),
			dashdoc.EscapeHTML(r.Name),
			dashdoc.EscapeHTML(r.Type),
			dashdoc.EscapeHTML(r.Docset.Title),
		)
	}
	b.WriteString("</ul>")
	return b.String()
}
