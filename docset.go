package dashdoc

import (
	"context"
	"path/filepath"
	"sort"
)

// Docset represents an installed Dash documentation set.
type Docset struct {
	// Name is the directory name without the ".docset" suffix.
	Name string

	// Path is the absolute path of the .docset directory.
	Path string

	// Title is the human-readable bundle name, or Name if the docset
	// carries no metadata.
	Title string

	// Family is the docset family declared by the bundle, if any.
	Family string
}

// IndexPath returns the path of the docset's SQLite search index.
func (d *Docset) IndexPath() string {
	return filepath.Join(d.Path, "Contents", "Resources", "docSet.dsidx")
}

// DocumentsPath returns the directory holding the docset's HTML documents.
func (d *Docset) DocumentsPath() string {
	return filepath.Join(d.Path, "Contents", "Resources", "Documents")
}

// DocsetService lists installed docsets.
//
// The filter is a space-separated list of patterns matched against docset
// names. An empty filter selects every installed docset.
type DocsetService interface {
	// ListDocsets returns the names of the docsets matching filter,
	// sorted by name.
	ListDocsets(ctx context.Context, filter string) ([]string, error)

	// FindDocsets returns the docsets matching filter, sorted by name.
	FindDocsets(ctx context.Context, filter string) ([]*Docset, error)
}

// DocsetEntry is one line of the docset menu.
type DocsetEntry struct {
	Name    string
	Matched bool
}

// DocsetMenu is the deduplicated, name-sorted list of docsets shown on the
// search page together with the match bookkeeping.
type DocsetMenu struct {
	Entries []DocsetEntry

	MatchedCount int
	IgnoredCount int
	TotalCount   int
}

// Installed reports whether any docset is installed at all.
func (m DocsetMenu) Installed() bool {
	return m.TotalCount > 0
}

// Highlight reports whether ignored entries should be de-emphasized. When
// nothing matches, every entry renders plainly.
func (m DocsetMenu) Highlight() bool {
	return m.MatchedCount > 0
}

// SelectDocsets builds the docset menu from the names of all installed
// docsets and the names matching the current filter. An entry is matched
// if its name appears in filtered.
func SelectDocsets(all, filtered []string) DocsetMenu {
	matched := make(map[string]bool, len(filtered))
	for _, name := range filtered {
		matched[name] = true
	}

	seen := make(map[string]bool, len(all)+len(filtered))
	names := make([]string, 0, len(all)+len(filtered))
	for _, list := range [][]string{all, filtered} {
		for _, name := range list {
			if seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)

	menu := DocsetMenu{Entries: make([]DocsetEntry, 0, len(names))}
	for _, name := range names {
		entry := DocsetEntry{Name: name, Matched: matched[name]}
		if entry.Matched {
			menu.MatchedCount++
		} else {
			menu.IgnoredCount++
		}
		menu.Entries = append(menu.Entries, entry)
	}
	menu.TotalCount = menu.MatchedCount + menu.IgnoredCount

	return menu
}
