// Package fs discovers Dash docsets installed in a directory.
package fs

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fwojciec/dashdoc"
)

// docsetExt is the directory suffix of an installed docset.
const docsetExt = ".docset"

// Ensure DocsetService implements dashdoc.DocsetService at compile time.
var _ dashdoc.DocsetService = (*DocsetService)(nil)

// DocsetService implements dashdoc.DocsetService over a directory of
// <Name>.docset bundles.
type DocsetService struct {
	root string
}

// NewDocsetService creates a new DocsetService rooted at root.
// A root that does not exist simply has no docsets installed.
func NewDocsetService(root string) *DocsetService {
	return &DocsetService{root: root}
}

// Root returns the directory docsets are discovered in.
func (s *DocsetService) Root() string {
	return s.root
}

// ListDocsets returns the names of the docsets matching filter.
func (s *DocsetService) ListDocsets(ctx context.Context, filter string) ([]string, error) {
	names, err := s.discover(ctx)
	if err != nil {
		return nil, err
	}

	m := NewMatcher(filter)
	matched := make([]string, 0, len(names))
	for _, name := range names {
		if m.Match(name) {
			matched = append(matched, name)
		}
	}
	return matched, nil
}

// FindDocsets returns the docsets matching filter with their metadata.
func (s *DocsetService) FindDocsets(ctx context.Context, filter string) ([]*dashdoc.Docset, error) {
	names, err := s.ListDocsets(ctx, filter)
	if err != nil {
		return nil, err
	}

	docsets := make([]*dashdoc.Docset, 0, len(names))
	for _, name := range names {
		path := filepath.Join(s.root, name+docsetExt)

		docset := &dashdoc.Docset{Name: name, Path: path, Title: name}
		// A missing or unreadable Info.plist leaves the defaults in place.
		if info, err := ReadInfo(filepath.Join(path, "Contents", "Info.plist")); err == nil {
			if info.Name != "" {
				docset.Title = info.Name
			}
			docset.Family = info.Family
		}
		docsets = append(docsets, docset)
	}
	return docsets, nil
}

// discover returns the names of every installed docset, sorted.
func (s *DocsetService) discover(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if _, err := os.Stat(s.root); errors.Is(err, iofs.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat docsets directory: %w", err)
	}

	fsys := os.DirFS(s.root)
	matches, err := doublestar.Glob(fsys, "*"+docsetExt)
	if err != nil {
		return nil, fmt.Errorf("failed to list docsets: %w", err)
	}

	names := make([]string, 0, len(matches))
	for _, match := range matches {
		info, err := iofs.Stat(fsys, match)
		if err != nil || !info.IsDir() {
			continue
		}
		names = append(names, strings.TrimSuffix(match, docsetExt))
	}
	sort.Strings(names)
	return names, nil
}

// Matcher selects docset names with a space-separated list of patterns.
// Each pattern is a case-insensitive regular expression; a pattern that is
// not a valid expression matches as a literal substring instead. An empty
// pattern list matches every name.
type Matcher struct {
	patterns []*regexp.Regexp
}

// NewMatcher compiles filter into a Matcher.
func NewMatcher(filter string) *Matcher {
	fields := strings.Fields(filter)
	m := &Matcher{patterns: make([]*regexp.Regexp, 0, len(fields))}
	for _, field := range fields {
		re, err := regexp.Compile("(?i)" + field)
		if err != nil {
			re = regexp.MustCompile("(?i)" + regexp.QuoteMeta(field))
		}
		m.patterns = append(m.patterns, re)
	}
	return m
}

// Match reports whether name is selected by any pattern.
func (m *Matcher) Match(name string) bool {
	if len(m.patterns) == 0 {
		return true
	}
	for _, re := range m.patterns {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}
