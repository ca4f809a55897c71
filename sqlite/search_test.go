package sqlite_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/dashdoc"
	"github.com/fwojciec/dashdoc/fs"
	"github.com/fwojciec/dashdoc/mock"
	"github.com/fwojciec/dashdoc/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Searcher implements dashdoc.Searcher at compile time.
var _ dashdoc.Searcher = (*sqlite.Searcher)(nil)

// setupDocsets installs a Python and a Ruby docset under a temporary root.
func setupDocsets(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	createIndex(t, filepath.Join(root, "Python.docset"),
		entry{"print", "Function", "library/functions.html#print"},
		entry{"pprint", "Module", "library/pprint.html"},
		entry{"pprint.pprint", "Function", "library/pprint.html#pprint.pprint"},
		entry{"os.path.join", "Function", "library/os.path.html#os.path.join"},
		entry{"100%_sure", "Guide", "guide.html"},
	)
	createIndex(t, filepath.Join(root, "Ruby.docset"),
		entry{"puts", "Method", "IO.html#method-i-puts"},
		entry{"print", "Method", "<dash_entry_name=print>Kernel.html#method-i-print"},
	)
	return root
}

func TestSearcher_Find(t *testing.T) {
	t.Parallel()

	t.Run("finds names containing the query across docsets", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewSearcher(fs.NewDocsetService(setupDocsets(t)))

		results, err := s.Find(context.Background(), "print", "")

		require.NoError(t, err)
		var got []string
		for _, r := range results {
			got = append(got, r.Docset.Name+":"+r.Name)
		}
		assert.Equal(t, []string{
			"Python:print",
			"Python:pprint",
			"Python:pprint.pprint",
			"Ruby:print",
		}, got)
	})

	t.Run("spaces match any characters in order", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewSearcher(fs.NewDocsetService(setupDocsets(t)))

		results, err := s.Find(context.Background(), "os join", "")

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "os.path.join", results[0].Name)

		results, err = s.Find(context.Background(), "join os", "")

		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("matching is case-insensitive", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewSearcher(fs.NewDocsetService(setupDocsets(t)))

		results, err := s.Find(context.Background(), "PUTS", "")

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "puts", results[0].Name)
	})

	t.Run("like metacharacters match literally", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewSearcher(fs.NewDocsetService(setupDocsets(t)))

		results, err := s.Find(context.Background(), "0%_", "")
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "100%_sure", results[0].Name)

		results, err = s.Find(context.Background(), "p_int", "")
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("restricts search to filtered docsets", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewSearcher(fs.NewDocsetService(setupDocsets(t)))

		results, err := s.Find(context.Background(), "print", "^Ruby$")

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Ruby", results[0].Docset.Name)
	})

	t.Run("blank query finds nothing", func(t *testing.T) {
		t.Parallel()

		docsets := &mock.DocsetService{
			FindDocsetsFn: func(_ context.Context, _ string) ([]*dashdoc.Docset, error) {
				t.Fatal("FindDocsets should not be called for a blank query")
				return nil, nil
			},
		}
		s := sqlite.NewSearcher(docsets)

		results, err := s.Find(context.Background(), "   ", "")

		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("applies the per-docset limit", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewSearcher(fs.NewDocsetService(setupDocsets(t)))
		s.Limit = 1

		results, err := s.Find(context.Background(), "print", "")

		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "print", results[0].Name)
		assert.Equal(t, "print", results[1].Name)
	})

	t.Run("strips dash entry markers from paths", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewSearcher(fs.NewDocsetService(setupDocsets(t)))

		results, err := s.Find(context.Background(), "print", "Ruby")

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Kernel.html#method-i-print", results[0].Path)
	})

	t.Run("skips docsets without an index", func(t *testing.T) {
		t.Parallel()

		root := setupDocsets(t)
		require.NoError(t, os.MkdirAll(filepath.Join(root, "Empty.docset"), 0755))
		s := sqlite.NewSearcher(fs.NewDocsetService(root))

		results, err := s.Find(context.Background(), "puts", "")

		require.NoError(t, err)
		assert.Len(t, results, 1)
	})

	t.Run("drops duplicate entries", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		docset := &dashdoc.Docset{Name: "Go", Path: filepath.Join(root, "Go.docset"), Title: "Go"}
		createIndex(t, docset.Path, entry{"fmt.Println", "Function", "fmt/index.html#Println"})

		docsets := &mock.DocsetService{
			FindDocsetsFn: func(_ context.Context, _ string) ([]*dashdoc.Docset, error) {
				return []*dashdoc.Docset{docset, docset}, nil
			},
		}
		s := sqlite.NewSearcher(docsets)

		results, err := s.Find(context.Background(), "println", "")

		require.NoError(t, err)
		assert.Len(t, results, 1)
	})

	t.Run("returns docset service errors", func(t *testing.T) {
		t.Parallel()

		docsets := &mock.DocsetService{
			FindDocsetsFn: func(_ context.Context, _ string) ([]*dashdoc.Docset, error) {
				return nil, errors.New("permission denied")
			},
		}
		s := sqlite.NewSearcher(docsets)

		_, err := s.Find(context.Background(), "x", "")

		require.Error(t, err)
	})

	t.Run("returns error for index without searchIndex table", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		indexDir := filepath.Join(root, "Broken.docset", "Contents", "Resources")
		require.NoError(t, os.MkdirAll(indexDir, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(indexDir, "docSet.dsidx"), nil, 0644))
		s := sqlite.NewSearcher(fs.NewDocsetService(root))

		_, err := s.Find(context.Background(), "x", "")

		require.Error(t, err)
		assert.Equal(t, dashdoc.EINVALID, dashdoc.ErrorCode(err))
	})
}

func TestSearcher_Search(t *testing.T) {
	t.Parallel()

	t.Run("renders results as an html list", func(t *testing.T) {
		t.Parallel()

		root := setupDocsets(t)
		s := sqlite.NewSearcher(fs.NewDocsetService(root))

		result, err := s.Search(context.Background(), "puts", "")

		require.NoError(t, err)
		assert.True(t, result.Found)
		docPath := filepath.ToSlash(filepath.Join(root, "Ruby.docset", "Contents", "Resources", "Documents", "IO.html"))
		assert.Contains(t, result.HTML, `<a href="file://`+docPath+`#method-i-puts">puts</a>`)
		assert.Contains(t, result.HTML, `<span class="type">Method</span>`)
		assert.Contains(t, result.HTML, `<span class="docset">Ruby</span>`)
		assert.True(t, strings.HasPrefix(result.HTML, `<ul class="results">`))
	})

	t.Run("reports not found", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewSearcher(fs.NewDocsetService(setupDocsets(t)))

		result, err := s.Search(context.Background(), "zzzz", "")

		require.NoError(t, err)
		assert.False(t, result.Found)
		assert.Empty(t, result.HTML)
	})

	t.Run("reports not found when no docset matches the filter", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewSearcher(fs.NewDocsetService(setupDocsets(t)))

		result, err := s.Search(context.Background(), "print", "NoSuchSet")

		require.NoError(t, err)
		assert.False(t, result.Found)
	})
}

func TestFormatResults(t *testing.T) {
	t.Parallel()

	t.Run("escapes names and links", func(t *testing.T) {
		t.Parallel()

		docset := &dashdoc.Docset{Name: "Cpp", Path: "/d/Cpp.docset", Title: "C++"}
		html := sqlite.FormatResults([]*sqlite.Result{
			{Docset: docset, Name: "operator<<", Type: "Function", Path: "cpp/io.html#a&b"},
		})

		assert.Contains(t, html, `>operator&lt;&lt;</a>`)
		assert.Contains(t, html, `<span class="docset">C++</span>`)
		assert.NotContains(t, html, "operator<<")
	})

	t.Run("keeps absolute URLs", func(t *testing.T) {
		t.Parallel()

		docset := &dashdoc.Docset{Name: "Web", Path: "/d/Web.docset", Title: "Web"}
		html := sqlite.FormatResults([]*sqlite.Result{
			{Docset: docset, Name: "fetch", Type: "Function", Path: "https://example.com/fetch"},
		})

		assert.Contains(t, html, `href="https://example.com/fetch"`)
	})
}

func TestResult_URL(t *testing.T) {
	t.Parallel()

	docset := &dashdoc.Docset{Name: "Go", Path: "/docsets/Go.docset"}

	t.Run("resolves relative paths inside the docset", func(t *testing.T) {
		t.Parallel()

		r := &sqlite.Result{Docset: docset, Path: "fmt/index.html#Println"}

		assert.Equal(t, "file:///docsets/Go.docset/Contents/Resources/Documents/fmt/index.html#Println", r.URL())
	})

	t.Run("keeps paths with a scheme", func(t *testing.T) {
		t.Parallel()

		r := &sqlite.Result{Docset: docset, Path: "https://pkg.go.dev/fmt"}

		assert.Equal(t, "https://pkg.go.dev/fmt", r.URL())
	})
}
