// Package dashdoc provides a local search page for Dash documentation sets.
// It answers one HTTP GET request at a time with a self-contained HTML page
// listing the installed docsets and the search results for the requested
// query.
//
// This package contains domain types, interfaces and the request/response
// core following Ben Johnson's Standard Package Layout. Implementations of
// the collaborators live in subdirectories named after their primary
// dependency (e.g., sqlite/, fs/, slog/).
package dashdoc
