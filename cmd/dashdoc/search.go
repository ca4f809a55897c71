package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/dashdoc"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	query := strings.Join(c.Query, " ")

	result, err := deps.Searcher.Search(deps.Ctx, query, c.Docsets)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", dashdoc.ErrorMessage(err))
		return err
	}

	if !result.Found {
		filter := c.Docsets
		if filter == "" {
			filter = "."
		}
		fmt.Fprintf(deps.Stdout, "No results for %q in docsets matching %q.\n", query, filter)
		return nil
	}

	md, err := deps.Converter.Convert(result.HTML)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", dashdoc.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, md)
	return nil
}
