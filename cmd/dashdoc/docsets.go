package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/dashdoc"
)

// Run executes the docsets command.
func (c *DocsetsCmd) Run(deps *Dependencies) error {
	filter := strings.Join(c.Patterns, " ")

	docsets, err := deps.Docsets.FindDocsets(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", dashdoc.ErrorMessage(err))
		return err
	}

	if len(docsets) == 0 {
		if filter == "" {
			fmt.Fprintf(deps.Stdout, "No docsets installed in %s.\n", deps.Config.DocsetsDir)
		} else {
			fmt.Fprintf(deps.Stdout, "No docsets match %q.\n", filter)
		}
		return nil
	}

	for _, d := range docsets {
		if d.Title != "" && d.Title != d.Name {
			fmt.Fprintf(deps.Stdout, "%s  %s\n", d.Name, d.Title)
			continue
		}
		fmt.Fprintln(deps.Stdout, d.Name)
	}

	return nil
}
