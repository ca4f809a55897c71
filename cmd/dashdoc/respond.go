package main

import (
	"fmt"

	"github.com/fwojciec/dashdoc"
)

// Run executes the respond command. The response is written even when a
// collaborator fails; the failure is then reported on stderr.
func (c *RespondCmd) Run(deps *Dependencies) error {
	if err := deps.Responder.Respond(deps.Ctx, deps.Stdin, deps.Stdout); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", dashdoc.ErrorMessage(err))
		return err
	}
	return nil
}
