package main

import (
	"fmt"

	"github.com/fwojciec/blockdoc"
)

// Run executes the preview command.
func (c *PreviewCmd) Run(deps *Dependencies) error {
	html, _, err := prepare(deps, c.File, c.Extract)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", blockdoc.ErrorMessage(err))
		return err
	}

	md, err := deps.Previewer.Preview(html)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", blockdoc.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, md)
	return nil
}
