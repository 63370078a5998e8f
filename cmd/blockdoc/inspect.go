package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/blockdoc"
)

// Run executes the inspect command.
func (c *InspectCmd) Run(deps *Dependencies) error {
	html, _, err := prepare(deps, c.File, c.Extract)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", blockdoc.ErrorMessage(err))
		return err
	}

	result, err := deps.Converter.Convert(deps.Ctx, html)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", blockdoc.ErrorMessage(err))
		return err
	}

	if result.Title != "" {
		fmt.Fprintf(deps.Stdout, "# %s\n\n", result.Title)
	}
	fmt.Fprintln(deps.Stdout, blockdoc.FormatOutline(result.PrimaryTree))

	for _, d := range result.Deferred {
		fmt.Fprintf(deps.Stdout, "\ndeferred %s (owner %s):\n", d.MarkerID, d.OwnerBlockID)
		outline := blockdoc.FormatOutline(d.Blocks)
		for _, line := range strings.Split(outline, "\n") {
			fmt.Fprintf(deps.Stdout, "  %s\n", line)
		}
	}

	r := result.Report
	fmt.Fprintf(deps.Stdout, "\nblocks: %d top-level, %d deferred subtrees\n", len(result.PrimaryTree), len(result.Deferred))
	fmt.Fprintf(deps.Stdout, "source:  tables=%d images=%d videos=%d callouts=%d list_items=%d\n",
		r.Source.Tables, r.Source.Images, r.Source.Videos, r.Source.Callouts, r.Source.ListItems)
	fmt.Fprintf(deps.Stdout, "output:  tables=%d images=%d videos=%d callouts=%d list_items=%d\n",
		r.Output.Tables, r.Output.Images, r.Output.Videos, r.Output.Callouts, r.Output.ListItems)
	for _, w := range r.Warnings {
		fmt.Fprintf(deps.Stdout, "warning: %s\n", w)
	}
	return nil
}
