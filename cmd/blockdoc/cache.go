package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/blockdoc"
)

// Run executes the cache list command.
func (c *CacheListCmd) Run(deps *Dependencies) error {
	if err := requireStore(deps); err != nil {
		return err
	}

	filter := blockdoc.ConversionFilter{Limit: c.Limit, Offset: c.Offset}
	if c.File != "" {
		filter.File = &c.File
	}
	convs, err := deps.Store.FindConversions(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", blockdoc.ErrorMessage(err))
		return err
	}

	for _, conv := range convs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s", conv.Key, conv.CreatedAt.Format(time.DateTime), conv.File)
		if conv.Title != "" {
			fmt.Fprintf(deps.Stdout, "  %q", conv.Title)
		}
		fmt.Fprintln(deps.Stdout)
	}
	return nil
}

// Run executes the cache delete command.
func (c *CacheDeleteCmd) Run(deps *Dependencies) error {
	if err := requireStore(deps); err != nil {
		return err
	}

	if err := deps.Store.DeleteConversion(deps.Ctx, c.Key); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", blockdoc.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "deleted %s\n", c.Key)
	return nil
}

func requireStore(deps *Dependencies) error {
	if deps.Store != nil {
		return nil
	}
	err := blockdoc.Errorf(blockdoc.EINVALID, "no cache configured, pass --cache")
	fmt.Fprintf(deps.Stderr, "error: %s\n", blockdoc.ErrorMessage(err))
	return err
}
