package blockdoc

import "context"

// OutputStore collects rendered conversion outputs and publishes them
// together. Nothing is visible at the destination until Commit.
type OutputStore interface {
	// Save stages data under a relative name.
	Save(ctx context.Context, name string, data []byte) error

	// Commit publishes every staged output, replacing the destination.
	Commit() error

	// Abort discards every staged output.
	Abort() error
}
