package blockdoc

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Conversion is a stored conversion output, keyed by the source HTML and
// every setting that affects the output.
type Conversion struct {
	Key        string    `json:"key"`
	File       string    `json:"file"`
	Title      string    `json:"title"`
	SourceHash string    `json:"sourceHash"`
	Output     []byte    `json:"-"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Validate returns an error if the conversion contains invalid fields.
func (c *Conversion) Validate() error {
	if c.Key == "" {
		return Errorf(EINVALID, "conversion key required")
	}
	if len(c.Output) == 0 {
		return Errorf(EINVALID, "conversion output required")
	}
	return nil
}

// ConversionStore persists conversion outputs so unchanged inputs are not
// converted twice.
type ConversionStore interface {
	// FindConversion retrieves a conversion by key.
	// Returns ENOTFOUND if no conversion is stored for key.
	FindConversion(ctx context.Context, key string) (*Conversion, error)

	// FindConversions retrieves conversions matching the filter, newest
	// first.
	FindConversions(ctx context.Context, filter ConversionFilter) ([]*Conversion, error)

	// SaveConversion stores a conversion, replacing any with the same key.
	SaveConversion(ctx context.Context, c *Conversion) error

	// DeleteConversion removes a conversion.
	// Returns ENOTFOUND if no conversion is stored for key.
	DeleteConversion(ctx context.Context, key string) error
}

// ConversionFilter represents a filter for FindConversions.
type ConversionFilter struct {
	File *string `json:"file"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ConversionKey derives a cache key from the source HTML, the options and
// any additional settings that change the output.
func ConversionKey(html string, opts Options, settings ...string) string {
	d := xxhash.New()
	_, _ = d.WriteString(html)
	_, _ = fmt.Fprintf(d, "\x00%d|%d|%d|%t|%s|%s",
		opts.MaxRunLength, opts.MaxNestingDepth, opts.MaxUnwrapPasses,
		opts.SkipSoftBreakNormalization, opts.BaseURL, opts.MediaFailure)
	_, _ = d.WriteString("\x00" + strings.Join(settings, "\x00"))
	return fmt.Sprintf("%016x", d.Sum64())
}
