package blockdoc

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DefaultMaxNestingDepth is the nesting ceiling observed on the target
// platform: a top-level block may contain children, and those children may
// contain one further level. A table needs one level for its rows.
const DefaultMaxNestingDepth = 2

// DefaultMaxUnwrapPasses bounds the wrapper-unwrapping fixed point loop.
const DefaultMaxUnwrapPasses = 10

// MediaFailurePolicy controls what happens to media that cannot be
// resolved.
type MediaFailurePolicy string

// MediaFailurePolicy constants.
const (
	// MediaOmit drops the block.
	MediaOmit MediaFailurePolicy = "omit"

	// MediaPlaceholder degrades the block to a paragraph naming the media.
	MediaPlaceholder MediaFailurePolicy = "placeholder"
)

// Options configures a conversion.
type Options struct {
	// SkipSoftBreakNormalization keeps line breaks in text nodes instead of
	// turning them into single spaces.
	SkipSoftBreakNormalization bool `yaml:"skip_soft_break_normalization"`

	// MaxRunLength is the maximum run length in UTF-16 units.
	MaxRunLength int `yaml:"max_run_length" validate:"min=1"`

	// MaxNestingDepth is the deepest level (0 = top level) a block may be
	// created at in a single write.
	MaxNestingDepth int `yaml:"max_nesting_depth" validate:"min=1"`

	// MaxUnwrapPasses bounds wrapper unwrapping. Hitting the bound is
	// reported as a warning.
	MaxUnwrapPasses int `yaml:"max_unwrap_passes" validate:"min=1"`

	// BaseURL resolves relative link and media references.
	BaseURL string `yaml:"base_url" validate:"omitempty,url"`

	// MediaFailure chooses how unresolvable media degrade.
	MediaFailure MediaFailurePolicy `yaml:"media_failure" validate:"oneof=omit placeholder"`

	// AssetConcurrency bounds concurrent AssetResolver calls.
	AssetConcurrency int `yaml:"asset_concurrency" validate:"min=1"`
}

// DefaultOptions returns the options used when none are specified.
func DefaultOptions() Options {
	return Options{
		MaxRunLength:     DefaultMaxRunLength,
		MaxNestingDepth:  DefaultMaxNestingDepth,
		MaxUnwrapPasses:  DefaultMaxUnwrapPasses,
		MediaFailure:     MediaOmit,
		AssetConcurrency: 4,
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate returns an EINVALID error describing every invalid field.
func (o Options) Validate() error {
	err := validate.Struct(o)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Errorf(EINVALID, "invalid options: %v", err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field()+" failed "+fe.Tag())
	}
	return Errorf(EINVALID, "invalid options: %s", strings.Join(fields, ", "))
}
