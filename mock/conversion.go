package mock

import (
	"context"

	"github.com/fwojciec/blockdoc"
)

var _ blockdoc.ConversionStore = (*ConversionStore)(nil)

// ConversionStore is a mock implementation of blockdoc.ConversionStore.
type ConversionStore struct {
	FindConversionFn   func(ctx context.Context, key string) (*blockdoc.Conversion, error)
	FindConversionsFn  func(ctx context.Context, filter blockdoc.ConversionFilter) ([]*blockdoc.Conversion, error)
	SaveConversionFn   func(ctx context.Context, c *blockdoc.Conversion) error
	DeleteConversionFn func(ctx context.Context, key string) error
}

func (s *ConversionStore) FindConversion(ctx context.Context, key string) (*blockdoc.Conversion, error) {
	return s.FindConversionFn(ctx, key)
}

func (s *ConversionStore) FindConversions(ctx context.Context, filter blockdoc.ConversionFilter) ([]*blockdoc.Conversion, error) {
	return s.FindConversionsFn(ctx, filter)
}

func (s *ConversionStore) SaveConversion(ctx context.Context, c *blockdoc.Conversion) error {
	return s.SaveConversionFn(ctx, c)
}

func (s *ConversionStore) DeleteConversion(ctx context.Context, key string) error {
	return s.DeleteConversionFn(ctx, key)
}
