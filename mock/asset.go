package mock

import (
	"context"

	"github.com/fwojciec/blockdoc"
)

var _ blockdoc.AssetResolver = (*AssetResolver)(nil)

// AssetResolver is a mock implementation of blockdoc.AssetResolver.
type AssetResolver struct {
	ResolveAssetFn func(ctx context.Context, ref blockdoc.AssetRef) (*blockdoc.AssetHandle, error)
}

func (r *AssetResolver) ResolveAsset(ctx context.Context, ref blockdoc.AssetRef) (*blockdoc.AssetHandle, error) {
	return r.ResolveAssetFn(ctx, ref)
}

var _ blockdoc.URLValidator = (*URLValidator)(nil)

// URLValidator is a mock implementation of blockdoc.URLValidator.
type URLValidator struct {
	ValidImageSourceFn func(url string) bool
	ValidLinkTargetFn  func(url string) bool
}

func (v *URLValidator) ValidImageSource(url string) bool {
	return v.ValidImageSourceFn(url)
}

func (v *URLValidator) ValidLinkTarget(url string) bool {
	return v.ValidLinkTargetFn(url)
}
