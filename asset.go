package blockdoc

import (
	"context"
	"net/url"
	"strings"
)

// AssetKind is the kind of media an asset reference points to.
type AssetKind string

// AssetKind constants.
const (
	AssetImage AssetKind = "image"
	AssetVideo AssetKind = "video"
)

// AssetRef identifies a media source found in the document.
type AssetRef struct {
	URL  string
	Kind AssetKind
	Alt  string
}

// AssetHandle references media uploaded to the content platform.
type AssetHandle struct {
	ID  string `json:"id,omitempty"`
	URL string `json:"url,omitempty"`
}

// AssetResolver uploads or otherwise materializes media sources.
// The converter owns no retry policy; decorators in asset/ add one.
type AssetResolver interface {
	// ResolveAsset returns a handle for ref. A nil handle with a nil error
	// means the source cannot be materialized.
	ResolveAsset(ctx context.Context, ref AssetRef) (*AssetHandle, error)
}

// URLValidator decides which source references the platform accepts.
type URLValidator interface {
	// ValidImageSource reports whether url may be used as an external image.
	ValidImageSource(url string) bool

	// ValidLinkTarget reports whether url may be attached to a text run.
	ValidLinkTarget(url string) bool
}

// Ensure DefaultURLValidator implements URLValidator at compile time.
var _ URLValidator = DefaultURLValidator{}

// DefaultURLValidator accepts absolute http(s) URLs for media and
// http(s) or mailto URLs for links.
type DefaultURLValidator struct{}

// ValidImageSource implements URLValidator.
func (DefaultURLValidator) ValidImageSource(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// ValidLinkTarget implements URLValidator.
func (DefaultURLValidator) ValidLinkTarget(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	switch u.Scheme {
	case "http", "https":
		return u.Host != ""
	case "mailto":
		return u.Opaque != ""
	}
	return false
}
