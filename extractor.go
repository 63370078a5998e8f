package blockdoc

// ExtractResult holds the main content of a full HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content with page boilerplate removed.
	ContentHTML string
}

// Extractor isolates the main content of a full page before conversion.
// It is optional: inputs that are already content fragments skip it.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}
