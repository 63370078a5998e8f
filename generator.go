package blockdoc

// Generator identifies the documentation generator that produced a page.
type Generator string

// Generator constants.
const (
	GeneratorUnknown    Generator = ""
	GeneratorDocusaurus Generator = "docusaurus"
	GeneratorMkDocs     Generator = "mkdocs"
	GeneratorSphinx     Generator = "sphinx"
	GeneratorVitePress  Generator = "vitepress"
	GeneratorVuePress   Generator = "vuepress"
	GeneratorGitBook    Generator = "gitbook"
	GeneratorNextra     Generator = "nextra"
	GeneratorDITA       Generator = "dita"
)

// GeneratorDetector identifies the generator of an HTML page.
type GeneratorDetector interface {
	// Detect returns GeneratorUnknown when the generator cannot be
	// determined.
	Detect(html string) Generator
}

// Profile holds the generator-specific selectors used by normalization and
// extraction. Empty selectors fall back to the defaults.
type Profile struct {
	Generator Generator `json:"generator"`

	// RemoveSelector matches additional non-content elements to strip.
	RemoveSelector string `json:"removeSelector,omitempty"`

	// WrapperSelector matches additional wrappers to unwrap.
	WrapperSelector string `json:"wrapperSelector,omitempty"`

	// CalloutSelector matches additional containers that become callouts.
	CalloutSelector string `json:"calloutSelector,omitempty"`
}

// ProfileRegistry returns the profile to use for a page.
type ProfileRegistry interface {
	ProfileFor(html string) Profile
}
