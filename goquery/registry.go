package goquery

import "github.com/fwojciec/blockdoc"

var _ blockdoc.ProfileRegistry = (*Registry)(nil)

// Registry manages generator-specific profiles and auto-detects generators
// from HTML content, falling back to an empty profile when the generator is
// unknown or no profile is registered for it.
type Registry struct {
	detector blockdoc.GeneratorDetector
	profiles map[blockdoc.Generator]blockdoc.Profile
}

// NewRegistry creates an empty Registry using the given detector.
func NewRegistry(detector blockdoc.GeneratorDetector) *Registry {
	return &Registry{
		detector: detector,
		profiles: make(map[blockdoc.Generator]blockdoc.Profile),
	}
}

// NewDefaultRegistry creates a Registry with the built-in profiles of every
// known generator.
func NewDefaultRegistry() *Registry {
	r := NewRegistry(NewDetector())
	for _, p := range DefaultProfiles() {
		r.Register(p)
	}
	return r
}

// Get returns the profile registered for a generator.
func (r *Registry) Get(g blockdoc.Generator) (blockdoc.Profile, bool) {
	p, ok := r.profiles[g]
	return p, ok
}

// ProfileFor detects the generator of html and returns its profile.
func (r *Registry) ProfileFor(html string) blockdoc.Profile {
	g := r.detector.Detect(html)
	if p, ok := r.profiles[g]; ok {
		return p
	}
	return blockdoc.Profile{Generator: g}
}

// Register adds a profile, replacing any profile for the same generator.
func (r *Registry) Register(p blockdoc.Profile) {
	r.profiles[p.Generator] = p
}

// List returns all registered generators.
func (r *Registry) List() []blockdoc.Generator {
	generators := make([]blockdoc.Generator, 0, len(r.profiles))
	for g := range r.profiles {
		generators = append(generators, g)
	}
	return generators
}

// DefaultProfiles returns the built-in generator profiles.
func DefaultProfiles() []blockdoc.Profile {
	return []blockdoc.Profile{
		{
			Generator:       blockdoc.GeneratorDocusaurus,
			RemoveSelector:  ".theme-doc-sidebar-container, .table-of-contents, .pagination-nav, .theme-edit-this-page, a.hash-link",
			CalloutSelector: ".theme-admonition, .alert",
		},
		{
			Generator:       blockdoc.GeneratorMkDocs,
			RemoveSelector:  ".md-sidebar, .md-source-file, a.headerlink",
			CalloutSelector: ".admonition, details",
		},
		{
			Generator:       blockdoc.GeneratorSphinx,
			RemoveSelector:  ".sphinxsidebar, .wy-nav-side, .rst-footer-buttons, a.headerlink",
			WrapperSelector: "div.highlight-default, div.highlight-python, div.highlight-console",
			CalloutSelector: ".admonition",
		},
		{
			Generator:       blockdoc.GeneratorVitePress,
			RemoveSelector:  ".VPDocAsideOutline, .VPDocFooter, a.header-anchor",
			CalloutSelector: ".custom-block",
		},
		{
			Generator:       blockdoc.GeneratorVuePress,
			RemoveSelector:  ".sidebar, .page-nav, .page-edit, a.header-anchor",
			CalloutSelector: ".custom-block",
		},
		{
			Generator:       blockdoc.GeneratorGitBook,
			RemoveSelector:  "[data-testid='page.desktopTableOfContents']",
			CalloutSelector: "[data-testid='hint'], .hint",
		},
		{
			Generator:       blockdoc.GeneratorNextra,
			RemoveSelector:  ".nextra-toc, .nextra-sidebar, .nextra-breadcrumb",
			CalloutSelector: ".nextra-callout",
		},
		{
			Generator:       blockdoc.GeneratorDITA,
			RemoveSelector:  ".zDocsTopicPageHeader, .zDocsBreadcrumbs, .familylinks, .related-links",
			WrapperSelector: "div.section > div.div, div.p",
			CalloutSelector: "div.note, div.note_note, div.note_important, div.note_warning",
		},
	}
}
