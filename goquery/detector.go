package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/blockdoc"
)

var _ blockdoc.GeneratorDetector = (*Detector)(nil)

// Detector identifies documentation generators from HTML content.
// It checks for generator-specific CSS classes, data attributes, meta tags,
// and structural markers that are unique to each generator.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect analyzes HTML and returns the identified generator.
// Returns GeneratorUnknown if the generator cannot be determined.
func (d *Detector) Detect(html string) blockdoc.Generator {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return blockdoc.GeneratorUnknown
	}
	return d.DetectDocument(doc)
}

// DetectDocument is like Detect for an already parsed document.
func (d *Detector) DetectDocument(doc *goquery.Document) blockdoc.Generator {
	// Check meta generator tags first - most reliable when present
	if g := d.detectFromMetaGenerator(doc); g != blockdoc.GeneratorUnknown {
		return g
	}

	// __docusaurus_skipToContent_fallback is highly specific
	if d.hasSelector(doc, "#__docusaurus_skipToContent_fallback") ||
		d.hasSelector(doc, ".theme-doc-markdown") ||
		d.hasSelector(doc, ".theme-admonition") {
		return blockdoc.GeneratorDocusaurus
	}

	// data-md-* attributes are unique to MkDocs Material
	if d.hasSelector(doc, "[data-md-color-scheme]") ||
		d.hasSelector(doc, "[data-md-component]") ||
		d.hasSelector(doc, ".md-content") {
		return blockdoc.GeneratorMkDocs
	}

	// Sphinx, including the ReadTheDocs theme
	if d.hasSelector(doc, ".toctree-wrapper") ||
		d.hasSelector(doc, ".wy-nav-content") ||
		d.hasSelector(doc, ".sphinxsidebar") {
		return blockdoc.GeneratorSphinx
	}

	// Before VuePress since VitePress is its successor
	if d.hasSelector(doc, "#VPContent") ||
		d.hasSelector(doc, ".VPDoc") ||
		d.hasSelector(doc, ".vp-doc") {
		return blockdoc.GeneratorVitePress
	}

	if d.hasSelector(doc, ".theme-default-content") ||
		d.hasSelector(doc, ".vuepress-navbar") {
		return blockdoc.GeneratorVuePress
	}

	if d.hasSelector(doc, "[data-testid='space.sidebar']") ||
		d.hasSelector(doc, "[data-testid='page.desktopTableOfContents']") ||
		d.hasGitBookClasses(doc) {
		return blockdoc.GeneratorGitBook
	}

	if d.hasSelector(doc, ".nextra-callout") ||
		d.hasSelector(doc, ".nextra-sidebar") ||
		d.hasSelector(doc, ".nextra-toc") {
		return blockdoc.GeneratorNextra
	}

	// DITA-OT output and portals built on it (zDocs)
	if d.hasSelector(doc, "meta[name='DC.Type']") ||
		d.hasSelector(doc, ".zDocsTopicPageBody") ||
		d.hasSelector(doc, "div.body.conbody, div.body.taskbody, div.body.refbody") {
		return blockdoc.GeneratorDITA
	}

	return blockdoc.GeneratorUnknown
}

// detectFromMetaGenerator checks the meta generator tag.
func (d *Detector) detectFromMetaGenerator(doc *goquery.Document) blockdoc.Generator {
	generator := ""
	doc.Find("meta[name='generator']").Each(func(_ int, s *goquery.Selection) {
		if content, exists := s.Attr("content"); exists {
			generator = strings.ToLower(content)
		}
	})

	if generator == "" {
		return blockdoc.GeneratorUnknown
	}

	switch {
	case strings.Contains(generator, "sphinx"):
		return blockdoc.GeneratorSphinx
	case strings.Contains(generator, "gitbook"):
		return blockdoc.GeneratorGitBook
	case strings.Contains(generator, "docusaurus"):
		return blockdoc.GeneratorDocusaurus
	case strings.Contains(generator, "mkdocs"):
		return blockdoc.GeneratorMkDocs
	case strings.Contains(generator, "vitepress"):
		return blockdoc.GeneratorVitePress
	case strings.Contains(generator, "vuepress"):
		return blockdoc.GeneratorVuePress
	case strings.Contains(generator, "nextra"):
		return blockdoc.GeneratorNextra
	case strings.Contains(generator, "dita"):
		return blockdoc.GeneratorDITA
	}

	return blockdoc.GeneratorUnknown
}

func (d *Detector) hasSelector(doc *goquery.Document, selector string) bool {
	return doc.Find(selector).Length() > 0
}

// hasGitBookClasses requires at least two of GitBook's html element classes.
func (d *Detector) hasGitBookClasses(doc *goquery.Document) bool {
	htmlClass, _ := doc.Find("html").Attr("class")
	if htmlClass == "" {
		return false
	}

	count := 0
	for _, c := range []string{"circular-corners", "theme-clean", "tint"} {
		if strings.Contains(htmlClass, c) {
			count++
		}
	}
	return count >= 2
}
