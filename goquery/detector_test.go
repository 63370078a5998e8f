package goquery_test

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/blockdoc"
	bgoquery "github.com/fwojciec/blockdoc/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetector_Detect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want blockdoc.Generator
	}{
		{
			name: "detects Docusaurus from __docusaurus_skipToContent_fallback element",
			html: `<html data-theme="light"><body><div id="__docusaurus_skipToContent_fallback"><article>Docs</article></div></body></html>`,
			want: blockdoc.GeneratorDocusaurus,
		},
		{
			name: "detects Docusaurus from theme-admonition class",
			html: `<html><body><div class="theme-admonition theme-admonition-note">Note</div></body></html>`,
			want: blockdoc.GeneratorDocusaurus,
		},
		{
			name: "detects MkDocs from data-md-color-scheme attribute",
			html: `<html><body data-md-color-scheme="default"><div class="md-container">Docs</div></body></html>`,
			want: blockdoc.GeneratorMkDocs,
		},
		{
			name: "detects MkDocs from data-md-component attribute",
			html: `<html><body><div data-md-component="content">Docs</div></body></html>`,
			want: blockdoc.GeneratorMkDocs,
		},
		{
			name: "detects Sphinx from meta generator tag",
			html: `<html><head><meta name="generator" content="Sphinx 7.2.6"></head><body></body></html>`,
			want: blockdoc.GeneratorSphinx,
		},
		{
			name: "detects Sphinx from wy-nav-content class (ReadTheDocs theme)",
			html: `<html><body><div class="wy-nav-content">Docs</div></body></html>`,
			want: blockdoc.GeneratorSphinx,
		},
		{
			name: "detects VitePress from VPContent element",
			html: `<html><body><div id="VPContent"><div class="vp-doc">Docs</div></div></body></html>`,
			want: blockdoc.GeneratorVitePress,
		},
		{
			name: "detects VuePress from theme-default-content class",
			html: `<html><body><div class="theme-default-content">Docs</div></body></html>`,
			want: blockdoc.GeneratorVuePress,
		},
		{
			name: "detects GitBook from gitbook html classes",
			html: `<html class="circular-corners theme-clean tint"><body>Docs</body></html>`,
			want: blockdoc.GeneratorGitBook,
		},
		{
			name: "detects GitBook from data-testid space.sidebar",
			html: `<html><body><aside data-testid="space.sidebar">Nav</aside></body></html>`,
			want: blockdoc.GeneratorGitBook,
		},
		{
			name: "detects Nextra from nextra-callout class",
			html: `<html><body><div class="nextra-callout">Note</div></body></html>`,
			want: blockdoc.GeneratorNextra,
		},
		{
			name: "detects DITA from DC.Type meta tag",
			html: `<html><head><meta name="DC.Type" content="task"></head><body></body></html>`,
			want: blockdoc.GeneratorDITA,
		},
		{
			name: "detects DITA from topic body classes",
			html: `<html><body><div class="body taskbody"><ol class="steps"></ol></div></body></html>`,
			want: blockdoc.GeneratorDITA,
		},
		{
			name: "meta generator takes priority over CSS class markers",
			html: `<html><head><meta name="generator" content="VitePress v1.0.0"></head><body><div class="theme-default-content"></div></body></html>`,
			want: blockdoc.GeneratorVitePress,
		},
		{
			name: "requires two GitBook html classes",
			html: `<html class="tint"><body>Docs</body></html>`,
			want: blockdoc.GeneratorUnknown,
		},
		{
			name: "returns GeneratorUnknown for generic HTML",
			html: `<html><head><title>Docs</title></head><body><main><p>Hello</p></main></body></html>`,
			want: blockdoc.GeneratorUnknown,
		},
		{
			name: "returns GeneratorUnknown for empty HTML",
			html: ``,
			want: blockdoc.GeneratorUnknown,
		},
		{
			name: "returns GeneratorUnknown for malformed HTML",
			html: `<html><body><div class="unclosed"><p>text`,
			want: blockdoc.GeneratorUnknown,
		},
	}

	d := bgoquery.NewDetector()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, d.Detect(tt.html))
		})
	}
}

func TestDetector_DetectDocument(t *testing.T) {
	t.Parallel()

	t.Run("detects from a parsed document", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<html><body><div class="md-content">Docs</div></body></html>`))
		require.NoError(t, err)

		assert.Equal(t, blockdoc.GeneratorMkDocs, bgoquery.NewDetector().DetectDocument(doc))
	})
}
