package goquery

import (
	"errors"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/blockdoc"
	"golang.org/x/net/html"
)

// DefaultRemoveSelector matches non-content elements dropped before
// extraction.
const DefaultRemoveSelector = "script, style, noscript, template, nav, link, meta, svg, " +
	"button, input, select, textarea, form, [role='navigation'], " +
	".breadcrumb, .breadcrumbs, .related-links, .skip-link"

// DefaultWrapperSelector matches chrome and group wrappers replaced by their
// children: table filter and pagination decoration, dropdowns, and DITA
// group/info containers that would otherwise hide callouts and tables from
// their list item.
const DefaultWrapperSelector = "div.zDocsFilterTableDiv, div.zDocsFilterColumnsTableDiv, " +
	"div.zDocsDropdownMenu, div.table-filter, div.filter-wrapper, div.dropdown, " +
	"div.pagination, div.table-wrap, div.tablenoborder, div.itemgroup, div.info"

// Normalized is a parsed, repaired and unwrapped document.
type Normalized struct {
	Doc *goquery.Document

	// Repairs is the number of duplicate closing tags removed.
	Repairs int

	// Passes is the number of unwrap passes that found wrappers.
	Passes int

	// Converged is false when wrappers remained after the last allowed pass.
	Converged bool
}

var _ blockdoc.HTMLNormalizer = (*Normalizer)(nil)

// Normalizer prepares raw documentation HTML for block extraction.
type Normalizer struct {
	removeSelector  string
	wrapperSelector string
	maxPasses       int
	registry        blockdoc.ProfileRegistry
}

// NormalizerOption configures a Normalizer.
type NormalizerOption func(*Normalizer)

// WithRemoveSelector replaces DefaultRemoveSelector.
func WithRemoveSelector(selector string) NormalizerOption {
	return func(n *Normalizer) {
		n.removeSelector = selector
	}
}

// WithWrapperSelector replaces DefaultWrapperSelector.
func WithWrapperSelector(selector string) NormalizerOption {
	return func(n *Normalizer) {
		n.wrapperSelector = selector
	}
}

// WithMaxPasses bounds the unwrap loop.
// Defaults to blockdoc.DefaultMaxUnwrapPasses.
func WithMaxPasses(passes int) NormalizerOption {
	return func(n *Normalizer) {
		n.maxPasses = passes
	}
}

// WithProfiles makes NormalizeHTML apply the profile the registry detects
// for each document.
func WithProfiles(r blockdoc.ProfileRegistry) NormalizerOption {
	return func(n *Normalizer) {
		n.registry = r
	}
}

// NewNormalizer creates a new Normalizer.
func NewNormalizer(opts ...NormalizerOption) *Normalizer {
	n := &Normalizer{
		removeSelector:  DefaultRemoveSelector,
		wrapperSelector: DefaultWrapperSelector,
		maxPasses:       blockdoc.DefaultMaxUnwrapPasses,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize repairs known markup defects, parses the document, removes
// non-content elements and unwraps wrappers until none are left or the
// pass bound is reached.
func (n *Normalizer) Normalize(rawHTML string) (*Normalized, error) {
	return n.normalize(rawHTML, n.removeSelector, n.wrapperSelector)
}

// NormalizeHTML implements blockdoc.HTMLNormalizer by rendering the
// normalized document, with the detected profile applied when a registry
// is configured.
func (n *Normalizer) NormalizeHTML(rawHTML string) (string, error) {
	var profile blockdoc.Profile
	if n.registry != nil {
		profile = n.registry.ProfileFor(rawHTML)
	}
	norm, err := n.NormalizeProfile(rawHTML, profile)
	if err != nil {
		return "", err
	}
	out, err := norm.Doc.Html()
	if err != nil {
		return "", blockdoc.Errorf(blockdoc.EINTERNAL, "failed to render HTML: %v", err)
	}
	return out, nil
}

// NormalizeProfile is like Normalize but also applies the remove and wrapper
// selectors of a generator profile.
func (n *Normalizer) NormalizeProfile(rawHTML string, p blockdoc.Profile) (*Normalized, error) {
	return n.normalize(rawHTML, joinSelectors(n.removeSelector, p.RemoveSelector), joinSelectors(n.wrapperSelector, p.WrapperSelector))
}

func (n *Normalizer) normalize(rawHTML, removeSelector, wrapperSelector string) (*Normalized, error) {
	repaired, repairs := RepairDuplicateClosers(rawHTML)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(repaired))
	if err != nil {
		return nil, blockdoc.Errorf(blockdoc.EINVALID, "failed to parse HTML: %v", err)
	}

	if removeSelector != "" {
		doc.Find(removeSelector).Remove()
	}

	result := &Normalized{Doc: doc, Repairs: repairs, Converged: true}
	if wrapperSelector == "" {
		return result, nil
	}

	result.Converged = false
	for result.Passes < n.maxPasses {
		wrappers := doc.Find(wrapperSelector)
		if wrappers.Length() == 0 {
			result.Converged = true
			break
		}
		result.Passes++
		for _, w := range wrappers.Nodes {
			unwrapWrapper(w)
		}
	}
	if !result.Converged {
		result.Converged = doc.Find(wrapperSelector).Length() == 0
	}
	return result, nil
}

// joinSelectors combines selector groups, skipping empty ones.
func joinSelectors(selectors ...string) string {
	var parts []string
	for _, s := range selectors {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

// unwrapWrapper replaces a wrapper element with its children. Whitespace is
// kept around the children so text from a block wrapper does not run into
// neighbouring text.
func unwrapWrapper(w *html.Node) {
	if w.Parent == nil {
		return
	}
	if w.FirstChild != nil {
		w.InsertBefore(&html.Node{Type: html.TextNode, Data: " "}, w.FirstChild)
		w.AppendChild(&html.Node{Type: html.TextNode, Data: " "})
	}
	unwrap(w)
}

// RepairDuplicateClosers removes the second of two container closing tags
// that directly follow a closing table tag ("</table></div></div>"), a
// defect that closes the table's enclosing container too early and splits
// sibling tables apart. Only as many closers are removed as the document has
// surplus div closing tags; when the div tags balance the pattern is left
// alone. It returns the repaired HTML and the number of repairs.
func RepairDuplicateClosers(rawHTML string) (string, int) {
	surplus := surplusDivClosers(rawHTML)
	if surplus <= 0 {
		return rawHTML, 0
	}

	const (
		idle = iota
		afterTable
		afterFirstCloser
	)

	var sb strings.Builder
	sb.Grow(len(rawHTML))
	repairs := 0
	state := idle

	z := html.NewTokenizer(strings.NewReader(rawHTML))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if !errors.Is(z.Err(), io.EOF) {
				return rawHTML, 0
			}
			break
		}

		var name []byte
		if tt == html.StartTagToken || tt == html.EndTagToken || tt == html.SelfClosingTagToken {
			name, _ = z.TagName()
		}
		raw := z.Raw()

		switch tt {
		case html.EndTagToken:
			switch string(name) {
			case "table":
				state = afterTable
			case "div":
				if state == afterFirstCloser && surplus > 0 {
					surplus--
					repairs++
					state = idle
					continue
				}
				if state == afterTable {
					state = afterFirstCloser
				} else {
					state = idle
				}
			default:
				state = idle
			}
		case html.TextToken:
			if strings.TrimSpace(string(raw)) != "" {
				state = idle
			}
		case html.CommentToken:
		default:
			state = idle
		}
		sb.Write(raw)
	}
	return sb.String(), repairs
}

// surplusDivClosers returns how many more div closing tags than opening tags
// rawHTML contains.
func surplusDivClosers(rawHTML string) int {
	opens, closes := 0, 0
	z := html.NewTokenizer(strings.NewReader(rawHTML))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return closes - opens
		}
		if tt != html.StartTagToken && tt != html.EndTagToken && tt != html.SelfClosingTagToken {
			continue
		}
		name, _ := z.TagName()
		if string(name) != "div" {
			continue
		}
		if tt == html.EndTagToken {
			closes++
		} else {
			opens++
		}
	}
}
