package goquery

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/fwojciec/blockdoc"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DITA and documentation-generator classes with a fixed inline meaning.
var (
	boldClasses   = []string{"uicontrol", "wintitle", "menucascade", "notetitle", "note__title", "guilabel"}
	codeClasses   = []string{"codeph", "filepath", "cmdname", "parmname", "apiname", "userinput", "systemoutput", "option"}
	varnameClass  = "varname"
	colorPropRe   = regexp.MustCompile(`(?i)(?:^|;)\s*color\s*:\s*([a-z]+)`)
	weightPropRe  = regexp.MustCompile(`(?i)font-weight\s*:\s*(bold|[6-9]00)`)
	italicPropRe  = regexp.MustCompile(`(?i)font-style\s*:\s*italic`)
	strikePropRe  = regexp.MustCompile(`(?i)text-decoration[a-z-]*\s*:[^;]*line-through`)
	underlinePrRe = regexp.MustCompile(`(?i)text-decoration[a-z-]*\s*:[^;]*underline`)
)

// cssColors maps CSS color names to platform colors.
var cssColors = map[string]blockdoc.Color{
	"gray": blockdoc.ColorGray, "grey": blockdoc.ColorGray, "silver": blockdoc.ColorGray,
	"brown": blockdoc.ColorBrown, "maroon": blockdoc.ColorBrown,
	"orange": blockdoc.ColorOrange,
	"yellow": blockdoc.ColorYellow, "gold": blockdoc.ColorYellow,
	"green": blockdoc.ColorGreen, "lime": blockdoc.ColorGreen, "teal": blockdoc.ColorGreen,
	"blue": blockdoc.ColorBlue, "navy": blockdoc.ColorBlue,
	"purple": blockdoc.ColorPurple, "violet": blockdoc.ColorPurple,
	"pink": blockdoc.ColorPink, "magenta": blockdoc.ColorPink,
	"red": blockdoc.ColorRed, "crimson": blockdoc.ColorRed,
}

// style is the annotation accumulator. It is passed by value, so entering
// an element pushes and returning pops.
type style struct {
	ann      blockdoc.Annotations
	link     string
	preserve bool
}

// piece is a run under construction.
type piece struct {
	run blockdoc.TextRun

	// preserve marks preformatted text whose whitespace is kept.
	preserve bool

	// brk marks an explicit line break.
	brk bool
}

// segmenter turns inline markup into annotated text runs.
type segmenter struct {
	keepSoftBreaks bool
	maxRunLength   int
	base           *url.URL
	validator      blockdoc.URLValidator

	// images collects img elements met while segmenting, so callers can
	// hoist them out of contexts that cannot hold images (table cells).
	images []*html.Node
}

// Runs segments the given nodes, in document order, into coalesced runs
// no longer than the maximum run length. Whitespace-only input yields an
// empty sequence.
func (s *segmenter) Runs(nodes []*html.Node) []blockdoc.TextRun {
	return s.finish(s.collect(nodes, style{}))
}

// BoldRuns is like Runs with every run made bold.
func (s *segmenter) BoldRuns(nodes []*html.Node) []blockdoc.TextRun {
	st := style{}
	st.ann.Bold = true
	return s.finish(s.collect(nodes, st))
}

// Preformatted segments the content of a pre element, keeping whitespace
// and marking everything as code.
func (s *segmenter) Preformatted(n *html.Node) []blockdoc.TextRun {
	st := style{preserve: true}
	st.ann.Code = true
	return s.finish(s.collect(children(n), st))
}

func (s *segmenter) collect(nodes []*html.Node, st style) []piece {
	var out []piece
	for _, n := range nodes {
		s.walk(n, st, &out)
	}
	return out
}

func (s *segmenter) finish(pieces []piece) []blockdoc.TextRun {
	pieces = tidy(pieces)
	runs := make([]blockdoc.TextRun, 0, len(pieces))
	for _, p := range pieces {
		runs = append(runs, p.run)
	}
	return blockdoc.SplitRuns(blockdoc.CoalesceRuns(runs), s.maxRunLength)
}

func (s *segmenter) walk(n *html.Node, st style, out *[]piece) {
	switch n.Type {
	case html.TextNode:
		text := n.Data
		if st.preserve {
			text = strings.ReplaceAll(blockdoc.DecodeEntities(text), "\u00a0", " ")
		} else {
			text = blockdoc.NormalizeText(text, s.keepSoftBreaks)
		}
		*out = append(*out, piece{run: s.run(text, st), preserve: st.preserve})
		return
	case html.ElementNode:
	default:
		return
	}

	switch n.DataAtom {
	case atom.Script, atom.Style, atom.Template:
		return
	case atom.Br:
		trimTrailingSpace(*out)
		*out = append(*out, piece{run: s.run("\n", style{}), brk: true})
		return
	case atom.Img:
		s.images = append(s.images, n)
		return
	case atom.B, atom.Strong:
		st.ann.Bold = true
	case atom.I, atom.Em, atom.Cite, atom.Dfn, atom.Var:
		st.ann.Italic = true
	case atom.U, atom.Ins:
		st.ann.Underline = true
	case atom.S, atom.Strike, atom.Del:
		st.ann.Strikethrough = true
	case atom.Code, atom.Samp, atom.Tt:
		st.ann.Code = true
	case atom.Kbd:
		// The same element marks both key/button labels and typed values.
		if blockdoc.IsTechnical(textContent(n)) {
			st.ann.Code = true
		} else {
			st.ann.Bold = true
		}
	case atom.Mark:
		st.ann.Color = blockdoc.ColorYellowBackground
	case atom.A:
		if link := s.link(attr(n, "href")); link != "" {
			st.link = link
		}
	case atom.Font:
		if c, ok := cssColors[strings.ToLower(attr(n, "color"))]; ok {
			st.ann.Color = c
		}
	case atom.Pre:
		st.preserve = true
		st.ann.Code = true
		s.lineBreak(out)
		defer s.lineBreak(out)
	case atom.Li:
		s.lineBreak(out)
		*out = append(*out, piece{run: s.run("• ", style{}), preserve: true})
		defer s.lineBreak(out)
	case atom.Td, atom.Th:
		if len(*out) > 0 {
			*out = append(*out, piece{run: s.run(" ", style{})})
		}
	default:
		if !inlineAtoms[n.DataAtom] {
			// Structure flattened into a single text container.
			s.lineBreak(out)
			defer s.lineBreak(out)
		}
	}

	st = applyClasses(n, st)
	st = applyInlineStyle(attr(n, "style"), st)

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		s.walk(c, st, out)
	}
}

func (s *segmenter) run(text string, st style) blockdoc.TextRun {
	return blockdoc.TextRun{Text: text, Annotations: st.ann, Link: st.link}
}

// lineBreak ends the current line unless output is empty or already ends
// with a line break.
func (s *segmenter) lineBreak(out *[]piece) {
	if len(*out) == 0 {
		return
	}
	last := (*out)[len(*out)-1]
	if strings.HasSuffix(last.run.Text, "\n") {
		return
	}
	trimTrailingSpace(*out)
	*out = append(*out, piece{run: s.run("\n", style{}), brk: true})
}

// link resolves href and returns it when the platform accepts it as a link
// target.
func (s *segmenter) link(href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if s.base != nil {
		ref = s.base.ResolveReference(ref)
	}
	resolved := ref.String()
	if s.validator == nil || !s.validator.ValidLinkTarget(resolved) {
		return ""
	}
	return resolved
}

func applyClasses(n *html.Node, st style) style {
	if hasClass(n, boldClasses...) {
		st.ann.Bold = true
	}
	if hasClass(n, codeClasses...) {
		st.ann.Code = true
	}
	if hasClass(n, varnameClass) {
		st.ann.Italic = true
		st.ann.Code = true
	}
	return st
}

func applyInlineStyle(css string, st style) style {
	if css == "" {
		return st
	}
	if m := colorPropRe.FindStringSubmatch(css); m != nil {
		if c, ok := cssColors[strings.ToLower(m[1])]; ok {
			st.ann.Color = c
		}
	}
	if weightPropRe.MatchString(css) {
		st.ann.Bold = true
	}
	if italicPropRe.MatchString(css) {
		st.ann.Italic = true
	}
	if strikePropRe.MatchString(css) {
		st.ann.Strikethrough = true
	}
	if underlinePrRe.MatchString(css) {
		st.ann.Underline = true
	}
	return st
}

// tidy fixes whitespace at piece boundaries: a space never follows a space
// or a line break, and the sequence has no leading or trailing whitespace.
func tidy(pieces []piece) []piece {
	out := pieces[:0]
	atLineStart := true
	for _, p := range pieces {
		if !p.preserve && !p.brk {
			if atLineStart {
				p.run.Text = strings.TrimLeft(p.run.Text, " \n")
			}
			if p.run.Text == "" {
				continue
			}
		}
		if p.brk && len(out) == 0 {
			continue
		}
		out = append(out, p)
		atLineStart = strings.HasSuffix(p.run.Text, " ") || strings.HasSuffix(p.run.Text, "\n")
	}

	for len(out) > 0 {
		last := &out[len(out)-1]
		if last.preserve {
			last.run.Text = strings.TrimRight(last.run.Text, "\n")
		} else {
			last.run.Text = strings.TrimRight(last.run.Text, " \n")
		}
		if last.run.Text != "" {
			break
		}
		out = out[:len(out)-1]
	}

	if len(out) > 0 && out[0].preserve {
		out[0].run.Text = strings.TrimLeft(out[0].run.Text, "\n")
	}
	return out
}

// trimTrailingSpace removes a trailing space from the last non-preformatted
// piece.
func trimTrailingSpace(pieces []piece) {
	if len(pieces) == 0 {
		return
	}
	last := &pieces[len(pieces)-1]
	if !last.preserve && !last.brk {
		last.run.Text = strings.TrimRight(last.run.Text, " ")
	}
}
