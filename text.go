package blockdoc

import (
	"html"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"
)

// DefaultMaxRunLength is the platform's hard limit on the length of a
// single text run, in UTF-16 code units.
const DefaultMaxRunLength = 2000

// Color is a platform color name, e.g. "red" or "blue_background".
type Color string

// Color constants.
const (
	ColorDefault          Color = ""
	ColorGray             Color = "gray"
	ColorBrown            Color = "brown"
	ColorOrange           Color = "orange"
	ColorYellow           Color = "yellow"
	ColorGreen            Color = "green"
	ColorBlue             Color = "blue"
	ColorPurple           Color = "purple"
	ColorPink             Color = "pink"
	ColorRed              Color = "red"
	ColorGrayBackground   Color = "gray_background"
	ColorBlueBackground   Color = "blue_background"
	ColorYellowBackground Color = "yellow_background"
	ColorRedBackground    Color = "red_background"
	ColorGreenBackground  Color = "green_background"
)

// Annotations is the styling of a text run. It is comparable, so two runs
// share an annotation set exactly when their Annotations are equal.
type Annotations struct {
	Bold          bool  `json:"bold,omitempty"`
	Italic        bool  `json:"italic,omitempty"`
	Code          bool  `json:"code,omitempty"`
	Strikethrough bool  `json:"strikethrough,omitempty"`
	Underline     bool  `json:"underline,omitempty"`
	Color         Color `json:"color,omitempty"`
}

// TextRun is a contiguous span of text sharing one annotation set.
type TextRun struct {
	Text        string      `json:"text"`
	Annotations Annotations `json:"annotations"`
	Link        string      `json:"link,omitempty"`
}

// TextLength returns the length of s in UTF-16 code units, which is how the
// platform measures run length.
func TextLength(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// PlainText concatenates the text of runs.
func PlainText(runs []TextRun) string {
	var sb strings.Builder
	for _, r := range runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// CoalesceRuns merges adjacent runs with identical annotations and link
// target. Empty runs are dropped. Order is preserved.
func CoalesceRuns(runs []TextRun) []TextRun {
	out := make([]TextRun, 0, len(runs))
	for _, r := range runs {
		if r.Text == "" {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Annotations == r.Annotations && out[n-1].Link == r.Link {
			out[n-1].Text += r.Text
			continue
		}
		out = append(out, r)
	}
	return out
}

// SplitRuns splits every run longer than max UTF-16 units into consecutive
// runs of exactly max units followed by the remainder. Only the first
// fragment of a split run keeps its link. A surrogate pair is never cut, so
// a fragment may fall one unit short of max when the next rune needs two.
// A max of zero or less uses DefaultMaxRunLength.
func SplitRuns(runs []TextRun, max int) []TextRun {
	if max <= 0 {
		max = DefaultMaxRunLength
	}
	out := make([]TextRun, 0, len(runs))
	for _, r := range runs {
		if TextLength(r.Text) <= max {
			out = append(out, r)
			continue
		}
		link := r.Link
		for _, part := range splitText(r.Text, max) {
			out = append(out, TextRun{Text: part, Annotations: r.Annotations, Link: link})
			link = ""
		}
	}
	return out
}

func splitText(s string, max int) []string {
	var parts []string
	start, units := 0, 0
	for i, r := range s {
		n := utf16.RuneLen(r)
		if units+n > max {
			parts = append(parts, s[start:i])
			start, units = i, 0
		}
		units += n
	}
	if start < len(s) {
		parts = append(parts, s[start:])
	}
	return parts
}

var entityRe = regexp.MustCompile(`&(?:[a-zA-Z][a-zA-Z0-9]{1,31}|#[0-9]{1,7}|#[xX][0-9a-fA-F]{1,6});`)

// DecodeEntities decodes HTML character references left in already-parsed
// text, as produced by exporters that escape content twice.
// Unknown references are left untouched.
func DecodeEntities(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	return entityRe.ReplaceAllStringFunc(s, html.UnescapeString)
}

// NormalizeText resolves entities and normalizes whitespace in a leaf text
// node. Non-breaking and other fixed-width spaces become regular spaces,
// invisible break hints are removed, and whitespace runs collapse to a
// single space. When keepSoftBreaks is set, line breaks survive and only
// horizontal whitespace collapses.
func NormalizeText(s string, keepSoftBreaks bool) string {
	s = DecodeEntities(s)

	var sb strings.Builder
	sb.Grow(len(s))
	pendingSpace := false
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		s = s[size:]

		switch r {
		case '\u200b', '\u200c', '\u200d', '\u2060', '\ufeff', '\u00ad':
			continue
		case '\u00a0', '\u2007', '\u202f':
			r = ' '
		case '\r':
			if strings.HasPrefix(s, "\n") {
				continue
			}
			r = '\n'
		}

		if r == '\n' && keepSoftBreaks {
			pendingSpace = false
			sb.WriteRune('\n')
			continue
		}
		if unicode.IsSpace(r) {
			pendingSpace = true
			continue
		}
		if pendingSpace {
			sb.WriteByte(' ')
			pendingSpace = false
		}
		sb.WriteRune(r)
	}
	if pendingSpace {
		sb.WriteByte(' ')
	}
	return sb.String()
}
