package blockdoc

import (
	"fmt"
	"strings"
)

// FormatOutline renders blocks as an indented outline, one block per line,
// for inspecting conversions. Markers are shown as "-> marker <id>".
func FormatOutline(blocks []*Block) string {
	if len(blocks) == 0 {
		return ""
	}

	var sb strings.Builder
	Walk(blocks, func(b *Block, depth int) bool {
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString(string(b.Kind))
		if summary := summarize(b); summary != "" {
			sb.WriteString(": ")
			sb.WriteString(summary)
		}
		if b.Marker != nil {
			fmt.Fprintf(&sb, " -> marker %s", b.Marker.ID)
		}
		sb.WriteByte('\n')
		return true
	})
	return strings.TrimSuffix(sb.String(), "\n")
}

// summarize returns a short single-line description of a block's payload.
func summarize(b *Block) string {
	const maxLen = 60

	var text string
	switch p := b.Payload.(type) {
	case *TextPayload:
		text = PlainText(p.Runs)
	case *CalloutPayload:
		text = p.Icon + " " + PlainText(p.Runs)
	case *TablePayload:
		return fmt.Sprintf("%d columns, %d rows", p.Width, len(b.Children))
	case *TableRowPayload:
		cells := make([]string, len(p.Cells))
		for i, c := range p.Cells {
			cells[i] = PlainText(c)
		}
		text = strings.Join(cells, " | ")
	case *MediaPayload:
		text = p.Source.URL
		if p.Source.Asset != nil {
			text = "asset " + p.Source.Asset.ID
		}
	}

	text = strings.Join(strings.Fields(text), " ")
	if r := []rune(text); len(r) > maxLen {
		text = string(r[:maxLen-3]) + "..."
	}
	return text
}
