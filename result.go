package blockdoc

import "fmt"

// Result is the outcome of converting one document.
type Result struct {
	// Title is the page title when one could be determined.
	Title string `json:"title,omitempty"`

	// SourceHash is an xxhash of the source HTML, for change detection.
	SourceHash string `json:"sourceHash"`

	// PrimaryTree is created in the first write.
	PrimaryTree []*Block `json:"primaryTree"`

	// Deferred holds one entry per marker, parents before nested markers.
	Deferred []DeferredSubtree `json:"deferred"`

	HasVideos bool   `json:"hasVideos"`
	Report    Report `json:"report"`
}

// DeferredByID returns the deferred subtrees keyed by marker id.
func (r *Result) DeferredByID() map[string][]*Block {
	m := make(map[string][]*Block, len(r.Deferred))
	for _, d := range r.Deferred {
		m[d.MarkerID] = d.Blocks
	}
	return m
}

// Counts tallies structural content, either in the source DOM or in the
// emitted blocks.
type Counts struct {
	Paragraphs int `json:"paragraphs"`
	Headings   int `json:"headings"`
	ListItems  int `json:"listItems"`
	Callouts   int `json:"callouts"`
	Tables     int `json:"tables"`
	Images     int `json:"images"`
	Videos     int `json:"videos"`
}

// CountBlocks tallies blocks of every tree, including children.
func CountBlocks(trees ...[]*Block) Counts {
	var c Counts
	for _, tree := range trees {
		Walk(tree, func(b *Block, _ int) bool {
			switch b.Kind {
			case KindParagraph:
				c.Paragraphs++
			case KindHeading1, KindHeading2, KindHeading3:
				c.Headings++
			case KindBulletedListItem, KindNumberedListItem:
				c.ListItems++
			case KindCallout:
				c.Callouts++
			case KindTable:
				c.Tables++
			case KindImage:
				c.Images++
			case KindVideo:
				c.Videos++
			}
			return true
		})
	}
	return c
}

// Report describes how a conversion went. Nothing in it is an error.
type Report struct {
	// Source counts structural elements in the normalized DOM.
	Source Counts `json:"source"`

	// Output counts blocks across the primary tree and deferred subtrees.
	Output Counts `json:"output"`

	// Repairs is the number of malformed-markup repairs applied.
	Repairs int `json:"repairs"`

	// UnwrapPasses is the number of wrapper-unwrapping passes run.
	UnwrapPasses int `json:"unwrapPasses"`

	// MediaFailures is the number of images and videos that could not be
	// resolved.
	MediaFailures int `json:"mediaFailures"`

	Warnings []string `json:"warnings,omitempty"`
}

// Mismatches names the structural kinds that were emitted fewer times than
// they occur in the source.
func (r Report) Mismatches() []string {
	var out []string
	check := func(name string, source, output int) {
		if output < source {
			out = append(out, fmt.Sprintf("%s: source=%d output=%d", name, source, output))
		}
	}
	check("tables", r.Source.Tables, r.Output.Tables)
	check("images", r.Source.Images, r.Output.Images)
	check("videos", r.Source.Videos, r.Output.Videos)
	check("callouts", r.Source.Callouts, r.Output.Callouts)
	check("list items", r.Source.ListItems, r.Output.ListItems)
	return out
}
