package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/blockdoc"
)

// SourceCounts tallies the structural elements of a normalized document
// that are expected to survive as blocks. Content inside table cells is
// flattened into cell text and is not counted, except for images, which
// are hoisted out of the table.
func SourceCounts(doc *goquery.Document, calloutSelector string) blockdoc.Counts {
	outsideTables := func(s *goquery.Selection) *goquery.Selection {
		return s.FilterFunction(func(_ int, s *goquery.Selection) bool {
			return s.ParentsFiltered("table").Length() == 0
		})
	}

	var c blockdoc.Counts
	c.Paragraphs = outsideTables(doc.Find("p")).Length()
	c.Headings = outsideTables(doc.Find("h1, h2, h3, h4, h5, h6")).Length()
	c.ListItems = outsideTables(doc.Find("ul > li, ol > li")).Length()
	c.Tables = outsideTables(doc.Find("table")).Length()
	c.Images = doc.Find("img[src], img[data-src]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return firstNonEmpty(s.AttrOr("src", ""), s.AttrOr("data-src", "")) != ""
	}).Length()

	c.Videos = outsideTables(doc.Find("video")).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.AttrOr("src", "") != "" || s.Find("source[src]").Length() > 0
	}).Length()
	c.Videos += outsideTables(doc.Find("iframe[src]")).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return isVideoEmbed(s.AttrOr("src", ""))
	}).Length()

	selector := joinSelectors(calloutSelector, "blockquote")
	c.Callouts = outsideTables(doc.Find(selector)).Length()
	return c
}
