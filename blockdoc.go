// Package blockdoc converts third-party documentation HTML into a
// hierarchical block document suitable for publishing to a structured
// content platform with strict structural limits: bounded nesting depth,
// bounded text-run length and a closed set of block kinds.
//
// This package contains domain types, interfaces and the pure parts of the
// pipeline (text normalization, technical-span classification, run
// splitting, marker collection and structural validation) following Ben
// Johnson's Standard Package Layout. Implementations that depend on a DOM
// or platform library live in subdirectories named after their primary
// dependency (e.g., goquery/, notion/, htmltomarkdown/).
package blockdoc
