package main

import (
	"context"
	"io"

	"github.com/fwojciec/blockdoc"
	"github.com/fwojciec/blockdoc/notion"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	Converter blockdoc.Converter
	Extractor blockdoc.Extractor
	Previewer blockdoc.Previewer
	Mapper    *notion.Mapper

	// Store caches conversion outputs. Nil disables caching.
	Store blockdoc.ConversionStore

	// Options and Settings are the inputs of the cache key besides the
	// source HTML.
	Options  blockdoc.Options
	Settings []string
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config       string  `short:"c" type:"path" help:"YAML file with conversion options"`
	BaseURL      string  `name:"base-url" help:"Base URL for relative links and media"`
	Placeholders bool    `help:"Replace unresolvable media with text placeholders instead of dropping it"`
	ProbeMedia   bool    `name:"probe-media" help:"Check that media sources are reachable before referencing them"`
	ProbeRate    float64 `name:"probe-rate" default:"5" help:"Media probe requests per second per host"`
	MarkerTokens bool    `name:"marker-tokens" help:"Embed visible marker tokens in blocks that own deferred content"`
	Extractor    string  `default:"trafilatura" enum:"trafilatura,readability" help:"Main content extractor used by --extract (trafilatura, readability)"`
	CachePath    string  `name:"cache" type:"path" help:"SQLite file caching conversion outputs"`
	Verbose      bool    `short:"v" help:"Log debug output to stderr"`

	Convert ConvertCmd `cmd:"" help:"Convert HTML files to Notion block requests"`
	Preview PreviewCmd `cmd:"" help:"Render the normalized HTML as Markdown"`
	Inspect InspectCmd `cmd:"" help:"Print the block outline of a conversion"`
	Cache   CacheCmd   `cmd:"" help:"Manage cached conversions"`
}

// ConvertCmd is the "convert" subcommand.
type ConvertCmd struct {
	Files       []string `arg:"" help:"HTML files to convert ('-' reads stdin)"`
	Extract     bool     `short:"e" help:"Isolate the main content of full pages first"`
	Format      string   `short:"f" default:"json" enum:"json,yaml" help:"Output format (json, yaml)"`
	Concurrency int      `default:"4" help:"Concurrent conversions"`
	OutDir      string   `name:"out-dir" short:"o" type:"path" help:"Write one file per input to this directory, replacing it"`
}

// PreviewCmd is the "preview" subcommand.
type PreviewCmd struct {
	File    string `arg:"" help:"HTML file ('-' reads stdin)"`
	Extract bool   `short:"e" help:"Isolate the main content of full pages first"`
}

// InspectCmd is the "inspect" subcommand.
type InspectCmd struct {
	File    string `arg:"" help:"HTML file ('-' reads stdin)"`
	Extract bool   `short:"e" help:"Isolate the main content of full pages first"`
}

// CacheCmd groups the cache subcommands.
type CacheCmd struct {
	List   CacheListCmd   `cmd:"" help:"List cached conversions, newest first"`
	Delete CacheDeleteCmd `cmd:"" help:"Delete a cached conversion"`
}

// CacheListCmd is the "cache list" subcommand.
type CacheListCmd struct {
	File   string `help:"Only list conversions of this input"`
	Limit  int    `short:"n" default:"20" help:"Maximum number of conversions"`
	Offset int    `help:"Number of conversions to skip"`
}

// CacheDeleteCmd is the "cache delete" subcommand.
type CacheDeleteCmd struct {
	Key string `arg:"" help:"Conversion key"`
}
