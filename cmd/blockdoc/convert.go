package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/fwojciec/blockdoc"
	"github.com/fwojciec/blockdoc/fs"
	"github.com/fwojciec/blockdoc/notion"
	"github.com/jomei/notionapi"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// ConvertOutput is the printed result of converting one file.
type ConvertOutput struct {
	File      string              `json:"file"`
	Title     string              `json:"title,omitempty"`
	Hash      string              `json:"hash"`
	Create    [][]notionapi.Block `json:"create"`
	Appends   []notion.Append     `json:"appends"`
	HasVideos bool                `json:"hasVideos"`
	Report    blockdoc.Report     `json:"report"`
}

// storedOutput decodes a cached ConvertOutput without decoding the blocks,
// keeping the field order of ConvertOutput when encoded again.
type storedOutput struct {
	File      string          `json:"file"`
	Title     string          `json:"title,omitempty"`
	Hash      string          `json:"hash"`
	Create    json.RawMessage `json:"create"`
	Appends   json.RawMessage `json:"appends"`
	HasVideos bool            `json:"hasVideos"`
	Report    json.RawMessage `json:"report"`
}

// Run executes the convert command. Files are converted concurrently and
// printed in argument order; a single file prints an object, several print
// a list. With an output directory each file is written to its own file
// instead, and nothing is written unless every file converts.
func (c *ConvertCmd) Run(deps *Dependencies) error {
	outputs := make([]json.RawMessage, len(c.Files))

	g, ctx := errgroup.WithContext(deps.Ctx)
	g.SetLimit(max(c.Concurrency, 1))
	for i, file := range c.Files {
		g.Go(func() error {
			html, err := readInput(deps, file)
			if err != nil {
				return err
			}

			var key string
			if deps.Store != nil {
				key = blockdoc.ConversionKey(html, deps.Options,
					slices.Concat(deps.Settings, []string{"extract=" + strconv.FormatBool(c.Extract)})...)
				out, err := findOutput(deps, key, file)
				if err == nil {
					outputs[i] = out
					return nil
				}
				if blockdoc.ErrorCode(err) != blockdoc.ENOTFOUND {
					return fmt.Errorf("failed to read cache for %q: %w", file, err)
				}
			}

			var title string
			if c.Extract {
				if html, title, err = extractContent(deps, file, html); err != nil {
					return err
				}
			}

			result, err := deps.Converter.Convert(ctx, html)
			if err != nil {
				return fmt.Errorf("failed to convert %q: %w", file, err)
			}

			plan, err := deps.Mapper.Plan(result)
			if err != nil {
				return fmt.Errorf("failed to plan %q: %w", file, err)
			}

			if result.Title != "" {
				title = result.Title
			}
			out, err := json.Marshal(&ConvertOutput{
				File:      file,
				Title:     title,
				Hash:      result.SourceHash,
				Create:    plan.Create,
				Appends:   plan.Appends,
				HasVideos: result.HasVideos,
				Report:    result.Report,
			})
			if err != nil {
				return fmt.Errorf("failed to encode %q: %w", file, err)
			}
			outputs[i] = out

			// Media failures may be transient, so such results are converted
			// again next time.
			if deps.Store != nil && result.Report.MediaFailures == 0 {
				if err := deps.Store.SaveConversion(ctx, &blockdoc.Conversion{
					Key:        key,
					File:       file,
					Title:      title,
					SourceHash: result.SourceHash,
					Output:     out,
				}); err != nil {
					return fmt.Errorf("failed to cache %q: %w", file, err)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", blockdoc.ErrorMessage(err))
		return err
	}

	if c.OutDir != "" {
		if err := c.save(deps, outputs); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", blockdoc.ErrorMessage(err))
			return err
		}
		return nil
	}

	return c.write(deps, outputs...)
}

// findOutput returns the cached output for key, naming file as its source.
func findOutput(deps *Dependencies, key, file string) (json.RawMessage, error) {
	conv, err := deps.Store.FindConversion(deps.Ctx, key)
	if err != nil {
		return nil, err
	}

	var stored storedOutput
	if err := json.Unmarshal(conv.Output, &stored); err != nil {
		return nil, fmt.Errorf("failed to decode cached output: %w", err)
	}
	stored.File = file
	return json.Marshal(&stored)
}

// save writes every output to its own file in the output directory.
func (c *ConvertCmd) save(deps *Dependencies, outputs []json.RawMessage) (err error) {
	store := fs.NewFileStoreAt(c.OutDir)
	defer func() {
		if err != nil {
			err = errors.Join(err, store.Abort())
		}
	}()

	ext := "." + c.Format
	seen := make(map[string]string, len(c.Files))
	for i, file := range c.Files {
		name, err := fs.OutputPath(file, ext)
		if err != nil {
			return err
		}
		if prev, ok := seen[name]; ok {
			return blockdoc.Errorf(blockdoc.EINVALID, "%q and %q both write to %q", prev, file, name)
		}
		seen[name] = file

		data, err := c.encode(outputs[i])
		if err != nil {
			return err
		}
		if err := store.Save(deps.Ctx, name, data); err != nil {
			return fmt.Errorf("failed to save %q: %w", name, err)
		}
		fmt.Fprintln(deps.Stdout, name)
	}
	return store.Commit()
}

func (c *ConvertCmd) encode(outputs ...json.RawMessage) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.encodeTo(&buf, outputs...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *ConvertCmd) write(deps *Dependencies, outputs ...json.RawMessage) error {
	var buf bytes.Buffer
	if err := c.encodeTo(&buf, outputs...); err != nil {
		return err
	}
	_, err := deps.Stdout.Write(buf.Bytes())
	return err
}

// encodeTo writes a single output as an object and several as a list.
func (c *ConvertCmd) encodeTo(buf *bytes.Buffer, outputs ...json.RawMessage) error {
	if c.Format == "yaml" {
		node, err := yamlNode(outputs)
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(buf)
		enc.SetIndent(2)
		if err := enc.Encode(node); err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
		return enc.Close()
	}

	var v any = outputs
	if len(outputs) == 1 {
		v = outputs[0]
	}
	enc := json.NewEncoder(buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

// yamlNode converts JSON outputs to a YAML node in block style, keeping
// the order of keys.
func yamlNode(outputs []json.RawMessage) (*yaml.Node, error) {
	nodes := make([]*yaml.Node, 0, len(outputs))
	for _, out := range outputs {
		var doc yaml.Node
		if err := yaml.Unmarshal(out, &doc); err != nil {
			return nil, fmt.Errorf("failed to convert output to YAML: %w", err)
		}
		clearStyle(&doc)
		nodes = append(nodes, doc.Content[0])
	}
	if len(nodes) == 1 {
		return nodes[0], nil
	}
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: nodes}, nil
}

func clearStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		clearStyle(c)
	}
}
