package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/blockdoc"
)

// readInput returns the content of a file, or of stdin for "-".
func readInput(deps *Dependencies, name string) (string, error) {
	if name == "-" {
		if deps.Stdin == nil {
			return "", blockdoc.Errorf(blockdoc.EINVALID, "no stdin available")
		}
		data, err := io.ReadAll(deps.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(name)
	if err != nil {
		if os.IsNotExist(err) {
			return "", blockdoc.Errorf(blockdoc.ENOTFOUND, "file %q not found", name)
		}
		return "", fmt.Errorf("failed to read %q: %w", name, err)
	}
	return string(data), nil
}

// prepare reads an input and optionally isolates its main content. It
// returns the HTML to convert and the title found by extraction.
func prepare(deps *Dependencies, name string, extract bool) (string, string, error) {
	html, err := readInput(deps, name)
	if err != nil {
		return "", "", err
	}
	if !extract {
		return html, "", nil
	}
	return extractContent(deps, name, html)
}

// extractContent isolates the main content of a full page.
func extractContent(deps *Dependencies, name, html string) (string, string, error) {
	result, err := deps.Extractor.Extract(html)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract main content of %q: %w", name, err)
	}
	if result.ContentHTML == "" {
		return "", "", blockdoc.Errorf(blockdoc.ENOTFOUND, "no main content found in %q", name)
	}
	return result.ContentHTML, result.Title, nil
}
