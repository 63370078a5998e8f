// Package fs writes conversion outputs to the local file system.
package fs

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/fwojciec/blockdoc"
)

// OutputPath converts an input file name to a relative output path with
// the given extension. Leading parent and root elements are dropped so the
// output lands inside the output directory.
// Example: ../docs/api/users.html → docs/api/users.json
func OutputPath(input, ext string) (string, error) {
	if input == "-" {
		return "stdin" + ext, nil
	}

	p := path.Clean(filepath.ToSlash(input))
	p = strings.TrimPrefix(p, filepath.ToSlash(filepath.VolumeName(input)))
	p = strings.TrimLeft(p, "/")
	for p == ".." || strings.HasPrefix(p, "../") {
		p = strings.TrimPrefix(strings.TrimPrefix(p, ".."), "/")
	}
	if p == "" || p == "." {
		return "", blockdoc.Errorf(blockdoc.EINVALID, "no output path for %q", input)
	}

	p = strings.TrimSuffix(p, path.Ext(p)) + ext
	if !filepath.IsLocal(filepath.FromSlash(p)) {
		return "", blockdoc.Errorf(blockdoc.EINVALID, "output path %q escapes the output directory", p)
	}
	return filepath.FromSlash(p), nil
}
