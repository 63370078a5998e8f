package readability_test

import (
	"net/url"
	"testing"

	"github.com/fwojciec/blockdoc"
	"github.com/fwojciec/blockdoc/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		_, err := readability.NewExtractor().Extract("  \n ")

		require.Error(t, err)
		assert.Equal(t, blockdoc.EINVALID, blockdoc.ErrorCode(err))
	})

	t.Run("extracts title", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Page Title</title></head>
<body><article><p>This is the main article content that should be preserved in the output.</p></article></body>
</html>`

		result, err := readability.NewExtractor().Extract(html)

		require.NoError(t, err)
		assert.Equal(t, "Page Title", result.Title)
	})

	t.Run("removes navigation and footer", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<nav><a href="/home">Home Nav Link</a><a href="/about">About Nav Link</a></nav>
<article><p>This is the important article paragraph text that must be kept.</p></article>
<footer><p>Footer copyright text 2024</p></footer>
</body>
</html>`

		result, err := readability.NewExtractor().Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "important article paragraph text")
		assert.NotContains(t, result.ContentHTML, "Home Nav Link")
		assert.NotContains(t, result.ContentHTML, "Footer copyright text")
	})

	t.Run("keeps tables and code blocks", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<article>
<p>Here is a data table with the settings you can change in the configuration.</p>
<table>
<tr><th>Name</th><th>Value</th></tr>
<tr><td>Foo</td><td>123</td></tr>
</table>
<p>Install the package before changing any of the settings above.</p>
<pre><code>npm install my-package</code></pre>
</article>
</body>
</html>`

		result, err := readability.NewExtractor().Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "<table")
		assert.Contains(t, result.ContentHTML, "<pre")
		assert.Contains(t, result.ContentHTML, "npm install my-package")
	})

	t.Run("resolves relative media against the page URL", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<article>
<p>The diagram below shows how requests travel through the gateway and services.</p>
<img src="/img/diagram.png" alt="Diagram">
<p>Each service reports its status back to the gateway after handling a request.</p>
</article>
</body>
</html>`

		u, err := url.Parse("https://docs.example.com/guide/")
		require.NoError(t, err)

		result, err := readability.NewExtractor(readability.WithPageURL(u)).Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "https://docs.example.com/img/diagram.png")
	})
}
