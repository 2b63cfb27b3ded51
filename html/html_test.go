package html

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArticle(t *testing.T) {
	input := `<!DOCTYPE html>
<html>
<head><title>Chia Notes</title></head>
<body>
<nav>skip me</nav>
<article>
	<h1>Test Title</h1>
	<p>This is a paragraph with <strong>bold</strong> and <em>italic</em> text.</p>
	<h2>Section</h2>
	<ul>
		<li>Item one</li>
		<li>Item two</li>
	</ul>
	<blockquote><p>A quote</p></blockquote>
	<pre>line one
line two</pre>
</article>
</body>
</html>`

	a, err := ParseArticle(input)
	require.NoError(t, err)
	assert.Equal(t, "Chia Notes", a.Title)

	children := a.Content.Children
	require.Len(t, children, 6)

	assert.Equal(t, NodeHeading1, children[0].Type)
	assert.Equal(t, "Test Title", children[0].Text)
	assert.Equal(t, NodeParagraph, children[1].Type)
	assert.Equal(t, "This is a paragraph with bold and italic text.", children[1].PlainText())
	assert.Equal(t, NodeHeading2, children[2].Type)
	assert.Equal(t, NodeList, children[3].Type)
	assert.Len(t, children[3].Children, 2)
	assert.Equal(t, NodeBlockquote, children[4].Type)
	assert.Equal(t, NodeCodeBlock, children[5].Type)
	assert.Equal(t, "line one\nline two", children[5].Text)
}

func TestParseFragmentWithoutArticle(t *testing.T) {
	a, err := ParseArticle(`<h1>Fragment</h1><p>Body text</p>loose <a href="/x">link</a>`)
	require.NoError(t, err)

	assert.Equal(t, "Fragment", a.Title, "falls back to the first heading")
	children := a.Content.Children
	require.Len(t, children, 3)
	assert.Equal(t, NodeParagraph, children[2].Type)
	assert.Equal(t, "loose link", children[2].PlainText())
	assert.Equal(t, NodeLink, children[2].Children[1].Type)
	assert.Equal(t, "/x", children[2].Children[1].Href)
}

func TestSanitizeDropsScripts(t *testing.T) {
	a, err := ParseArticle(`<article><p onclick="evil()">safe</p><script>alert(1)</script></article>`)
	require.NoError(t, err)

	var all strings.Builder
	for _, c := range a.Content.Children {
		all.WriteString(c.PlainText())
	}
	assert.Equal(t, "safe", all.String())
	assert.NotContains(t, Sanitize(`<p onclick="evil()">x</p>`), "onclick")
}

func TestPlainText(t *testing.T) {
	a, err := ParseArticle(`<article><p>Hello <strong>world</strong>!</p></article>`)
	require.NoError(t, err)
	require.Len(t, a.Content.Children, 1)
	assert.Equal(t, "Hello world!", a.Content.Children[0].PlainText())
}

func TestParseEmpty(t *testing.T) {
	a, err := ParseArticle("")
	require.NoError(t, err)
	assert.Empty(t, a.Content.Children)
	assert.Empty(t, a.Title)
}
