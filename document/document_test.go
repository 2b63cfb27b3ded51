package document

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mainframe/html"
	"mainframe/render"
)

func parse(t *testing.T, markup string) *html.Article {
	t.Helper()
	a, err := html.ParseArticle(markup)
	require.NoError(t, err)
	return a
}

func TestRenderArticle(t *testing.T) {
	a := parse(t, `<article><h1>Boot</h1><p>Hello <strong>world</strong></p><ul><li>one</li></ul></article>`)

	c := render.NewCanvas(40, 12)
	r := NewRenderer(c, 0, 12)
	height := r.Render(a, 0)

	text := c.PlainText()
	assert.Contains(t, text, "1. BOOT")
	assert.Contains(t, text, "Hello world")
	assert.Contains(t, text, "• one")
	assert.Equal(t, r.ContentHeight(a), height)
}

func TestRenderWraps(t *testing.T) {
	a := parse(t, `<p>alpha beta gamma delta epsilon</p>`)

	c := render.NewCanvas(16, 6)
	NewRenderer(c, 0, 6).Render(a, 0)

	lines := strings.Split(strings.TrimRight(c.PlainText(), "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	for _, l := range lines {
		assert.LessOrEqual(t, render.StringWidth(l), 16)
	}
}

func TestRenderBandAndScroll(t *testing.T) {
	a := parse(t, `<p>first</p><p>second</p><p>third</p>`)

	c := render.NewCanvas(20, 10)
	r := NewRenderer(c, 2, 4)
	r.Render(a, 2)

	assert.Equal(t, ' ', c.Get(2, 0).Rune, "nothing drawn above the band")
	assert.Equal(t, ' ', c.Get(2, 5).Rune, "nothing drawn below the band")
	assert.Contains(t, c.PlainText(), "second")
	assert.NotContains(t, c.PlainText(), "first")
}
