// Package document lays out parsed articles on the terminal canvas.
package document

import (
	"fmt"
	"strings"

	"mainframe/html"
	"mainframe/render"
)

const maxContentWidth = 80

// Renderer draws an article into a horizontal band of a canvas.
type Renderer struct {
	canvas       *render.Canvas
	contentWidth int
	leftMargin   int
	top, bottom  int // band rows [top, bottom)
	y            int // current row relative to top, before scrolling
	accent       render.Style

	h1Count int
	h2Count int
}

// NewRenderer creates a renderer drawing into rows [top, bottom) of c.
func NewRenderer(c *render.Canvas, top, bottom int) *Renderer {
	contentWidth := c.Width() - 4
	if contentWidth > maxContentWidth {
		contentWidth = maxContentWidth
	}
	if contentWidth < 1 {
		contentWidth = 1
	}
	return &Renderer{
		canvas:       c,
		contentWidth: contentWidth,
		leftMargin:   (c.Width() - contentWidth) / 2,
		top:          top,
		bottom:       bottom,
	}
}

// SetAccent sets the style used for rules and heading underlines.
func (r *Renderer) SetAccent(s render.Style) {
	r.accent = s
}

// Render draws the article scrolled down by scrollY rows and returns the
// total content height.
func (r *Renderer) Render(a *html.Article, scrollY int) int {
	r.y = -scrollY
	r.h1Count = 0
	r.h2Count = 0

	for _, child := range a.Content.Children {
		r.renderNode(child, 0)
	}
	return r.y + scrollY
}

// ContentHeight returns the height the article needs at this width.
func (r *Renderer) ContentHeight(a *html.Article) int {
	probe := NewRenderer(render.NewCanvas(r.canvas.Width(), 0), 0, 0)
	return probe.Render(a, 0)
}

func (r *Renderer) write(x int, s string, style render.Style) {
	row := r.top + r.y
	if row < r.top || row >= r.bottom {
		return
	}
	r.canvas.WriteString(x, row, s, style)
}

func (r *Renderer) renderNode(n *html.Node, indent int) {
	switch n.Type {
	case html.NodeHeading1:
		r.h1Count++
		r.h2Count = 0
		text := fmt.Sprintf("%d. %s", r.h1Count, strings.ToUpper(n.Text))
		r.write(r.leftMargin, text, render.Style{Bold: true})
		r.y++
		r.write(r.leftMargin, strings.Repeat("═", render.StringWidth(text)), r.accent)
		r.y += 2

	case html.NodeHeading2:
		r.h2Count++
		text := n.Text
		if r.h1Count > 0 {
			text = fmt.Sprintf("%d.%d  %s", r.h1Count, r.h2Count, n.Text)
		}
		r.write(r.leftMargin, text, render.Style{Bold: true})
		r.y++
		r.write(r.leftMargin, strings.Repeat("─", render.StringWidth(text)), render.Style{Dim: true})
		r.y += 2

	case html.NodeHeading3:
		r.write(r.leftMargin, n.Text, render.Style{Bold: true, Underline: true})
		r.y += 2

	case html.NodeParagraph:
		r.renderSpans(extractSpans(n), indent, "")
		r.y++

	case html.NodeBlockquote:
		for _, child := range n.Children {
			r.renderQuoted(child)
		}

	case html.NodeList:
		for _, item := range n.Children {
			r.renderSpans(extractSpans(item), indent+2, "• ")
		}
		r.y++

	case html.NodeCodeBlock:
		for _, line := range strings.Split(n.Text, "\n") {
			r.write(r.leftMargin+indent+2, render.TruncateToWidth(line, r.contentWidth-indent-2), render.Style{Dim: true})
			r.y++
		}
		r.y++

	case html.NodeRule:
		r.write(r.leftMargin, strings.Repeat("─", r.contentWidth), r.accent)
		r.y += 2
	}
}

func (r *Renderer) renderQuoted(n *html.Node) {
	start := r.y
	r.renderNode(n, 2)
	for y := start; y < r.y-1; y++ {
		row := r.top + y
		if row >= r.top && row < r.bottom {
			r.canvas.Set(r.leftMargin, row, '│', render.Style{Dim: true})
		}
	}
}

type textSpan struct {
	Text  string
	Style render.Style
}

func extractSpans(n *html.Node) []textSpan {
	var spans []textSpan
	extractSpansRecursive(n, render.Style{}, &spans)
	return spans
}

func extractSpansRecursive(n *html.Node, style render.Style, spans *[]textSpan) {
	for _, child := range n.Children {
		switch child.Type {
		case html.NodeText:
			*spans = append(*spans, textSpan{Text: child.Text, Style: style})
		case html.NodeStrong:
			s := style
			s.Bold = true
			extractSpansRecursive(child, s, spans)
		case html.NodeEmphasis, html.NodeLink:
			s := style
			s.Underline = true
			extractSpansRecursive(child, s, spans)
		case html.NodeCode:
			s := style
			s.Dim = true
			*spans = append(*spans, textSpan{Text: child.Text, Style: s})
		default:
			extractSpansRecursive(child, style, spans)
		}
	}
}

// renderSpans word-wraps styled spans. Words keep the style of the span
// they came from; a newline in a span forces a line break.
func (r *Renderer) renderSpans(spans []textSpan, indent int, bullet string) {
	type word struct {
		text  string
		style render.Style
		brk   bool
	}

	var words []word
	for _, span := range spans {
		for i, part := range strings.Split(span.Text, "\n") {
			if i > 0 {
				words = append(words, word{brk: true})
			}
			for _, f := range strings.Fields(part) {
				words = append(words, word{text: f, style: span.Style})
			}
		}
	}

	x0 := r.leftMargin + indent
	width := r.contentWidth - indent
	if bullet != "" {
		r.write(x0, bullet, r.accent)
		x0 += render.StringWidth(bullet)
		width -= render.StringWidth(bullet)
	}
	if width < 1 {
		width = 1
	}

	x := 0
	for _, w := range words {
		if w.brk {
			r.y++
			x = 0
			continue
		}
		ww := render.StringWidth(w.text)
		if x > 0 && x+1+ww > width {
			r.y++
			x = 0
		}
		if x > 0 {
			x++
		}
		r.write(x0+x, w.text, w.style)
		x += ww
	}
	r.y++
}
