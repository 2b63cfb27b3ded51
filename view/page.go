package view

import "mainframe/cards"

// SectionKind identifies what a page section holds.
type SectionKind int

const (
	SectionHeader SectionKind = iota
	SectionGrid
	SectionArticle
	SectionFooter
)

// Section is one vertical region of the main page.
type Section struct {
	Kind SectionKind
	Grid *Grid // set for SectionGrid
}

// Page is the ordered list of main-content sections. Grids are attached
// lazily, so the order records where each one landed.
type Page struct {
	sections []*Section
}

// NewPage creates a page with a header, the article area and, when footer
// is set, a trailing footer.
func NewPage(footer bool) *Page {
	p := &Page{sections: []*Section{
		{Kind: SectionHeader},
		{Kind: SectionArticle},
	}}
	if footer {
		p.sections = append(p.sections, &Section{Kind: SectionFooter})
	}
	return p
}

// Attach inserts a grid section before the trailing footer if there is
// one, else at the end.
func (p *Page) Attach(g *Grid) {
	s := &Section{Kind: SectionGrid, Grid: g}
	if n := len(p.sections); n > 0 && p.sections[n-1].Kind == SectionFooter {
		footer := p.sections[n-1]
		p.sections = append(p.sections[:n-1], s, footer)
		return
	}
	p.sections = append(p.sections, s)
}

// Sections returns the sections in display order.
func (p *Page) Sections() []*Section {
	out := make([]*Section, len(p.sections))
	copy(out, p.sections)
	return out
}

// Grid is the card container for one collection. A grid is built once
// and then only shown, hidden or repopulated in place.
type Grid struct {
	Collection cards.Collection
	Hidden     bool
	Cards      []*CardView

	version int // catalog version the cards were built from
}
