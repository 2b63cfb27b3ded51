package app

import (
	"fmt"
	"strings"

	"mainframe/cards"
	"mainframe/document"
	"mainframe/prefs"
	"mainframe/render"
	"mainframe/theme"
	"mainframe/view"
)

const (
	cardHeight = 6
	headerRows = 3
	footerRows = 1
)

var spinner = render.NewSpinner()

// gridColumns mirrors the site's responsive grid: one column on narrow
// screens, two on medium, three on wide.
func gridColumns(width int) int {
	switch {
	case width >= 120:
		return 3
	case width >= 72:
		return 2
	default:
		return 1
	}
}

// draw paints the whole screen for the current state.
func (a *App) draw(c *render.Canvas) {
	th := theme.Current()
	c.SetBase(th.BaseStyle())
	c.Clear()

	if !a.revealed.Load() {
		a.drawConsole(c, th)
		return
	}

	top, bottom := 0, c.Height()
	for _, s := range a.controller.Page().Sections() {
		switch s.Kind {
		case view.SectionHeader:
			a.drawHeader(c, th)
			top = headerRows
		case view.SectionFooter:
			bottom = c.Height() - footerRows
			a.drawFooter(c, th, bottom)
		}
	}

	snap := a.controller.Snapshot()
	if snap.State == view.StateArticle {
		a.drawArticle(c, th, snap, top, bottom)
		return
	}
	a.drawGrid(c, th, snap, top, bottom)
}

func (a *App) drawConsole(c *render.Canvas, th *theme.Theme) {
	if a.console == nil || a.console.Hidden() {
		return
	}
	lines := strings.Split(a.console.Text(), "\n")
	avail := c.Height() - 2
	if len(lines) > avail {
		lines = lines[len(lines)-avail:]
	}
	style := th.Console.Style()
	for i, line := range lines {
		c.WriteString(2, 1+i, line, style)
	}
	hint := "press any key to skip"
	c.WriteString(c.Width()-render.StringWidth(hint)-2, c.Height()-1, hint, th.Dim.Style())
}

func (a *App) drawHeader(c *render.Canvas, th *theme.Theme) {
	kb := a.cfg.Keybindings
	c.WriteString(2, 0, a.cfg.Site.Domain, render.Style{Bold: true}.With(th.Accent.Style()))

	// Right side: theme icon and F-key indicator.
	fk := a.fkeys.Value()
	indicator := "● " + prefs.FKeyLabel(fk, kb.ToggleFKeys)
	x := c.Width() - render.StringWidth(indicator) - 2
	c.WriteString(x, 0, "●", prefs.FKeyColor(fk).Style())
	c.WriteString(x+2, 0, prefs.FKeyLabel(fk, kb.ToggleFKeys), th.Dim.Style())
	c.WriteString(x-4, 0, th.Icon, th.Accent.Style())

	active := a.controller.State()
	x = 2
	for _, b := range []struct {
		label string
		fkey  string
		state view.State
	}{
		{"Blog", "F2", view.StateBlog},
		{"Links", "F8", view.StateLinks},
	} {
		key := kb.Blog
		if b.state == view.StateLinks {
			key = kb.Links
		}
		text := fmt.Sprintf("[%s] %s", key, b.label)
		if fk {
			text += " " + b.fkey
		}
		style := th.Dim.Style()
		if active == b.state {
			style = render.Style{Bold: true, Reverse: true}.With(th.Accent.Style())
		}
		x += c.WriteString(x, 1, text, style) + 3
	}
	c.DrawHLine(0, 2, c.Width(), '─', th.Dim.Style())
}

func (a *App) drawFooter(c *render.Canvas, th *theme.Theme, y int) {
	kb := a.cfg.Keybindings
	hints := fmt.Sprintf("%s/%s move  enter open  %s close  %s theme  %s quit",
		kb.Down, kb.Up, kb.Close, kb.ToggleTheme, kb.Quit)
	if a.loading.Load() {
		hints = spinner.Frame() + " loading…  " + hints
	}
	c.WriteString(2, y, render.Truncate(hints, c.Width()-4), th.Dim.Style())
}

func (a *App) drawGrid(c *render.Canvas, th *theme.Theme, snap view.Snapshot, top, bottom int) {
	if len(snap.Cards) == 0 {
		msg := "nothing here yet"
		select {
		case <-a.catalog.Ready():
		default:
			msg = spinner.Frame() + " loading cards"
		}
		c.WriteString(4, top+1, msg, th.Dim.Style())
		return
	}

	cols := gridColumns(c.Width())
	a.cols = cols
	visibleRows := max((bottom-top)/cardHeight, 1)
	selRow := snap.Cursor / cols
	firstRow := max(selRow-visibleRows+1, 0)

	drawCards(c, th, snap.Cards, snap.Cursor, cols, firstRow, top, bottom)
}

// drawCards lays cards out in cols columns starting at grid row firstRow,
// within canvas rows [top, bottom). selected < 0 highlights nothing.
func drawCards(c *render.Canvas, th *theme.Theme, views []*view.CardView, selected, cols, firstRow, top, bottom int) {
	margin := 2
	gap := 2
	cardW := (c.Width() - 2*margin - (cols-1)*gap) / cols
	if cardW < 10 {
		cardW = c.Width() - 2*margin
		cols = 1
	}

	for i, v := range views {
		row := i/cols - firstRow
		if row < 0 {
			continue
		}
		y := top + row*cardHeight
		if y+cardHeight > bottom {
			break
		}
		x := margin + (i%cols)*(cardW+gap)
		drawCard(c, th, v, x, y, cardW, i == selected)
	}
}

func drawCard(c *render.Canvas, th *theme.Theme, v *view.CardView, x, y, w int, selected bool) {
	box, border := render.RoundedBox, th.Dim.Style()
	if selected {
		box, border = render.HeavyBox, th.Accent.Style()
	}
	c.DrawBox(x, y, w, cardHeight-1, box, border)

	inner := w - 4
	c.WriteString(x+2, y+1, "●", th.StatusColor(string(v.Status)).Style())
	c.WriteString(x+4, y+1, render.Truncate(v.Title, inner-2), render.Style{Bold: true})

	desc := render.WrapText(v.Description, inner)
	lines := 2
	if v.MetadataVisible {
		lines = 1
	}
	for i := 0; i < len(desc) && i < lines; i++ {
		text := desc[i]
		if i == lines-1 && len(desc) > lines {
			text = render.Truncate(text+" …", inner)
		}
		c.WriteString(x+2, y+2+i, text, render.Style{})
	}
	if v.MetadataVisible {
		c.WriteString(x+2, y+3, render.Truncate(strings.TrimSpace(v.Metadata), inner), th.Dim.Style())
	}
}

func (a *App) drawArticle(c *render.Canvas, th *theme.Theme, snap view.Snapshot, top, bottom int) {
	r := document.NewRenderer(c, top+1, bottom)
	r.SetAccent(th.Accent.Style())
	height := r.Render(snap.Article, snap.Scroll)
	a.maxScroll = max(height-(bottom-top-1), 0)

	title := snap.Article.Title
	if title == "" {
		title = snap.ArticleURL
	}
	closeHint := fmt.Sprintf("[%s] close", a.cfg.Keybindings.Close)
	c.WriteString(2, top, render.Truncate(title, c.Width()-render.StringWidth(closeHint)-6), render.Style{Bold: true})
	c.WriteString(c.Width()-render.StringWidth(closeHint)-2, top, closeHint, th.Dim.Style())
}

// renderCollection draws every card of a collection onto a canvas tall
// enough to hold them all.
func renderCollection(th *theme.Theme, views []*view.CardView, width int) *render.Canvas {
	cols := gridColumns(width)
	rows := (len(views) + cols - 1) / cols
	c := render.NewCanvas(width, max(rows*cardHeight, 1))
	drawCards(c, th, views, -1, cols, 0, 0, c.Height())
	return c
}

// statusLine is the plain-text card summary used in print mode headers.
func statusLine(name cards.Collection, n int) string {
	return fmt.Sprintf("%s: %d cards", name, n)
}
