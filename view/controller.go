// Package view owns which of the blog grid, the links grid or an inline
// article is on screen.
package view

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"mainframe/cards"
	"mainframe/html"
)

// State names the active view.
type State string

const (
	StateBlog    State = "blog"
	StateLinks   State = "links"
	StateArticle State = "article"
)

// Catalog is the card data a controller renders from.
type Catalog interface {
	// Snapshot returns a collection and its version from one consistent read.
	Snapshot(name cards.Collection) ([]cards.Card, int)
	Version(name cards.Collection) int
}

// ArticleSource fetches article markup.
type ArticleSource interface {
	Text(ctx context.Context, ref string) (string, error)
}

// Opener hands a non-local card URL to something outside the program.
type Opener func(url string) error

// Controller switches between views. Grids are built on first display and
// reused afterwards.
type Controller struct {
	log      *zap.Logger
	catalog  Catalog
	renderer *CardRenderer
	articles ArticleSource
	open     Opener

	mu             sync.Mutex
	page           *Page
	grids          map[cards.Collection]*Grid
	current        cards.Collection
	cursor         map[cards.Collection]int
	article        *html.Article
	articleURL     string
	articleVisible bool
	scroll         int
}

// Config holds a controller's collaborators.
type Config struct {
	Catalog  Catalog
	Renderer *CardRenderer
	Articles ArticleSource
	Open     Opener
	Page     *Page
	Logger   *zap.Logger
}

// New creates a controller showing nothing yet; the first ShowBlog or
// ShowLinks builds a grid.
func New(cfg Config) *Controller {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	page := cfg.Page
	if page == nil {
		page = NewPage(true)
	}
	return &Controller{
		log:      log,
		catalog:  cfg.Catalog,
		renderer: cfg.Renderer,
		articles: cfg.Articles,
		open:     cfg.Open,
		page:     page,
		grids:    make(map[cards.Collection]*Grid),
		current:  cards.Blog,
		cursor:   make(map[cards.Collection]int),
	}
}

// ShowBlog hides any article and shows the blog grid.
func (c *Controller) ShowBlog() {
	c.show(cards.Blog)
}

// ShowLinks hides any article and shows the links grid.
func (c *Controller) ShowLinks() {
	c.show(cards.Links)
}

func (c *Controller) show(name cards.Collection) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.hideArticleLocked()
	for _, g := range c.grids {
		g.Hidden = true
	}

	g, ok := c.grids[name]
	if !ok {
		g = &Grid{Collection: name}
		c.page.Attach(g)
		c.populateLocked(g)
		c.grids[name] = g
	}
	g.Hidden = false
	c.current = name
}

func (c *Controller) populateLocked(g *Grid) {
	set, version := c.catalog.Snapshot(g.Collection)
	var views []*CardView
	for _, card := range set {
		v, err := c.renderer.Render(card)
		if err != nil {
			c.log.Debug("card skipped", zap.String("title", card.Title), zap.Error(err))
			continue
		}
		views = append(views, v)
	}
	g.Cards = views
	g.version = version
	if c.cursor[g.Collection] >= len(g.Cards) {
		c.cursor[g.Collection] = max(len(g.Cards)-1, 0)
	}
}

// Refresh repopulates built grids whose collection has loaded since they
// were built. Grids keep their identity. It reports whether anything
// changed.
func (c *Controller) Refresh() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	changed := false
	for name, g := range c.grids {
		if c.catalog.Version(name) != g.version {
			c.populateLocked(g)
			changed = true
		}
	}
	return changed
}

// LoadArticle fetches the article at url and shows it in place of the
// grids. On failure the view is left as it was.
func (c *Controller) LoadArticle(ctx context.Context, url string) error {
	markup, err := c.articles.Text(ctx, url)
	if err != nil {
		c.log.Error("loading article", zap.String("url", url), zap.Error(err))
		return fmt.Errorf("loading article %s: %w", url, err)
	}
	a, err := html.ParseArticle(markup)
	if err != nil {
		c.log.Error("parsing article", zap.String("url", url), zap.Error(err))
		return fmt.Errorf("parsing article %s: %w", url, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.article = a
	c.articleURL = url
	c.scroll = 0
	for _, g := range c.grids {
		g.Hidden = true
	}
	c.articleVisible = true
	return nil
}

// HideArticle hides the article if it is visible. It does not bring a
// grid back.
func (c *Controller) HideArticle() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hideArticleLocked()
}

func (c *Controller) hideArticleLocked() {
	c.articleVisible = false
}

// CloseArticle hides the article and returns to the blog.
func (c *Controller) CloseArticle() {
	c.HideArticle()
	c.ShowBlog()
}

// State returns the active view.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.articleVisible {
		return StateArticle
	}
	return State(c.current)
}

// ArticleVisible reports whether the article is on screen.
func (c *Controller) ArticleVisible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.articleVisible
}

// Article returns the loaded article and its URL.
func (c *Controller) Article() (*html.Article, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.article, c.articleURL
}

// Grid returns the built grid for name, or nil.
func (c *Controller) Grid(name cards.Collection) *Grid {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.grids[name]
}

// Page returns the page the grids are attached to.
func (c *Controller) Page() *Page {
	return c.page
}

// Select moves the card cursor in the visible grid by delta, clamped to
// the grid.
func (c *Controller) Select(delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	g := c.grids[c.current]
	if c.articleVisible || g == nil || len(g.Cards) == 0 {
		return
	}
	i := c.cursor[c.current] + delta
	c.cursor[c.current] = min(max(i, 0), len(g.Cards)-1)
}

// Cursor returns the selected card index in the current grid.
func (c *Controller) Cursor() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor[c.current]
}

// Selected returns the card under the cursor in the visible grid.
func (c *Controller) Selected() (*CardView, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	g := c.grids[c.current]
	if c.articleVisible || g == nil || len(g.Cards) == 0 {
		return nil, false
	}
	return g.Cards[c.cursor[c.current]], true
}

// Activate follows the selected card: local articles load in place,
// anything else goes to the opener.
func (c *Controller) Activate(ctx context.Context) error {
	v, ok := c.Selected()
	if !ok {
		return nil
	}
	if v.Local {
		return c.LoadArticle(ctx, v.Href)
	}
	if c.open == nil {
		return nil
	}
	if err := c.open(v.Href); err != nil {
		c.log.Warn("opening card", zap.String("url", v.Href), zap.Error(err))
		return fmt.Errorf("opening %s: %w", v.Href, err)
	}
	return nil
}

// Scroll moves the article viewport by delta rows, clamped to [0, limit].
func (c *Controller) Scroll(delta, limit int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scroll = min(max(c.scroll+delta, 0), max(limit, 0))
}

// Snapshot is a consistent copy of what is on screen.
type Snapshot struct {
	State      State
	Collection cards.Collection
	Cards      []*CardView
	Cursor     int
	Article    *html.Article
	ArticleURL string
	Scroll     int
}

// Snapshot returns the current view for drawing.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Snapshot{
		State:      State(c.current),
		Collection: c.current,
		Cursor:     c.cursor[c.current],
		Scroll:     c.scroll,
	}
	if c.articleVisible {
		s.State = StateArticle
		s.Article = c.article
		s.ArticleURL = c.articleURL
		return s
	}
	if g := c.grids[c.current]; g != nil && !g.Hidden {
		s.Cards = append([]*CardView(nil), g.Cards...)
	}
	return s
}

// ScrollOffset returns the article viewport offset.
func (c *Controller) ScrollOffset() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scroll
}
