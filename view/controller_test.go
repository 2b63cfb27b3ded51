package view

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mainframe/cards"
)

type fakeCatalog struct {
	mu       sync.Mutex
	sets     map[cards.Collection][]cards.Card
	versions map[cards.Collection]int

	// afterSnapshot runs once a snapshot has been taken, before it is
	// returned, to land a load while the controller is populating.
	afterSnapshot func()
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		sets:     make(map[cards.Collection][]cards.Card),
		versions: make(map[cards.Collection]int),
	}
}

func (f *fakeCatalog) load(name cards.Collection, set ...cards.Card) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sets[name] = set
	f.versions[name]++
}

func (f *fakeCatalog) Snapshot(name cards.Collection) ([]cards.Card, int) {
	f.mu.Lock()
	set := append([]cards.Card(nil), f.sets[name]...)
	version := f.versions[name]
	hook := f.afterSnapshot
	f.afterSnapshot = nil
	f.mu.Unlock()

	if hook != nil {
		hook()
	}
	return set, version
}

func (f *fakeCatalog) Version(name cards.Collection) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.versions[name]
}

type fakeArticles struct {
	pages map[string]string
	err   error
	calls []string
}

func (f *fakeArticles) Text(_ context.Context, ref string) (string, error) {
	f.calls = append(f.calls, ref)
	if f.err != nil {
		return "", f.err
	}
	markup, ok := f.pages[ref]
	if !ok {
		return "", errors.New("404 not found")
	}
	return markup, nil
}

func newController(t *testing.T, cat Catalog, articles ArticleSource, open Opener) *Controller {
	t.Helper()
	r, err := NewCardRenderer(cards.DefaultDomain, DefaultLabel)
	require.NoError(t, err)
	return New(Config{Catalog: cat, Renderer: r, Articles: articles, Open: open})
}

func TestGridIdentityAcrossVisits(t *testing.T) {
	cat := newFakeCatalog()
	cat.load(cards.Blog, cards.Card{URL: "posts/a.html", Title: "A"})
	cat.load(cards.Links, cards.Card{URL: "https://example.com", Title: "B"})
	c := newController(t, cat, nil, nil)

	c.ShowBlog()
	blog := c.Grid(cards.Blog)
	require.NotNil(t, blog)
	assert.Equal(t, StateBlog, c.State())

	c.ShowLinks()
	assert.Equal(t, StateLinks, c.State())
	assert.True(t, blog.Hidden)
	assert.False(t, c.Grid(cards.Links).Hidden)

	c.ShowBlog()
	assert.Same(t, blog, c.Grid(cards.Blog))
	assert.False(t, blog.Hidden)
	assert.True(t, c.Grid(cards.Links).Hidden)

	grids := 0
	for _, s := range c.Page().Sections() {
		if s.Kind == SectionGrid {
			grids++
		}
	}
	assert.Equal(t, 2, grids, "each grid attached once")
}

func TestGridIsNotRebuiltWithoutRefresh(t *testing.T) {
	cat := newFakeCatalog()
	c := newController(t, cat, nil, nil)

	c.ShowBlog()
	blog := c.Grid(cards.Blog)
	assert.Empty(t, blog.Cards)

	cat.load(cards.Blog, cards.Card{URL: "posts/a.html", Title: "A"})
	c.ShowLinks()
	c.ShowBlog()
	assert.Empty(t, blog.Cards, "showing again reuses the built grid")

	assert.True(t, c.Refresh())
	assert.Same(t, blog, c.Grid(cards.Blog))
	require.Len(t, blog.Cards, 1)
	assert.Equal(t, "A", blog.Cards[0].Title)

	assert.False(t, c.Refresh(), "nothing new to load")
}

func TestLoadDuringBuildIsRefreshed(t *testing.T) {
	cat := newFakeCatalog()
	cat.afterSnapshot = func() {
		cat.load(cards.Blog, cards.Card{URL: "posts/a.html", Title: "A"})
	}
	c := newController(t, cat, nil, nil)

	c.ShowBlog()
	blog := c.Grid(cards.Blog)
	assert.Empty(t, blog.Cards, "built from the snapshot taken before the load")

	assert.True(t, c.Refresh())
	require.Len(t, blog.Cards, 1)
	assert.Equal(t, "A", blog.Cards[0].Title)
}

func TestGridAttachedBeforeFooter(t *testing.T) {
	cat := newFakeCatalog()

	withFooter := New(Config{Catalog: cat, Page: NewPage(true)})
	withFooter.ShowBlog()
	sections := withFooter.Page().Sections()
	assert.Equal(t, SectionFooter, sections[len(sections)-1].Kind)
	assert.Equal(t, SectionGrid, sections[len(sections)-2].Kind)

	bare := New(Config{Catalog: cat, Page: NewPage(false)})
	bare.ShowBlog()
	sections = bare.Page().Sections()
	assert.Equal(t, SectionGrid, sections[len(sections)-1].Kind)
}

func TestCardsWithoutTemplateAreSkipped(t *testing.T) {
	cat := newFakeCatalog()
	cat.load(cards.Blog, cards.Card{Title: "A"}, cards.Card{Title: "B"})

	c := New(Config{Catalog: cat, Renderer: nil})
	c.ShowBlog()

	assert.Empty(t, c.Grid(cards.Blog).Cards)
	assert.Equal(t, StateBlog, c.State())
}

func TestLoadArticle(t *testing.T) {
	cat := newFakeCatalog()
	articles := &fakeArticles{pages: map[string]string{
		"posts/a.html": `<article><h1>Hello</h1><p>World</p></article>`,
	}}
	c := newController(t, cat, articles, nil)
	c.ShowLinks()

	require.NoError(t, c.LoadArticle(context.Background(), "posts/a.html"))
	assert.True(t, c.ArticleVisible())
	assert.Equal(t, StateArticle, c.State())
	assert.True(t, c.Grid(cards.Links).Hidden)

	a, url := c.Article()
	assert.Equal(t, "posts/a.html", url)
	assert.Equal(t, "Hello", a.Title)

	c.HideArticle()
	assert.False(t, c.ArticleVisible())
	assert.Equal(t, StateLinks, c.State(), "hiding does not change the last grid")
	assert.True(t, c.Grid(cards.Links).Hidden, "hiding does not restore a grid")

	c.CloseArticle()
	assert.Equal(t, StateBlog, c.State())
	assert.False(t, c.Grid(cards.Blog).Hidden)
}

func TestLoadArticleFailureLeavesView(t *testing.T) {
	cat := newFakeCatalog()
	articles := &fakeArticles{err: errors.New("connection refused")}
	c := newController(t, cat, articles, nil)
	c.ShowBlog()

	err := c.LoadArticle(context.Background(), "posts/missing.html")
	assert.Error(t, err)
	assert.False(t, c.ArticleVisible())
	assert.Equal(t, StateBlog, c.State())
	assert.False(t, c.Grid(cards.Blog).Hidden)
}

func TestActivate(t *testing.T) {
	cat := newFakeCatalog()
	cat.load(cards.Blog,
		cards.Card{URL: "posts/a.html", Title: "A"},
		cards.Card{URL: "https://example.com", Title: "B"},
	)
	articles := &fakeArticles{pages: map[string]string{"posts/a.html": "<p>a</p>"}}
	var opened []string
	c := newController(t, cat, articles, func(url string) error {
		opened = append(opened, url)
		return nil
	})
	c.ShowBlog()

	c.Select(1)
	require.NoError(t, c.Activate(context.Background()))
	assert.Equal(t, []string{"https://example.com"}, opened)
	assert.Empty(t, articles.calls)

	c.Select(-5)
	assert.Equal(t, 0, c.Cursor())
	require.NoError(t, c.Activate(context.Background()))
	assert.Equal(t, []string{"posts/a.html"}, articles.calls)
	assert.True(t, c.ArticleVisible())
	assert.Len(t, opened, 1)
}

func TestScrollClamps(t *testing.T) {
	c := newController(t, newFakeCatalog(), nil, nil)
	c.Scroll(-3, 10)
	assert.Equal(t, 0, c.ScrollOffset())
	c.Scroll(25, 10)
	assert.Equal(t, 10, c.ScrollOffset())
}

func TestSnapshot(t *testing.T) {
	cat := newFakeCatalog()
	cat.load(cards.Blog, cards.Card{URL: "posts/a.html", Title: "A"})
	c := newController(t, cat, &fakeArticles{pages: map[string]string{"posts/a.html": "<p>x</p>"}}, nil)

	c.ShowBlog()
	s := c.Snapshot()
	assert.Equal(t, StateBlog, s.State)
	assert.Len(t, s.Cards, 1)
	assert.Nil(t, s.Article)

	require.NoError(t, c.LoadArticle(context.Background(), "posts/a.html"))
	s = c.Snapshot()
	assert.Equal(t, StateArticle, s.State)
	assert.Empty(t, s.Cards)
	assert.NotNil(t, s.Article)
}
