package cards

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Collection names a card set.
type Collection string

const (
	Blog  Collection = "blog"
	Links Collection = "links"
)

// Collections lists every collection in display order.
var Collections = []Collection{Blog, Links}

// Source fetches and decodes a JSON resource.
type Source interface {
	FetchJSON(ctx context.Context, ref string, v any) error
}

// Catalog holds the loaded card collections. A collection that has not
// loaded (or failed to) reads as empty.
type Catalog struct {
	src   Source
	log   *zap.Logger
	files map[Collection]string

	mu       sync.RWMutex
	sets     map[Collection][]Card
	versions map[Collection]int
	onLoaded func(Collection)

	ready     chan struct{}
	readyOnce sync.Once
}

// NewCatalog creates an empty catalog reading "<collection>.json" from src.
func NewCatalog(src Source, log *zap.Logger) *Catalog {
	if log == nil {
		log = zap.NewNop()
	}
	return &Catalog{
		src: src,
		log: log,
		files: map[Collection]string{
			Blog:  "blog.json",
			Links: "links.json",
		},
		sets:     make(map[Collection][]Card),
		versions: make(map[Collection]int),
		ready:    make(chan struct{}),
	}
}

// SetFile overrides the resource a collection is read from.
func (c *Catalog) SetFile(name Collection, ref string) {
	c.files[name] = ref
}

// OnLoaded registers fn to run (on the fetching goroutine) each time a
// collection finishes loading successfully.
func (c *Catalog) OnLoaded(fn func(Collection)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onLoaded = fn
}

// Preload fetches every collection concurrently and returns when all
// fetches have finished. Failures are logged and leave that collection
// empty; one failing collection never affects another.
func (c *Catalog) Preload(ctx context.Context) {
	var g errgroup.Group
	for _, name := range Collections {
		g.Go(func() error {
			c.load(ctx, name)
			return nil
		})
	}
	g.Wait()
	c.readyOnce.Do(func() { close(c.ready) })
}

func (c *Catalog) load(ctx context.Context, name Collection) {
	ref := c.files[name]

	var set []Card
	if err := c.src.FetchJSON(ctx, ref, &set); err != nil {
		c.log.Warn("card collection unavailable",
			zap.String("collection", string(name)),
			zap.String("ref", ref),
			zap.Error(err))
		return
	}

	c.mu.Lock()
	c.sets[name] = set
	c.versions[name]++
	fn := c.onLoaded
	c.mu.Unlock()

	c.log.Debug("card collection loaded",
		zap.String("collection", string(name)),
		zap.Int("cards", len(set)))

	if fn != nil {
		fn(name)
	}
}

// Cards returns a copy of the named collection as currently loaded.
func (c *Catalog) Cards(name Collection) []Card {
	c.mu.RLock()
	defer c.mu.RUnlock()
	set := c.sets[name]
	out := make([]Card, len(set))
	copy(out, set)
	return out
}

// Snapshot returns a copy of the named collection together with the
// version it was read at.
func (c *Catalog) Snapshot(name Collection) ([]Card, int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	set := c.sets[name]
	out := make([]Card, len(set))
	copy(out, set)
	return out, c.versions[name]
}

// Version counts successful loads of the named collection.
func (c *Catalog) Version(name Collection) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.versions[name]
}

// Ready is closed once the first Preload has finished.
func (c *Catalog) Ready() <-chan struct{} {
	return c.ready
}
