// Package app wires the site together: preference store, toggles, card
// catalog, view controller and intro, plus the terminal loop that drives
// them.
package app

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"mainframe/cards"
	"mainframe/config"
	"mainframe/fetcher"
	"mainframe/intro"
	"mainframe/kv"
	"mainframe/prefs"
	"mainframe/theme"
	"mainframe/view"
)

// Options control how an App is assembled.
type Options struct {
	// Intro plays the typing intro. Without it the page is revealed
	// immediately.
	Intro bool

	// Store overrides the preference store opened from the config.
	Store *kv.Store

	// Open overrides how external card links are opened.
	Open view.Opener
}

// App is the application context, constructed once per process.
type App struct {
	cfg *config.Config
	log *zap.Logger

	store *kv.Store
	db    *kv.SQLiteBackend

	client     *fetcher.Client
	catalog    *cards.Catalog
	controller *view.Controller
	theme      *prefs.Toggle
	fkeys      *prefs.Toggle

	console   *intro.Console
	sequencer *intro.Sequencer

	revealed  atomic.Bool
	loading   atomic.Bool
	redraw    chan struct{}
	maxScroll int // owned by the terminal loop
	cols      int // owned by the terminal loop
}

// New assembles an App from cfg.
func New(cfg *config.Config, log *zap.Logger, o Options) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	a := &App{
		cfg:    cfg,
		log:    log,
		redraw: make(chan struct{}, 1),
	}

	a.store = o.Store
	if a.store == nil {
		path, err := cfg.StorePath()
		if err != nil {
			log.Warn("no preference store path, using memory", zap.Error(err))
			a.store = kv.Memory()
		} else {
			a.store, a.db = kv.Open(path)
		}
	}
	if !a.store.Durable() {
		log.Info("preferences are kept in memory for this session")
	}

	client, err := fetcher.New(cfg.Site.Base, fetcher.Options{
		UserAgent:      cfg.Fetcher.UserAgent,
		TimeoutSeconds: cfg.Fetcher.TimeoutSeconds,
	})
	if err != nil {
		return nil, fmt.Errorf("site base: %w", err)
	}
	a.client = client

	a.catalog = cards.NewCatalog(client, log)
	a.catalog.SetFile(cards.Blog, cfg.Site.BlogFile)
	a.catalog.SetFile(cards.Links, cfg.Site.LinksFile)

	renderer, err := view.NewCardRenderer(cfg.Site.Domain, cfg.Site.CardLabel)
	if err != nil {
		return nil, err
	}

	open := o.Open
	if open == nil {
		open = a.openExternal
	}
	a.controller = view.New(view.Config{
		Catalog:  a.catalog,
		Renderer: renderer,
		Articles: client,
		Open:     open,
		Page:     view.NewPage(!cfg.Site.NoFooter),
		Logger:   log,
	})

	// Grids built before their collection arrived are filled in when it
	// does.
	a.catalog.OnLoaded(func(cards.Collection) {
		if a.controller.Refresh() {
			a.requestRedraw()
		}
	})

	kb := cfg.Keybindings
	a.theme = prefs.NewTheme(a.store, kb.ToggleTheme, theme.SystemPrefersDark)
	a.fkeys = prefs.NewFKeys(a.store, kb.ToggleFKeys)

	if o.Intro && !cfg.Intro.Disabled {
		a.console = intro.NewConsole(a.requestRedraw)
	}
	a.sequencer = intro.New(a.console, intro.Options{
		Timing: intro.Timing{
			Typing:      config.Ms(cfg.Intro.TypingMs),
			Dot:         config.Ms(cfg.Intro.DotMs),
			SystemCheck: config.Ms(cfg.Intro.SystemCheckMs),
			Message:     config.Ms(cfg.Intro.MessageMs),
			Final:       config.Ms(cfg.Intro.FinalMs),
			Transition:  config.Ms(cfg.Intro.TransitionMs),
		},
		Reveal: a.reveal,
	})

	return a, nil
}

// Close releases the preference database.
func (a *App) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// start kicks off the catalog preload and the intro. A panic here must
// not leave the screen stuck on the intro, so it forces the page visible.
func (a *App) start(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Error("initialization failed", zap.Any("panic", r), zap.Stack("stack"))
			a.forceReveal()
		}
	}()

	go a.catalog.Preload(ctx)
	a.sequencer.Start(ctx)
}

// reveal runs once when the intro finishes or is skipped.
func (a *App) reveal() {
	if _, ok := a.store.Get(prefs.ThemeKey); !ok {
		theme.Use(true)
	}
	a.revealed.Store(true)
	a.controller.ShowBlog()
	a.requestRedraw()
}

func (a *App) forceReveal() {
	if a.console != nil {
		a.console.Hide()
	}
	a.revealed.Store(true)
	a.controller.ShowBlog()
	a.requestRedraw()
}

func (a *App) requestRedraw() {
	select {
	case a.redraw <- struct{}{}:
	default:
	}
}

// Controller returns the view controller.
func (a *App) Controller() *view.Controller {
	return a.controller
}

// Catalog returns the card catalog.
func (a *App) Catalog() *cards.Catalog {
	return a.catalog
}
