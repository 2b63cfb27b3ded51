package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"mainframe/cards"
	"mainframe/config"
	"mainframe/render"
	"mainframe/theme"
)

// Run takes over the terminal and runs the site until the user quits or
// ctx is cancelled.
func (a *App) Run(ctx context.Context, in *os.File, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	term, err := render.NewTerminal(in)
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := term.EnterRawMode(); err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	defer term.RestoreMode()

	render.EnterAltScreen(out)
	defer render.ExitAltScreen(out)

	width, height, err := render.TerminalSize()
	if err != nil {
		return err
	}
	canvas := render.NewCanvas(width, height)

	// Handle terminal resize
	resizeCh := make(chan os.Signal, 1)
	signal.Notify(resizeCh, syscall.SIGWINCH)
	defer signal.Stop(resizeCh)

	input := make(chan []byte)
	go readInput(ctx, in, input)

	// Animates spinners while something is loading.
	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	a.start(ctx)

	redraw := func() {
		a.draw(canvas)
		if err := canvas.RenderTo(out); err != nil {
			a.log.Debug("render failed", zap.Error(err))
		}
	}

	dirty := true
	for {
		if dirty {
			redraw()
		}
		dirty = true

		select {
		case <-ctx.Done():
			return nil

		case b := <-input:
			for _, k := range DecodeKeys(b) {
				if !a.handleKey(ctx, k) {
					return nil
				}
			}

		case <-resizeCh:
			if w, h, err := render.TerminalSize(); err == nil && (w != width || h != height) {
				width, height = w, h
				canvas = render.NewCanvas(width, height)
			}

		case <-a.redraw:

		case <-ticker.C:
			dirty = a.animating()
		}
	}
}

// animating reports whether a spinner is on screen.
func (a *App) animating() bool {
	if a.loading.Load() {
		return true
	}
	select {
	case <-a.catalog.Ready():
		return false
	default:
		return a.revealed.Load()
	}
}

// readInput forwards terminal reads until ctx is done. Raw mode reads time
// out every 100ms, which is when cancellation is noticed.
func readInput(ctx context.Context, in io.Reader, out chan<- []byte) {
	buf := make([]byte, 64)
	for {
		n, err := in.Read(buf)
		if ctx.Err() != nil {
			return
		}
		if n == 0 {
			if err != nil && err != io.EOF {
				return
			}
			continue
		}
		b := make([]byte, n)
		copy(b, buf[:n])
		select {
		case out <- b:
		case <-ctx.Done():
			return
		}
	}
}

// handleKey applies one key press. It returns false to quit.
func (a *App) handleKey(ctx context.Context, k Key) bool {
	kb := a.cfg.Keybindings

	if k.Kind == KeyCtrlC {
		return false
	}

	// While the intro plays, any key skips it and is consumed.
	if a.console != nil && a.sequencer.Accepting() {
		a.sequencer.Skip()
		return true
	}
	if !a.revealed.Load() {
		return true
	}

	pressed := func(binding string) bool {
		return k.Kind == KeyRune && k.Rune < 0x80 && config.MatchSingle(byte(k.Rune), binding)
	}
	article := a.controller.ArticleVisible()

	switch {
	case pressed(kb.Quit):
		return false

	case pressed(kb.Blog):
		a.controller.ShowBlog()
	case pressed(kb.Links):
		a.controller.ShowLinks()
	case k.Kind == KeyF2:
		if a.fkeys.Value() {
			a.controller.ShowBlog()
		}
	case k.Kind == KeyF8:
		if a.fkeys.Value() {
			a.controller.ShowLinks()
		}

	case pressed(kb.ToggleTheme):
		a.theme.Toggle()
	case pressed(kb.ToggleFKeys):
		a.fkeys.Toggle()

	case pressed(kb.Close), k.Kind == KeyEsc:
		if article {
			a.controller.CloseArticle()
		}

	case pressed(kb.Down), k.Kind == KeyDown:
		a.move(article, 1)
	case pressed(kb.Up), k.Kind == KeyUp:
		a.move(article, -1)
	case k.Kind == KeyRight:
		if !article {
			a.controller.Select(1)
		}
	case k.Kind == KeyLeft:
		if !article {
			a.controller.Select(-1)
		}
	case k.Kind == KeyPageDown, pressed(" "):
		a.controller.Scroll(10, a.maxScroll)
	case k.Kind == KeyPageUp:
		a.controller.Scroll(-10, a.maxScroll)

	case k.Kind == KeyEnter:
		if !article {
			a.activate(ctx)
		}
	}
	return true
}

// move scrolls the article or moves the card cursor by one grid row.
func (a *App) move(article bool, dir int) {
	if article {
		a.controller.Scroll(dir, a.maxScroll)
		return
	}
	a.controller.Select(dir * max(a.cols, 1))
}

// activate follows the selected card without blocking input.
func (a *App) activate(ctx context.Context) {
	if !a.loading.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer func() {
			a.loading.Store(false)
			a.requestRedraw()
		}()
		// Failures are logged by the controller and leave the view as it was.
		_ = a.controller.Activate(ctx)
	}()
}

// Print waits for the catalog and writes the blog grid to w as plain text.
func (a *App) Print(ctx context.Context, w io.Writer, width int) error {
	a.catalog.Preload(ctx)
	if err := ctx.Err(); err != nil {
		return err
	}
	a.controller.ShowBlog()

	snap := a.controller.Snapshot()
	fmt.Fprintln(w, statusLine(cards.Blog, len(snap.Cards)))
	fmt.Fprintln(w)
	if len(snap.Cards) == 0 {
		return nil
	}

	c := renderCollection(theme.Current(), snap.Cards, width)
	_, err := io.WriteString(w, c.PlainText())
	return err
}
