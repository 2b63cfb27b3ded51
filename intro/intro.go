// Package intro plays the boot-up typing sequence shown before the main
// page.
package intro

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

const banner = `///////////////////////////////////////////
/ ########  ##    ##  ########  ########  /
/ ##        ##    ##     ##     ##    ##  /
/ ##        ########     ##     ########  /
/ ##        ##    ##     ##     ##    ##  /
/ ########  ##    ##  ########  ##    ##  /
/               mainframe©                /
///////////////////////////////////////////`

const (
	lineInit    = "Initializing Chia Mainframe...."
	lineCheck   = "> SYSTEM CHECK: OK"
	lineLoading = "> Loading Content...."
)

// Lines is the boot sequence in display order.
var Lines = []string{
	banner,
	"Welcome to Manni-DM.Dev",
	lineInit,
	lineCheck,
	"> Access granted.",
	lineLoading,
}

// Timing holds the sequence delays.
type Timing struct {
	Typing      time.Duration // after each ordinary character
	Dot         time.Duration // after a dot in the loading lines
	SystemCheck time.Duration // after the colon of the system check
	Message     time.Duration // after each line
	Final       time.Duration // after the last line
	Transition  time.Duration // between completion and reveal
}

// DefaultTiming returns the stock delays.
func DefaultTiming() Timing {
	return Timing{
		Typing:      20 * time.Millisecond,
		Dot:         1500 * time.Millisecond,
		SystemCheck: 4000 * time.Millisecond,
		Message:     1000 * time.Millisecond,
		Final:       1000 * time.Millisecond,
		Transition:  500 * time.Millisecond,
	}
}

// delay returns the pause after typing r as part of line.
func (t Timing) delay(line string, r rune) time.Duration {
	switch {
	case r == '.' && (line == lineInit || line == lineLoading):
		return t.Dot
	case r == ':' && line == lineCheck:
		return t.SystemCheck
	default:
		return t.Typing
	}
}

// FullText is the console contents once every line has been typed.
func FullText(lines []string) string {
	return strings.Join(lines, "\n") + "\n"
}

// State is the sequencer lifecycle.
type State int32

const (
	Idle State = iota
	Running
	Skipped
	Completed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Skipped:
		return "skipped"
	case Completed:
		return "completed"
	}
	return "unknown"
}

// Options configures a Sequencer.
type Options struct {
	Lines  []string
	Timing Timing

	// After is the timer source; time.After when nil.
	After func(time.Duration) <-chan time.Time

	// Reveal runs once, after the transition delay, when the sequence
	// finishes or is skipped.
	Reveal func()
}

// Sequencer types lines into a Console one character at a time.
type Sequencer struct {
	lines   []string
	timing  Timing
	after   func(time.Duration) <-chan time.Time
	reveal  func()
	console *Console

	mu         sync.Mutex // orders console writes against Skip
	state      atomic.Int32
	skipped    atomic.Bool
	completing atomic.Bool
	skip       chan struct{}
	skipOnce   sync.Once
	complete   sync.Once
	done       chan struct{}
}

// New creates a sequencer writing to console. A nil console means there
// is nowhere to type, and Start reveals immediately.
func New(console *Console, o Options) *Sequencer {
	if o.Lines == nil {
		o.Lines = Lines
	}
	if o.After == nil {
		o.After = time.After
	}
	return &Sequencer{
		lines:   o.Lines,
		timing:  o.Timing,
		after:   o.After,
		reveal:  o.Reveal,
		console: console,
		skip:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Start begins typing on a new goroutine. Cancelling ctx abandons the
// sequence without revealing.
func (s *Sequencer) Start(ctx context.Context) {
	if s.console == nil {
		s.completing.Store(true)
		s.complete.Do(func() {
			s.state.Store(int32(Completed))
			s.finish()
		})
		return
	}
	if !s.state.CompareAndSwap(int32(Idle), int32(Running)) {
		return
	}
	go s.run(ctx)
}

func (s *Sequencer) run(ctx context.Context) {
	for _, line := range s.lines {
		for _, r := range line {
			if !s.write(string(r)) {
				return
			}
			if !s.wait(ctx, s.timing.delay(line, r)) {
				return
			}
		}
		if !s.write("\n") {
			return
		}
		if !s.wait(ctx, s.timing.Message) {
			return
		}
	}
	if !s.wait(ctx, s.timing.Final) {
		return
	}

	s.mu.Lock()
	if s.skipped.Load() {
		s.mu.Unlock()
		return
	}
	s.completing.Store(true)
	s.mu.Unlock()

	s.state.Store(int32(Completed))
	s.completeAsync(ctx)
}

// write appends to the console unless the sequence has been skipped.
func (s *Sequencer) write(text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.skipped.Load() {
		return false
	}
	s.console.Append(text)
	return true
}

// wait sleeps for d. It returns false when the sleep was cut short by a
// skip or by ctx.
func (s *Sequencer) wait(ctx context.Context, d time.Duration) bool {
	if s.skipped.Load() {
		return false
	}
	select {
	case <-s.after(d):
		return !s.skipped.Load()
	case <-s.skip:
		return false
	case <-ctx.Done():
		return false
	}
}

// Skip shows every line at once and moves to completion. It reports
// whether the call did anything; once the sequence has completed or been
// skipped further calls are no-ops, as are calls on a sequencer without a
// console, which reveals from Start.
func (s *Sequencer) Skip() bool {
	if s.console == nil {
		return false
	}
	s.mu.Lock()
	if s.completing.Load() || !s.skipped.CompareAndSwap(false, true) {
		s.mu.Unlock()
		return false
	}
	s.skipOnce.Do(func() { close(s.skip) })
	s.console.Set(FullText(s.lines))
	s.completing.Store(true)
	s.mu.Unlock()

	s.state.Store(int32(Skipped))
	s.completeAsync(context.Background())
	return true
}

func (s *Sequencer) completeAsync(ctx context.Context) {
	s.complete.Do(func() {
		go func() {
			select {
			case <-s.after(s.timing.Transition):
			case <-ctx.Done():
			}
			s.console.Hide()
			s.finish()
		}()
	})
}

func (s *Sequencer) finish() {
	if s.reveal != nil {
		s.reveal()
	}
	close(s.done)
}

// Accepting reports whether input should still be routed to Skip.
func (s *Sequencer) Accepting() bool {
	return !s.completing.Load()
}

// State returns the lifecycle state.
func (s *Sequencer) State() State {
	return State(s.state.Load())
}

// Done is closed after Reveal has run.
func (s *Sequencer) Done() <-chan struct{} {
	return s.done
}

// Console is the text surface the sequence types into.
type Console struct {
	mu     sync.Mutex
	text   strings.Builder
	hidden bool
	notify func()
}

// NewConsole creates an empty console. notify, if set, is called after
// every change.
func NewConsole(notify func()) *Console {
	return &Console{notify: notify}
}

// Append adds text to the console.
func (c *Console) Append(text string) {
	c.mu.Lock()
	c.text.WriteString(text)
	c.mu.Unlock()
	c.changed()
}

// Set replaces the console contents.
func (c *Console) Set(text string) {
	c.mu.Lock()
	c.text.Reset()
	c.text.WriteString(text)
	c.mu.Unlock()
	c.changed()
}

// Hide marks the console as no longer shown.
func (c *Console) Hide() {
	c.mu.Lock()
	c.hidden = true
	c.mu.Unlock()
	c.changed()
}

// Text returns the console contents.
func (c *Console) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text.String()
}

// Hidden reports whether the console has been hidden.
func (c *Console) Hidden() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hidden
}

func (c *Console) changed() {
	if c.notify != nil {
		c.notify()
	}
}
