package render

import "time"

var brailleFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner is a time-driven braille loading indicator.
type Spinner struct {
	start    time.Time
	interval time.Duration
}

// NewSpinner creates a spinner that starts animating now.
func NewSpinner() *Spinner {
	return &Spinner{start: time.Now(), interval: 80 * time.Millisecond}
}

// Frame returns the frame for the current time.
func (s *Spinner) Frame() string {
	return s.FrameAt(time.Now())
}

// FrameAt returns the frame that is showing at t.
func (s *Spinner) FrameAt(t time.Time) string {
	n := int(t.Sub(s.start) / s.interval)
	if n < 0 {
		n = 0
	}
	return brailleFrames[n%len(brailleFrames)]
}
