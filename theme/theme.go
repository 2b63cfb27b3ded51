// Package theme provides the dark and light palettes for the terminal site.
package theme

import (
	"os"
	"strconv"
	"strings"
	"sync/atomic"

	"mainframe/render"
)

// Color represents an RGB color that can render to ANSI.
type Color struct {
	R, G, B uint8
}

// Theme defines the color palette of the page.
type Theme struct {
	Name string
	Dark bool

	Background Color
	Foreground Color
	Dim        Color
	Accent     Color // banner, selected card border

	// Card status indicators
	Internal Color
	Online   Color
	External Color

	// Console (intro) text
	Console Color

	// Icon is the glyph shown on the theme toggle.
	Icon string
}

// Style creates a render.Style with the given foreground color.
func (c Color) Style() render.Style {
	return render.Style{
		FgRGB:    [3]uint8{c.R, c.G, c.B},
		UseFgRGB: true,
	}
}

// StyleFgBg creates a render.Style with foreground and background colors.
func StyleFgBg(fg, bg Color) render.Style {
	return render.Style{
		FgRGB:    [3]uint8{fg.R, fg.G, fg.B},
		UseFgRGB: true,
		BgRGB:    [3]uint8{bg.R, bg.G, bg.B},
		UseBgRGB: true,
	}
}

// BaseStyle returns the page style for the theme.
func (t *Theme) BaseStyle() render.Style {
	return StyleFgBg(t.Foreground, t.Background)
}

// StatusColor returns the indicator color for a card status class
// ("internal", "online" or "external").
func (t *Theme) StatusColor(status string) Color {
	switch status {
	case "internal":
		return t.Internal
	case "online":
		return t.Online
	default:
		return t.External
	}
}

// Hex creates a Color from a hex string like "#RRGGBB" or "RRGGBB".
func Hex(s string) Color {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return Color{}
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}

// RGB creates a Color from RGB values.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// F-key indicator colors.
var (
	Enabled  = RGB(34, 197, 94)
	Disabled = RGB(239, 68, 68)
)

var (
	Dark = &Theme{
		Name:       "dark",
		Dark:       true,
		Background: Hex("0d1117"),
		Foreground: Hex("e0e0e0"),
		Dim:        Hex("6e7681"),
		Accent:     Hex("5fd7d7"),
		Internal:   Hex("d7af5f"),
		Online:     Hex("5fd75f"),
		External:   Hex("5f87d7"),
		Console:    Hex("33ff66"),
		Icon:       "☀",
	}

	Light = &Theme{
		Name:       "light",
		Dark:       false,
		Background: Hex("fafafa"),
		Foreground: Hex("1a1a1a"),
		Dim:        Hex("888888"),
		Accent:     Hex("00838f"),
		Internal:   Hex("f57c00"),
		Online:     Hex("2e7d32"),
		External:   Hex("1565c0"),
		Console:    Hex("1b5e20"),
		Icon:       "☾",
	}
)

var current atomic.Pointer[Theme]

func init() {
	current.Store(Dark)
}

// Current returns the active theme.
func Current() *Theme {
	return current.Load()
}

// Use makes the dark or light theme active.
func Use(dark bool) {
	if dark {
		current.Store(Dark)
	} else {
		current.Store(Light)
	}
}

// SystemPrefersDark reads the terminal's background hint from COLORFGBG
// ("fg;bg" or "fg;default;bg"). ok is false when no hint is available.
func SystemPrefersDark() (dark, ok bool) {
	return parseColorFGBG(os.Getenv("COLORFGBG"))
}

func parseColorFGBG(v string) (dark, ok bool) {
	if v == "" {
		return false, false
	}
	parts := strings.Split(v, ";")
	bg, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return false, false
	}
	// ANSI 0-6 and 8 are dark backgrounds; 7 and 9-15 are light.
	return bg <= 6 || bg == 8, true
}
