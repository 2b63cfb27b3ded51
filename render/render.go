// Package render provides terminal rendering primitives: a cell canvas,
// text measurement and wrapping, and raw-mode terminal control.
package render

import (
	"strings"
)

// Alignment specifies text alignment within a given width.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
	AlignCenter
)

// Cell represents a single character cell in the terminal.
type Cell struct {
	Rune  rune
	Style Style
}

// Style represents text styling for a cell.
type Style struct {
	Bold      bool
	Dim       bool
	Underline bool
	Reverse   bool

	FgRGB    [3]uint8
	UseFgRGB bool
	BgRGB    [3]uint8
	UseBgRGB bool
}

// With returns s with the attributes of o layered on top.
func (s Style) With(o Style) Style {
	s.Bold = s.Bold || o.Bold
	s.Dim = s.Dim || o.Dim
	s.Underline = s.Underline || o.Underline
	s.Reverse = s.Reverse || o.Reverse
	if o.UseFgRGB {
		s.FgRGB, s.UseFgRGB = o.FgRGB, true
	}
	if o.UseBgRGB {
		s.BgRGB, s.UseBgRGB = o.BgRGB, true
	}
	return s
}

// BoxStyle defines the characters used for drawing boxes.
type BoxStyle struct {
	TopLeft     rune
	TopRight    rune
	BottomLeft  rune
	BottomRight rune
	Horizontal  rune
	Vertical    rune
	TopTee      rune
	BottomTee   rune
	LeftTee     rune
	RightTee    rune
	Cross       rune
}

var (
	SingleBox = BoxStyle{
		TopLeft: '┌', TopRight: '┐', BottomLeft: '└', BottomRight: '┘',
		Horizontal: '─', Vertical: '│',
		TopTee: '┬', BottomTee: '┴', LeftTee: '├', RightTee: '┤', Cross: '┼',
	}

	RoundedBox = BoxStyle{
		TopLeft: '╭', TopRight: '╮', BottomLeft: '╰', BottomRight: '╯',
		Horizontal: '─', Vertical: '│',
		TopTee: '┬', BottomTee: '┴', LeftTee: '├', RightTee: '┤', Cross: '┼',
	}

	HeavyBox = BoxStyle{
		TopLeft: '┏', TopRight: '┓', BottomLeft: '┗', BottomRight: '┛',
		Horizontal: '━', Vertical: '┃',
		TopTee: '┳', BottomTee: '┻', LeftTee: '┣', RightTee: '┫', Cross: '╋',
	}
)

// UnicodeWidth returns the display width of a rune in terminal cells.
func UnicodeWidth(r rune) int {
	if r < 0x80 {
		if r < 0x20 || r == 0x7F {
			return 0
		}
		return 1
	}
	if isZeroWidth(r) {
		return 0
	}
	if isWideChar(r) {
		return 2
	}
	return 1
}

// StringWidth returns the display width of a string in terminal cells.
func StringWidth(s string) int {
	width := 0
	for _, r := range s {
		width += UnicodeWidth(r)
	}
	return width
}

func isZeroWidth(r rune) bool {
	return (r >= 0x0300 && r <= 0x036F) ||
		(r >= 0x1AB0 && r <= 0x1AFF) ||
		(r >= 0x20D0 && r <= 0x20FF) ||
		(r >= 0xFE00 && r <= 0xFE0F) ||
		r == 0x200B || r == 0x200C || r == 0x200D || r == 0xFEFF
}

func isWideChar(r rune) bool {
	return (r >= 0x1100 && r <= 0x115F) ||
		(r >= 0x2E80 && r <= 0x303E) ||
		(r >= 0x3041 && r <= 0x33FF) ||
		(r >= 0x3400 && r <= 0x4DBF) ||
		(r >= 0x4E00 && r <= 0x9FFF) ||
		(r >= 0xAC00 && r <= 0xD7A3) ||
		(r >= 0xF900 && r <= 0xFAFF) ||
		(r >= 0xFF01 && r <= 0xFF60) ||
		(r >= 0xFFE0 && r <= 0xFFE6) ||
		(r >= 0x1F300 && r <= 0x1F64F) ||
		(r >= 0x20000 && r <= 0x3FFFD)
}

// WrapText wraps text to fit within a given width in terminal cells.
// Explicit newlines are preserved; words wider than width are broken.
func WrapText(text string, width int) []string {
	if width <= 0 {
		return nil
	}

	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		var line strings.Builder
		lineWidth := 0
		for _, word := range words {
			wordWidth := StringWidth(word)
			switch {
			case lineWidth == 0 && wordWidth > width:
				lines = append(lines, breakWord(word, width)...)
			case lineWidth == 0:
				line.WriteString(word)
				lineWidth = wordWidth
			case lineWidth+1+wordWidth <= width:
				line.WriteByte(' ')
				line.WriteString(word)
				lineWidth += 1 + wordWidth
			default:
				lines = append(lines, line.String())
				line.Reset()
				lineWidth = 0
				if wordWidth > width {
					lines = append(lines, breakWord(word, width)...)
				} else {
					line.WriteString(word)
					lineWidth = wordWidth
				}
			}
		}
		if lineWidth > 0 {
			lines = append(lines, line.String())
		}
	}
	return lines
}

func breakWord(word string, maxWidth int) []string {
	var result []string
	var line strings.Builder
	lineWidth := 0
	for _, r := range word {
		w := UnicodeWidth(r)
		if lineWidth+w > maxWidth && lineWidth > 0 {
			result = append(result, line.String())
			line.Reset()
			lineWidth = 0
		}
		line.WriteRune(r)
		lineWidth += w
	}
	if line.Len() > 0 {
		result = append(result, line.String())
	}
	return result
}

// AlignText pads text to width according to the alignment.
func AlignText(text string, width int, align Alignment) string {
	textWidth := StringWidth(text)
	if textWidth >= width {
		return TruncateToWidth(text, width)
	}

	switch align {
	case AlignRight:
		return strings.Repeat(" ", width-textWidth) + text
	case AlignCenter:
		left := (width - textWidth) / 2
		right := width - textWidth - left
		return strings.Repeat(" ", left) + text + strings.Repeat(" ", right)
	default:
		return text + strings.Repeat(" ", width-textWidth)
	}
}

// TruncateToWidth truncates a string to fit within the specified width.
func TruncateToWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	width := 0
	for i, r := range s {
		w := UnicodeWidth(r)
		if width+w > maxWidth {
			return s[:i]
		}
		width += w
	}
	return s
}

// Truncate truncates a string adding an ellipsis if needed.
func Truncate(s string, width int) string {
	if StringWidth(s) <= width {
		return s
	}
	if width <= 1 {
		return TruncateToWidth(s, width)
	}
	return TruncateToWidth(s, width-1) + "…"
}

