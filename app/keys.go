package app

import "unicode/utf8"

// KeyKind classifies a decoded key press.
type KeyKind int

const (
	KeyRune KeyKind = iota
	KeyEnter
	KeyEsc
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyPageUp
	KeyPageDown
	KeyF2
	KeyF8
	KeyCtrlC
	KeyOther
)

// Key is one key press read from the terminal.
type Key struct {
	Kind KeyKind
	Rune rune // for KeyRune
}

// DecodeKeys splits raw terminal input into key presses. A read may hold
// several keys, e.g. when input is pasted or arrives faster than it is
// consumed.
func DecodeKeys(b []byte) []Key {
	var keys []Key
	for len(b) > 0 {
		k, n := decodeKey(b)
		keys = append(keys, k)
		b = b[n:]
	}
	return keys
}

func decodeKey(b []byte) (Key, int) {
	switch b[0] {
	case 0x1b:
		return decodeEscape(b)
	case '\r', '\n':
		return Key{Kind: KeyEnter}, 1
	case 0x03:
		return Key{Kind: KeyCtrlC}, 1
	}
	if b[0] < 0x20 || b[0] == 0x7f {
		return Key{Kind: KeyOther}, 1
	}
	r, n := utf8.DecodeRune(b)
	if r == utf8.RuneError {
		return Key{Kind: KeyOther}, n
	}
	return Key{Kind: KeyRune, Rune: r}, n
}

// decodeEscape handles ESC-prefixed sequences: SS3 (ESC O x) and CSI
// (ESC [ params final). A lone ESC is the escape key.
func decodeEscape(b []byte) (Key, int) {
	if len(b) < 2 {
		return Key{Kind: KeyEsc}, 1
	}

	switch b[1] {
	case 'O':
		if len(b) < 3 {
			return Key{Kind: KeyEsc}, 1
		}
		switch b[2] {
		case 'Q':
			return Key{Kind: KeyF2}, 3
		case 'A':
			return Key{Kind: KeyUp}, 3
		case 'B':
			return Key{Kind: KeyDown}, 3
		case 'C':
			return Key{Kind: KeyRight}, 3
		case 'D':
			return Key{Kind: KeyLeft}, 3
		}
		return Key{Kind: KeyOther}, 3

	case '[':
		// Parameters run until a final byte in 0x40-0x7e.
		end := 2
		for end < len(b) && (b[end] < 0x40 || b[end] > 0x7e) {
			end++
		}
		if end >= len(b) {
			return Key{Kind: KeyOther}, len(b)
		}
		params, final := string(b[2:end]), b[end]
		n := end + 1

		switch final {
		case 'A':
			return Key{Kind: KeyUp}, n
		case 'B':
			return Key{Kind: KeyDown}, n
		case 'C':
			return Key{Kind: KeyRight}, n
		case 'D':
			return Key{Kind: KeyLeft}, n
		case 'Q':
			if params == "1;1" || params == "" {
				return Key{Kind: KeyF2}, n
			}
		case '~':
			switch params {
			case "12":
				return Key{Kind: KeyF2}, n
			case "19":
				return Key{Kind: KeyF8}, n
			case "5":
				return Key{Kind: KeyPageUp}, n
			case "6":
				return Key{Kind: KeyPageDown}, n
			}
		}
		return Key{Kind: KeyOther}, n
	}

	return Key{Kind: KeyEsc}, 1
}
