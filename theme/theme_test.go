package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHex(t *testing.T) {
	assert.Equal(t, RGB(0x0d, 0x11, 0x17), Hex("#0d1117"))
	assert.Equal(t, RGB(0xff, 0xd7, 0x00), Hex("FFD700"))
	assert.Equal(t, Color{}, Hex("nope"))
}

func TestParseColorFGBG(t *testing.T) {
	tests := []struct {
		in   string
		dark bool
		ok   bool
	}{
		{"", false, false},
		{"15;0", true, true},
		{"0;15", false, true},
		{"12;default;8", true, true},
		{"7;default", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			dark, ok := parseColorFGBG(tt.in)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.dark, dark)
			}
		})
	}
}

func TestUse(t *testing.T) {
	t.Cleanup(func() { Use(true) })

	Use(false)
	assert.Same(t, Light, Current())
	Use(true)
	assert.Same(t, Dark, Current())
}

func TestStatusColor(t *testing.T) {
	assert.Equal(t, Dark.Internal, Dark.StatusColor("internal"))
	assert.Equal(t, Dark.Online, Dark.StatusColor("online"))
	assert.Equal(t, Dark.External, Dark.StatusColor("external"))
}
