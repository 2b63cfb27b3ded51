//go:build linux

package render

import "golang.org/x/sys/unix"

const (
	tcGetAttr = unix.TCGETS
	tcSetAttr = unix.TCSETS
)
