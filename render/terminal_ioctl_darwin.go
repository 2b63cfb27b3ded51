//go:build darwin

package render

import "golang.org/x/sys/unix"

// termios requests differ between BSD-derived kernels and Linux.
const (
	tcGetAttr = unix.TIOCGETA
	tcSetAttr = unix.TIOCSETA
)
