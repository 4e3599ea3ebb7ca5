//go:build darwin || freebsd || netbsd || openbsd || dragonfly

package cli

import "golang.org/x/sys/unix"

// BSD-derived kernels, darwin included, use TIOCGETA and TIOCSETA.
const (
	termiosGetAttr = unix.TIOCGETA
	termiosSetAttr = unix.TIOCSETA
)
