//go:build linux

package cli

import "golang.org/x/sys/unix"

// Linux exposes termios through TCGETS and TCSETS.
const (
	termiosGetAttr = unix.TCGETS
	termiosSetAttr = unix.TCSETS
)
