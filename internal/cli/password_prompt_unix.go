//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package cli

import (
	"os"

	"golang.org/x/sys/unix"
)

// readPasswordNoEcho turns terminal echo off for the duration of one line.
// Input that is not a terminal is read as is.
func readPasswordNoEcho(stdin *os.File) ([]byte, error) {
	if stdin == nil {
		return nil, errStdinUnavailable
	}

	fd := int(stdin.Fd())
	termios, err := unix.IoctlGetTermios(fd, termiosGetAttr)
	if err != nil {
		return readLine(stdin)
	}

	original := *termios
	silenced := original
	silenced.Lflag &^= unix.ECHO
	if err := unix.IoctlSetTermios(fd, termiosSetAttr, &silenced); err != nil {
		return nil, err
	}
	defer func() {
		_ = unix.IoctlSetTermios(fd, termiosSetAttr, &original)
	}()

	return readLine(stdin)
}
