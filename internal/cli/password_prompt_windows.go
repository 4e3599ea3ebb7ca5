//go:build windows

package cli

import (
	"os"

	"golang.org/x/sys/windows"
)

// readPasswordNoEcho turns console echo off for the duration of one line.
// Input that is not a console is read as is.
func readPasswordNoEcho(stdin *os.File) ([]byte, error) {
	if stdin == nil {
		return nil, errStdinUnavailable
	}

	handle := windows.Handle(stdin.Fd())
	var original uint32
	if err := windows.GetConsoleMode(handle, &original); err != nil {
		return readLine(stdin)
	}

	if err := windows.SetConsoleMode(handle, original&^windows.ENABLE_ECHO_INPUT); err != nil {
		return nil, err
	}
	defer func() {
		_ = windows.SetConsoleMode(handle, original)
	}()

	return readLine(stdin)
}
