package cli

import (
	"errors"
	"io"
)

var errStdinUnavailable = errors.New("stdin unavailable")

// readLine reads up to and excluding the next newline one byte at a time so
// that consecutive prompts on the same stream never lose buffered input.
func readLine(reader io.Reader) ([]byte, error) {
	line := make([]byte, 0, 32)
	buffer := make([]byte, 1)
	for {
		read, err := reader.Read(buffer)
		if read == 1 {
			if buffer[0] == '\n' {
				break
			}
			line = append(line, buffer[0])
		}
		if errors.Is(err, io.EOF) {
			if len(line) == 0 {
				return nil, io.ErrUnexpectedEOF
			}
			break
		}
		if err != nil {
			return nil, err
		}
	}

	if length := len(line); length > 0 && line[length-1] == '\r' {
		line = line[:length-1]
	}
	return line, nil
}
