// Package input reads lookup inputs from stdin or files.
package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// MaxDocumentSize bounds Document; email headers larger than this are
// rejected rather than sent to the backend.
const MaxDocumentSize = 1 << 20

// Lines reads lines from r, trims whitespace, and returns non-empty lines.
// Blank lines and lines that are only whitespace are dropped.
func Lines(r io.Reader) ([]string, error) {
	var inputs []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxDocumentSize)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			inputs = append(inputs, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return inputs, nil
}

// Document reads all of r as a single input, for inputs that span lines such
// as a raw email header. Surrounding whitespace is trimmed.
func Document(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxDocumentSize+1))
	if err != nil {
		return "", err
	}
	if len(data) > MaxDocumentSize {
		return "", fmt.Errorf("input exceeds %d bytes", MaxDocumentSize)
	}
	return strings.TrimSpace(string(data)), nil
}

// IsTerminal reports whether r is an interactive terminal. Readers that are
// not files, such as pipes in tests, are never terminals.
func IsTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // file descriptors fit in int
}
