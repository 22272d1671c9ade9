package input_test

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbckr/lookupkit/internal/input"
)

func TestLines_Basic(t *testing.T) {
	r := strings.NewReader("example.com\ngoogle.com\n")
	inputs, err := input.Lines(r)
	require.NoError(t, err)
	assert.Equal(t, []string{"example.com", "google.com"}, inputs)
}

func TestLines_TrimsWhitespace(t *testing.T) {
	r := strings.NewReader("  example.com  \n\tgoogle.com\t\n")
	inputs, err := input.Lines(r)
	require.NoError(t, err)
	assert.Equal(t, []string{"example.com", "google.com"}, inputs)
}

func TestLines_DropsEmptyLines(t *testing.T) {
	r := strings.NewReader("example.com\n\n\ngoogle.com\n")
	inputs, err := input.Lines(r)
	require.NoError(t, err)
	assert.Equal(t, []string{"example.com", "google.com"}, inputs)
}

func TestLines_Empty(t *testing.T) {
	r := strings.NewReader("")
	inputs, err := input.Lines(r)
	require.NoError(t, err)
	assert.Nil(t, inputs)
}

func TestLines_WhitespaceOnly(t *testing.T) {
	r := strings.NewReader("   \n\t\n  \n")
	inputs, err := input.Lines(r)
	require.NoError(t, err)
	assert.Nil(t, inputs)
}

func TestLines_NoTrailingNewline(t *testing.T) {
	r := strings.NewReader("example.com")
	inputs, err := input.Lines(r)
	require.NoError(t, err)
	assert.Equal(t, []string{"example.com"}, inputs)
}

func TestLines_LongLine(t *testing.T) {
	long := strings.Repeat("a", 100*1024)
	inputs, err := input.Lines(strings.NewReader(long + "\n"))
	require.NoError(t, err)
	require.Len(t, inputs, 1)
	assert.Len(t, inputs[0], len(long))
}

func TestDocument_KeepsInnerLines(t *testing.T) {
	header := "\nReceived: from a.example (a.example [192.0.2.1])\n\tby b.example\nSubject: hi\n\n"
	doc, err := input.Document(strings.NewReader(header))
	require.NoError(t, err)
	assert.Equal(t, "Received: from a.example (a.example [192.0.2.1])\n\tby b.example\nSubject: hi", doc)
}

func TestDocument_TooLarge(t *testing.T) {
	_, err := input.Document(bytes.NewReader(make([]byte, input.MaxDocumentSize+1)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds")
}

func TestIsTerminal_NonFile(t *testing.T) {
	assert.False(t, input.IsTerminal(strings.NewReader("x")))
}

func TestIsTerminal_Pipe(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = r.Close()
		_ = w.Close()
	})
	assert.False(t, input.IsTerminal(r))
}
