package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminalWidth_NonTerminal(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, defaultTermWidth, TerminalWidth(&buf))
}

func TestWriteFieldTable_SkipsEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFieldTable(&buf, []Field{
		{"IP", "8.8.8.8"},
		{"City", ""},
		{"Country", "US"},
	}))
	out := buf.String()
	assert.Contains(t, out, "8.8.8.8")
	assert.Contains(t, out, "Country")
	assert.NotContains(t, out, "City")
}

func TestWriteFieldTable_AllEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFieldTable(&buf, []Field{{"City", ""}}))
	assert.Empty(t, buf.String())
}

func TestWriteFieldLines(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFieldLines(&buf, []Field{
		{"IP", "8.8.8.8"},
		{"City", ""},
		{"Org", "\x1b[31mGoogle\x1b[0m"},
	}))
	assert.Equal(t, "IP: 8.8.8.8\nOrg: Google\n", buf.String())
}
