// Package output renders lookup results as tables, plain text, or JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Format is the output format requested by the user.
type Format string

// Output format constants supported by the --output flag.
const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatPlain Format = "plain"
)

// Formats returns every supported format name, for help text and completion.
func Formats() []string {
	return []string{string(FormatTable), string(FormatJSON), string(FormatPlain)}
}

// ParseFormat converts a case-insensitive name into a Format.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatTable, FormatJSON, FormatPlain:
		return f, nil
	}
	return "", fmt.Errorf("invalid output format %q: must be one of: %s", s, strings.Join(Formats(), ", "))
}

// TableFormattable results know how to render themselves as a table.
type TableFormattable interface {
	WriteTable(w io.Writer) error
}

// PlainFormattable results render one record per line, for piping into other tools.
type PlainFormattable interface {
	WritePlain(w io.Writer) error
}

// Write dispatches a result to the formatter for format.
// JSON uses json.Encoder with indentation; results carrying a raw payload
// should implement json.Marshaler to pass it through untouched.
func Write(w io.Writer, format Format, result any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case FormatTable:
		tf, ok := result.(TableFormattable)
		if !ok {
			return fmt.Errorf("result type %T does not support table output", result)
		}
		return tf.WriteTable(w)
	case FormatPlain:
		pf, ok := result.(PlainFormattable)
		if !ok {
			return fmt.Errorf("result type %T does not support plain output", result)
		}
		return pf.WritePlain(w)
	default:
		return fmt.Errorf("unsupported output format: %q", format)
	}
}
