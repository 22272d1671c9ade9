package tools

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/tbckr/lookupkit/internal/output"
)

// rawPayload keeps the backend payload for JSON output.
type rawPayload struct {
	raw json.RawMessage
}

func (p *rawPayload) setRaw(raw json.RawMessage) { p.raw = raw }

// MarshalJSON returns the payload exactly as received.
func (p *rawPayload) MarshalJSON() ([]byte, error) {
	if len(p.raw) == 0 {
		return []byte("null"), nil
	}
	return p.raw, nil
}

// RawResult renders a payload the typed results could not decode.
type RawResult struct {
	rawPayload
}

// NewRawResult wraps payload without decoding it.
func NewRawResult(payload json.RawMessage) *RawResult {
	return &RawResult{rawPayload{raw: payload}}
}

// IsEmpty reports whether the payload is empty or JSON null.
func (r *RawResult) IsEmpty() bool {
	trimmed := bytes.TrimSpace(r.raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// WriteTable writes the payload as indented JSON.
func (r *RawResult) WriteTable(w io.Writer) error {
	return r.WritePlain(w)
}

// WritePlain writes the payload as indented JSON.
func (r *RawResult) WritePlain(w io.Writer) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, r.raw, "", "  "); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, output.Clean(buf.String()))
	return err
}
