package tools

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Text decodes a JSON string, number, or boolean into its textual form.
// Backend fields such as ASN numbers and coordinates are not consistently
// typed across tools.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*t = Text(n.String())
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err != nil {
		return err
	}
	*t = Text(strconv.FormatBool(b))
	return nil
}

// String returns t as a plain string.
func (t Text) String() string { return string(t) }

// TextList decodes either a JSON array or a single scalar into a list.
type TextList []Text

// UnmarshalJSON implements json.Unmarshaler.
func (l *TextList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var items []Text
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*l = items
		return nil
	}
	var one Text
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	if one == "" {
		*l = nil
		return nil
	}
	*l = TextList{one}
	return nil
}

// Strings returns the list as plain strings.
func (l TextList) Strings() []string {
	out := make([]string, 0, len(l))
	for _, t := range l {
		out = append(out, string(t))
	}
	return out
}

// Join joins the list with sep.
func (l TextList) Join(sep string) string {
	return strings.Join(l.Strings(), sep)
}

func yesNo(b *bool) string {
	if b == nil {
		return ""
	}
	if *b {
		return "yes"
	}
	return "no"
}
