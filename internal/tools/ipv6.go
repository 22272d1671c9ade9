package tools

import (
	"io"

	"github.com/tbckr/lookupkit/internal/output"
)

// IPv6Result is the payload of the ipv6 tool.
type IPv6Result struct {
	rawPayload
	Domain      Text     `json:"domain"`
	Supported   *bool    `json:"ipv6_supported"`
	Reachable   *bool    `json:"ipv6_reachable"`
	AAAARecords TextList `json:"aaaa_records"`
	ARecords    TextList `json:"a_records"`
	Message     Text     `json:"message"`
}

// IsEmpty returns true when the payload carries no verdict and no records.
func (r *IPv6Result) IsEmpty() bool {
	return r.Supported == nil && r.Reachable == nil &&
		len(r.AAAARecords) == 0 && len(r.ARecords) == 0 && r.Message == ""
}

func (r *IPv6Result) fields() []output.Field {
	return []output.Field{
		{Label: "Domain", Value: r.Domain.String()},
		{Label: "IPv6 Supported", Value: yesNo(r.Supported)},
		{Label: "IPv6 Reachable", Value: yesNo(r.Reachable)},
		{Label: "AAAA", Value: r.AAAARecords.Join("\n")},
		{Label: "A", Value: r.ARecords.Join("\n")},
		{Label: "Message", Value: r.Message.String()},
	}
}

// WriteTable writes a Field/Value table to w.
func (r *IPv6Result) WriteTable(w io.Writer) error {
	return output.WriteFieldTable(w, r.fields())
}

// WritePlain writes one "Field: value" line per populated field; record lists
// are comma separated.
func (r *IPv6Result) WritePlain(w io.Writer) error {
	fields := r.fields()
	fields[3].Value = r.AAAARecords.Join(", ")
	fields[4].Value = r.ARecords.Join(", ")
	return output.WriteFieldLines(w, fields)
}
