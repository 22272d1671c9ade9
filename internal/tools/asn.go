package tools

import (
	"fmt"
	"io"

	"github.com/tbckr/lookupkit/internal/output"
)

// ASNResult is the payload of the asn tool.
type ASNResult struct {
	rawPayload
	ASN         Text     `json:"asn"`
	Name        Text     `json:"name"`
	Description Text     `json:"description"`
	Country     Text     `json:"country"`
	Registry    Text     `json:"registry"`
	Allocated   Text     `json:"allocated"`
	Prefix      Text     `json:"prefix"`
	Prefixes    TextList `json:"prefixes"`
	PrefixesV6  TextList `json:"prefixes_v6"`
}

// IsEmpty returns true when neither a name nor a prefix is known.
func (r *ASNResult) IsEmpty() bool {
	return r.Name == "" && r.Description == "" && r.Prefix == "" &&
		len(r.Prefixes) == 0 && len(r.PrefixesV6) == 0
}

func (r *ASNResult) fields() []output.Field {
	return []output.Field{
		{Label: "ASN", Value: r.ASN.String()},
		{Label: "Name", Value: r.Name.String()},
		{Label: "Description", Value: r.Description.String()},
		{Label: "Country", Value: r.Country.String()},
		{Label: "Registry", Value: r.Registry.String()},
		{Label: "Allocated", Value: r.Allocated.String()},
		{Label: "Prefix", Value: r.Prefix.String()},
	}
}

// WriteTable writes the ASN details followed by a prefix table.
func (r *ASNResult) WriteTable(w io.Writer) error {
	if err := output.WriteFieldTable(w, r.fields()); err != nil {
		return err
	}
	if len(r.Prefixes) == 0 && len(r.PrefixesV6) == 0 {
		return nil
	}
	tbl := output.NewGroupedWrappingTable(w, 20, 16)
	tbl.Header([]string{"Family", "Prefix"})
	rows := make([][]string, 0, len(r.Prefixes)+len(r.PrefixesV6))
	for _, p := range r.Prefixes {
		rows = append(rows, []string{"IPv4", output.Clean(p.String())})
	}
	for _, p := range r.PrefixesV6 {
		rows = append(rows, []string{"IPv6", output.Clean(p.String())})
	}
	if err := tbl.Bulk(rows); err != nil {
		return err
	}
	return tbl.Render()
}

// WritePlain writes the details as "Field: value" lines, then one prefix per line.
func (r *ASNResult) WritePlain(w io.Writer) error {
	if err := output.WriteFieldLines(w, r.fields()); err != nil {
		return err
	}
	for _, p := range append(append(TextList(nil), r.Prefixes...), r.PrefixesV6...) {
		if _, err := fmt.Fprintln(w, output.Clean(p.String())); err != nil {
			return err
		}
	}
	return nil
}
