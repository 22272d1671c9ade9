package tools

import (
	"fmt"
	"io"

	"github.com/tbckr/lookupkit/internal/output"
)

// Record is one DNS record returned by the host tool.
type Record struct {
	Type  Text `json:"type"`
	Value Text `json:"value"`
	TTL   Text `json:"ttl"`
}

// HostResult is the payload of the host tool.
type HostResult struct {
	rawPayload
	Domain  Text     `json:"domain"`
	IPs     TextList `json:"ip_addresses"`
	A       TextList `json:"a"`
	AAAA    TextList `json:"aaaa"`
	CNAME   TextList `json:"cname"`
	MX      TextList `json:"mx"`
	NS      TextList `json:"ns"`
	TXT     TextList `json:"txt"`
	Records []Record `json:"records"`
}

// Rows returns every record as type/value pairs: explicit records first, then
// the per-type lists in A, AAAA, CNAME, MX, NS, TXT order. Addresses from
// ip_addresses are reported as type "IP".
func (r *HostResult) Rows() [][]string {
	var rows [][]string
	for _, rec := range r.Records {
		rows = append(rows, []string{rec.Type.String(), rec.Value.String()})
	}
	lists := []struct {
		typ  string
		vals TextList
	}{
		{"IP", r.IPs},
		{"A", r.A},
		{"AAAA", r.AAAA},
		{"CNAME", r.CNAME},
		{"MX", r.MX},
		{"NS", r.NS},
		{"TXT", r.TXT},
	}
	for _, l := range lists {
		for _, v := range l.vals {
			rows = append(rows, []string{l.typ, v.String()})
		}
	}
	return rows
}

// IsEmpty returns true when no address or record was found.
func (r *HostResult) IsEmpty() bool {
	return len(r.Rows()) == 0
}

// WriteTable writes a Type/Value table grouped by record type.
func (r *HostResult) WriteTable(w io.Writer) error {
	rows := r.Rows()
	if len(rows) == 0 {
		return nil
	}
	for _, row := range rows {
		row[1] = output.Clean(row[1])
	}
	tbl := output.NewGroupedWrappingTable(w, 30, 16)
	tbl.Header([]string{"Type", "Value"})
	if err := tbl.Bulk(rows); err != nil {
		return err
	}
	return tbl.Render()
}

// WritePlain writes one "<type> <value>" line per record.
func (r *HostResult) WritePlain(w io.Writer) error {
	for _, row := range r.Rows() {
		if _, err := fmt.Fprintf(w, "%s %s\n", row[0], output.Clean(row[1])); err != nil {
			return err
		}
	}
	return nil
}
