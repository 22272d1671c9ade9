package tools

import (
	"fmt"
	"io"

	"github.com/tbckr/lookupkit/internal/output"
)

// ReverseDNSResult is the payload of the rdns tool.
type ReverseDNSResult struct {
	rawPayload
	IP        Text     `json:"ip"`
	Hostnames TextList `json:"hostnames"`
	PTR       TextList `json:"ptr"`
}

// Names returns every PTR name without duplicates, in payload order.
func (r *ReverseDNSResult) Names() []string {
	seen := make(map[Text]struct{}, len(r.Hostnames)+len(r.PTR))
	var names []string
	for _, list := range []TextList{r.Hostnames, r.PTR} {
		for _, n := range list {
			if _, ok := seen[n]; ok || n == "" {
				continue
			}
			seen[n] = struct{}{}
			names = append(names, n.String())
		}
	}
	return names
}

// IsEmpty returns true when the address has no PTR names.
func (r *ReverseDNSResult) IsEmpty() bool {
	return len(r.Names()) == 0
}

// WriteTable writes an IP/Hostname table to w.
func (r *ReverseDNSResult) WriteTable(w io.Writer) error {
	names := r.Names()
	if len(names) == 0 {
		return nil
	}
	tbl := output.NewGroupedWrappingTable(w, 30, 24)
	tbl.Header([]string{"IP", "Hostname"})
	rows := make([][]string, 0, len(names))
	for _, n := range names {
		rows = append(rows, []string{output.Clean(r.IP.String()), output.Clean(n)})
	}
	if err := tbl.Bulk(rows); err != nil {
		return err
	}
	return tbl.Render()
}

// WritePlain writes one hostname per line.
func (r *ReverseDNSResult) WritePlain(w io.Writer) error {
	for _, n := range r.Names() {
		if _, err := fmt.Fprintln(w, output.Clean(n)); err != nil {
			return err
		}
	}
	return nil
}
