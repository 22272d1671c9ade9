package tools

import (
	"fmt"
	"io"
	"strconv"

	"github.com/tbckr/lookupkit/internal/output"
)

// Hop is one Received header of a traced message, oldest first.
type Hop struct {
	Hop       Text `json:"hop"`
	From      Text `json:"from"`
	By        Text `json:"by"`
	With      Text `json:"with"`
	IP        Text `json:"ip"`
	Timestamp Text `json:"timestamp"`
	Delay     Text `json:"delay"`
}

// EmailTraceResult is the payload of the email tool.
type EmailTraceResult struct {
	rawPayload
	From      Text  `json:"from"`
	To        Text  `json:"to"`
	Subject   Text  `json:"subject"`
	Date      Text  `json:"date"`
	MessageID Text  `json:"message_id"`
	SPF       Text  `json:"spf"`
	DKIM      Text  `json:"dkim"`
	DMARC     Text  `json:"dmarc"`
	Hops      []Hop `json:"hops"`
}

// IsEmpty returns true when no hop and no summary field was extracted.
func (r *EmailTraceResult) IsEmpty() bool {
	if len(r.Hops) > 0 {
		return false
	}
	for _, f := range r.fields() {
		if f.Value != "" {
			return false
		}
	}
	return true
}

func (r *EmailTraceResult) fields() []output.Field {
	return []output.Field{
		{Label: "From", Value: r.From.String()},
		{Label: "To", Value: r.To.String()},
		{Label: "Subject", Value: r.Subject.String()},
		{Label: "Date", Value: r.Date.String()},
		{Label: "Message-ID", Value: r.MessageID.String()},
		{Label: "SPF", Value: r.SPF.String()},
		{Label: "DKIM", Value: r.DKIM.String()},
		{Label: "DMARC", Value: r.DMARC.String()},
	}
}

func (h Hop) number(i int) string {
	if h.Hop != "" {
		return h.Hop.String()
	}
	return strconv.Itoa(i + 1)
}

// WriteTable writes the message summary followed by the hop table.
func (r *EmailTraceResult) WriteTable(w io.Writer) error {
	if err := output.WriteFieldTable(w, r.fields()); err != nil {
		return err
	}
	if len(r.Hops) == 0 {
		return nil
	}
	tbl := output.NewWrappingTable(w, 16, 40)
	tbl.Header([]string{"Hop", "From", "By", "IP", "Time", "Delay"})
	rows := make([][]string, 0, len(r.Hops))
	for i, h := range r.Hops {
		rows = append(rows, []string{
			h.number(i),
			output.Clean(h.From.String()),
			output.Clean(h.By.String()),
			output.Clean(h.IP.String()),
			output.Clean(h.Timestamp.String()),
			output.Clean(h.Delay.String()),
		})
	}
	if err := tbl.Bulk(rows); err != nil {
		return err
	}
	return tbl.Render()
}

// WritePlain writes the summary lines, then one tab separated line per hop:
// "<hop> <from> <by> <ip>".
func (r *EmailTraceResult) WritePlain(w io.Writer) error {
	if err := output.WriteFieldLines(w, r.fields()); err != nil {
		return err
	}
	for i, h := range r.Hops {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			h.number(i),
			output.Clean(h.From.String()),
			output.Clean(h.By.String()),
			output.Clean(h.IP.String()),
		); err != nil {
			return err
		}
	}
	return nil
}
