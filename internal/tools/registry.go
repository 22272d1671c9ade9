// Package tools defines the lookup tools offered by the backend and decodes
// their payloads into results the output package can render.
package tools

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/tbckr/lookupkit/internal/lookup"
	"github.com/tbckr/lookupkit/internal/validate"
)

// Result is a decoded tool payload.
// MarshalJSON returns the payload exactly as received from the backend.
type Result interface {
	IsEmpty() bool
	WriteTable(w io.Writer) error
	WritePlain(w io.Writer) error
	MarshalJSON() ([]byte, error)
}

// Definition is one tool: its request shape plus how to decode its payload.
type Definition struct {
	lookup.Tool
	// Short is the one-line description shown in help and tool listings.
	Short   string
	Example string
	decode  func(payload json.RawMessage) (Result, error)
}

// Decode converts a successful payload into the tool's typed result.
// A payload whose shape does not match the tool falls back to a RawResult
// so that nothing the backend returned is lost.
func (d Definition) Decode(payload json.RawMessage) (Result, error) {
	res, err := d.decode(payload)
	if err != nil {
		return NewRawResult(payload), fmt.Errorf("decoding %s result: %w", d.Name, err)
	}
	return res, nil
}

// AcceptsString lists the accepted input kinds, e.g. "asn, ipv4, ipv6".
func (d Definition) AcceptsString() string {
	names := make([]string, 0, len(d.Accepts))
	for _, k := range d.Accepts {
		names = append(names, k.String())
	}
	return strings.Join(names, ", ")
}

var registry = []Definition{
	{
		Tool: lookup.Tool{
			Name: "ip", Method: http.MethodPost, Path: "/api/ip-lookup", Field: "ip",
			Accepts: []validate.Kind{validate.KindIPv4, validate.KindIPv6},
		},
		Short:   "Geolocate an IP address",
		Example: "lookupkit ip 8.8.8.8",
		decode:  decodeInto[IPResult],
	},
	{
		Tool: lookup.Tool{
			Name: "asn", Method: http.MethodPost, Path: "/api/asn-lookup", Field: "asn",
			Accepts: []validate.Kind{validate.KindASN, validate.KindIPv4, validate.KindIPv6},
		},
		Short:   "Look up the owner and prefixes of an ASN or the ASN announcing an IP",
		Example: "lookupkit asn AS15169\nlookupkit asn 1.1.1.1",
		decode:  decodeInto[ASNResult],
	},
	{
		Tool: lookup.Tool{
			Name: "rdns", Method: http.MethodPost, Path: "/api/reverse-dns", Field: "ip",
			Accepts: []validate.Kind{validate.KindIPv4, validate.KindIPv6},
		},
		Short:   "Resolve the PTR names of an IP address",
		Example: "lookupkit rdns 1.1.1.1",
		decode:  decodeInto[ReverseDNSResult],
	},
	{
		Tool: lookup.Tool{
			Name: "ipv6", Method: http.MethodPost, Path: "/api/ipv6-check", Field: "domain",
			Accepts: []validate.Kind{validate.KindHostname},
		},
		Short:   "Check whether a domain is reachable over IPv6",
		Example: "lookupkit ipv6 example.com",
		decode:  decodeInto[IPv6Result],
	},
	{
		Tool: lookup.Tool{
			Name: "email", Method: http.MethodPost, Path: "/api/email-trace", Field: "header",
			Accepts: []validate.Kind{validate.KindRawHeader},
		},
		Short:   "Trace the relay hops of a raw email header",
		Example: "lookupkit email < header.txt",
		decode:  decodeInto[EmailTraceResult],
	},
	{
		Tool: lookup.Tool{
			Name: "host", Method: http.MethodPost, Path: "/api/host-lookup", Field: "domain",
			Accepts: []validate.Kind{validate.KindHostname},
		},
		Short:   "Show the addresses and DNS records of a host",
		Example: "lookupkit host example.com",
		decode:  decodeInto[HostResult],
	},
}

// All returns every tool in display order.
func All() []Definition {
	return append([]Definition(nil), registry...)
}

// Names returns the sorted tool names.
func Names() []string {
	names := make([]string, 0, len(registry))
	for _, d := range registry {
		names = append(names, d.Name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the tool called name.
func Lookup(name string) (Definition, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, d := range registry {
		if d.Name == name {
			return d, true
		}
	}
	return Definition{}, false
}

// payloadResult is implemented by every typed result so the registry can
// attach the raw payload after decoding.
type payloadResult interface {
	Result
	setRaw(json.RawMessage)
}

func decodeInto[T any, PT interface {
	*T
	payloadResult
}](payload json.RawMessage) (Result, error) {
	var v T
	if err := json.Unmarshal(payload, &v); err != nil {
		return nil, err
	}
	p := PT(&v)
	p.setRaw(payload)
	return p, nil
}
