package validate

import (
	"fmt"
	"strings"
)

// Kind is the shape an accepted input was classified as.
type Kind int

// Input kinds, in the order they are tried when a tool accepts several.
const (
	KindNone Kind = iota
	KindASN
	KindIPv4
	KindIPv6
	KindHostname
	KindRawHeader
)

// precedence is the fixed classification order. ASN comes first so that a
// bare integer on a field accepting both ASN and IP is read as an ASN.
var precedence = []Kind{KindASN, KindIPv4, KindIPv6, KindHostname, KindRawHeader}

// String returns the lowercase name used in JSON output and config.
func (k Kind) String() string {
	switch k {
	case KindASN:
		return "asn"
	case KindIPv4:
		return "ipv4"
	case KindIPv6:
		return "ipv6"
	case KindHostname:
		return "hostname"
	case KindRawHeader:
		return "header"
	default:
		return "none"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ParseKind converts a case-insensitive kind name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asn":
		return KindASN, nil
	case "ipv4":
		return KindIPv4, nil
	case "ipv6":
		return KindIPv6, nil
	case "hostname", "domain":
		return KindHostname, nil
	case "header":
		return KindRawHeader, nil
	default:
		return KindNone, fmt.Errorf("unknown input kind %q: must be one of asn, ipv4, ipv6, hostname, header", s)
	}
}

// noun describes what a set of kinds expects, for rejection messages.
func noun(accepts []Kind) string {
	var ip, asn, host, header bool
	for _, k := range accepts {
		switch k {
		case KindIPv4, KindIPv6:
			ip = true
		case KindASN:
			asn = true
		case KindHostname:
			host = true
		case KindRawHeader:
			header = true
		}
	}
	var parts []string
	if ip {
		parts = append(parts, "IP address")
	}
	if asn {
		parts = append(parts, "ASN")
	}
	if host {
		parts = append(parts, "domain name")
	}
	if header {
		parts = append(parts, "email header")
	}
	if len(parts) == 0 {
		return "value"
	}
	return strings.Join(parts, " or ")
}
