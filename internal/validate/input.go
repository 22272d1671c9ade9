package validate

import (
	"net/netip"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/tbckr/lookupkit/internal/apperr"
)

// DefaultMinHeaderLength is the shortest raw email header accepted. It is a
// coarse completeness check, not a correctness proof.
const DefaultMinHeaderLength = 50

var (
	// ipv4Shape permits any digit count per octet; the octet bound is checked separately.
	ipv4Shape = regexp.MustCompile(`^\d+\.\d+\.\d+\.\d+$`)
	// ipv6Shape is the uncompressed form: exactly 7 colons, each group 0-4 hex digits.
	ipv6Shape = regexp.MustCompile(`^([0-9a-fA-F]{0,4}:){7}[0-9a-fA-F]{0,4}$`)
	asnShape  = regexp.MustCompile(`^(?i:AS)?(\d+)$`)
)

// Reason says why input was rejected.
type Reason int

// Rejection reasons. ReasonNone is used for accepted input.
const (
	ReasonNone Reason = iota
	ReasonMissingInput
	ReasonMalformedInput
)

// String returns the snake_case reason name.
func (r Reason) String() string {
	switch r {
	case ReasonMissingInput:
		return "missing_input"
	case ReasonMalformedInput:
		return "malformed_input"
	default:
		return "none"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (r Reason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Result is the outcome of validating one input.
type Result struct {
	Accepted bool   `json:"accepted"`
	Kind     Kind   `json:"kind"`
	Value    string `json:"value,omitempty"`
	Reason   Reason `json:"reason,omitempty"`
	Message  string `json:"message,omitempty"`
}

// Err returns nil for accepted input, otherwise an error wrapping
// apperr.ErrMissingInput or apperr.ErrMalformedInput whose text is Message.
func (r Result) Err() error {
	switch r.Reason {
	case ReasonMissingInput:
		return &apperr.RequestError{Kind: apperr.ErrMissingInput, Message: r.Message}
	case ReasonMalformedInput:
		return &apperr.RequestError{Kind: apperr.ErrMalformedInput, Message: r.Message}
	}
	return nil
}

// Validator classifies input. The zero value is not usable; call New.
type Validator struct {
	compressedIPv6  bool
	strictHostnames bool
	minHeaderLength int
}

// Option configures a Validator.
type Option func(*Validator)

// AllowCompressedIPv6 controls whether zero-compressed IPv6 addresses such as
// "2001:4860:4860::8888" are accepted. When false only the full 8-group form
// matches.
func AllowCompressedIPv6(allow bool) Option {
	return func(v *Validator) { v.compressedIPv6 = allow }
}

// StrictHostnames controls whether hostname input must also be an RFC-style
// dotted domain name (see IsDomain). When false any non-empty text is
// accepted as a hostname.
func StrictHostnames(strict bool) Option {
	return func(v *Validator) { v.strictHostnames = strict }
}

// MinHeaderLength overrides DefaultMinHeaderLength.
func MinHeaderLength(n int) Option {
	return func(v *Validator) {
		if n > 0 {
			v.minHeaderLength = n
		}
	}
}

// New returns a Validator. Without options it keeps the strict uncompressed
// IPv6 rule.
func New(opts ...Option) *Validator {
	v := &Validator{minHeaderLength: DefaultMinHeaderLength}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

var defaultValidator = New()

// Validate classifies text with the default strict Validator.
func Validate(text string, accepts ...Kind) Result {
	return defaultValidator.Validate(text, accepts...)
}

// Validate classifies text as the first kind in precedence order that is both
// listed in accepts and matches. It never performs I/O.
func (v *Validator) Validate(text string, accepts ...Kind) Result {
	trimmed := strings.TrimSpace(text)
	what := noun(accepts)
	if trimmed == "" {
		return Result{
			Kind:    KindNone,
			Reason:  ReasonMissingInput,
			Message: "Please enter " + article(what) + " " + what,
		}
	}

	for _, k := range precedence {
		if !contains(accepts, k) {
			continue
		}
		if value, ok := v.match(k, trimmed); ok {
			return Result{Accepted: true, Kind: k, Value: value}
		}
	}

	msg := "Please enter a valid " + what
	if len(accepts) == 1 && accepts[0] == KindRawHeader {
		msg = "Email header looks incomplete. Please paste the full header"
	}
	return Result{Kind: KindNone, Reason: ReasonMalformedInput, Message: msg}
}

func (v *Validator) match(k Kind, s string) (string, bool) {
	switch k {
	case KindASN:
		if n, ok := ParseASN(s); ok {
			return "AS" + n, true
		}
	case KindIPv4:
		if IsIPv4(s) {
			return s, true
		}
	case KindIPv6:
		if v.isIPv6(s) {
			return s, true
		}
	case KindHostname:
		if !v.strictHostnames || IsDomain(s) {
			return normalizeHostname(s), true
		}
	case KindRawHeader:
		if utf8.RuneCountInString(s) >= v.minHeaderLength {
			return s, true
		}
	}
	return "", false
}

// normalizeHostname lowercases s and drops a single trailing dot.
func normalizeHostname(s string) string {
	if len(s) > 1 && s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return strings.ToLower(s)
}

func (v *Validator) isIPv6(s string) bool {
	if IsIPv6(s) {
		return true
	}
	if !v.compressedIPv6 || !strings.Contains(s, ":") {
		return false
	}
	addr, err := netip.ParseAddr(s)
	return err == nil && addr.Is6() && addr.Zone() == ""
}

// IsIPv4 reports whether s is four dot-separated decimal groups each in [0,255].
// Both the shape and the per-octet bound must hold.
func IsIPv4(s string) bool {
	if !ipv4Shape.MatchString(s) {
		return false
	}
	for _, octet := range strings.Split(s, ".") {
		n, err := strconv.Atoi(octet)
		if err != nil || n < 0 || n > 255 {
			return false
		}
	}
	return true
}

// IsIPv6 reports whether s is an uncompressed IPv6 address: exactly 7 colons
// and 8 groups of 0-4 hex digits. Zero-compressed "::" forms do not match.
func IsIPv6(s string) bool {
	return ipv6Shape.MatchString(s)
}

// ParseASN returns the digit part of an ASN written as "AS<digits>" (any case)
// or as a bare integer.
func ParseASN(s string) (string, bool) {
	m := asnShape.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// IsASN reports whether s is an ASN in either accepted notation.
func IsASN(s string) bool {
	_, ok := ParseASN(s)
	return ok
}

// NormalizeASN returns the canonical "AS<digits>" form, or "" if s is not an ASN.
func NormalizeASN(s string) string {
	n, ok := ParseASN(s)
	if !ok {
		return ""
	}
	return "AS" + n
}

func contains(kinds []Kind, k Kind) bool {
	for _, c := range kinds {
		if c == k {
			return true
		}
	}
	return false
}

func article(what string) string {
	switch what[0] {
	case 'A', 'E', 'I', 'O', 'U', 'a', 'e', 'i', 'o', 'u':
		return "an"
	}
	return "a"
}
