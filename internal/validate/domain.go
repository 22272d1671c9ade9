// Package validate classifies free-text lookup input before any network call is made.
package validate

import "regexp"

// domainRegexp validates RFC-compliant hostnames.
var domainRegexp = regexp.MustCompile(`^([a-zA-Z0-9]([a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}$`)

// IsDomain reports whether s is a valid RFC-compliant hostname.
// A single trailing dot (fully-qualified form) is accepted.
func IsDomain(s string) bool {
	if len(s) > 1 && s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return len(s) <= 253 && domainRegexp.MatchString(s)
}
