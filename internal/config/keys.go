package config

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/tbckr/lookupkit/internal/apiclient"
	"github.com/tbckr/lookupkit/internal/httpclient"
	"github.com/tbckr/lookupkit/internal/output"
)

// ErrUnknownKey is returned for a key that is not a config setting.
var ErrUnknownKey = errors.New("unknown config key")

type keyKind int

const (
	kindString keyKind = iota
	kindBool
	kindInt
	kindDuration
	kindURL
)

type key struct {
	name  string
	kind  keyKind
	def   any
	enum  func() []string
	usage string
}

// flag returns the command-line flag bound to the key.
func (k key) flag() string { return strings.ReplaceAll(k.name, "_", "-") }

var keys = []key{
	{name: "api_url", kind: kindURL, def: DefaultAPIURL, usage: "base URL of the analysis backend"},
	{name: "timeout", kind: kindDuration, def: apiclient.DefaultTimeout, usage: "per-request timeout"},
	{name: "proxy", kind: kindString, def: "", usage: "proxy URL"},
	{name: "user_agent", kind: kindString, def: "", usage: "HTTP User-Agent"},
	{name: "tls_fingerprint", kind: kindString, def: "", enum: httpclient.PresetNames, usage: "TLS client fingerprint"},
	{name: "output", kind: kindString, def: string(output.FormatTable), enum: output.Formats, usage: "output format"},
	{name: "verbose", kind: kindBool, def: false, usage: "debug logging"},
	{name: "concurrency", kind: kindInt, def: DefaultConcurrency, usage: "parallel lookups for bulk input"},
	{name: "ipv6_compressed", kind: kindBool, def: true, usage: "accept zero-compressed IPv6 addresses"},
	{name: "strict_hostnames", kind: kindBool, def: false, usage: "require hostnames to be dotted domain names"},
	{name: "listen", kind: kindString, def: DefaultListen, usage: "serve listen address"},
}

func findKey(name string) (key, error) {
	name = strings.ReplaceAll(strings.TrimSpace(name), "-", "_")
	for _, k := range keys {
		if k.name == name {
			return k, nil
		}
	}
	return key{}, fmt.Errorf("%w: %q (valid keys: %s)", ErrUnknownKey, name, strings.Join(ValidKeys(), ", "))
}

// ValidKeys returns every settable key in canonical (underscore) form.
func ValidKeys() []string {
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		names = append(names, k.name)
	}
	return names
}

// NormalizeKey returns the canonical form of a key given with hyphens or underscores.
func NormalizeKey(name string) (string, error) {
	k, err := findKey(name)
	if err != nil {
		return "", err
	}
	return k.name, nil
}

// ValidateKey returns ErrUnknownKey for keys that are not config settings.
func ValidateKey(name string) error {
	_, err := findKey(name)
	return err
}

// ParseValue converts a command-line string into the typed value stored in
// the config file for name. Durations are stored in their canonical string
// form, e.g. "1m30s".
func ParseValue(name, value string) (any, error) {
	k, err := findKey(name)
	if err != nil {
		return nil, err
	}
	switch k.kind {
	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q for %s: must be true or false", value, k.name)
		}
		return b, nil
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid value %q for %s: must be a positive integer", value, k.name)
		}
		return n, nil
	case kindDuration:
		d, err := time.ParseDuration(value)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid value %q for %s: must be a positive duration such as 10s", value, k.name)
		}
		return d.String(), nil
	case kindURL:
		if err := validateAPIURL(value); err != nil {
			return nil, err
		}
		return value, nil
	}
	if k.enum != nil {
		allowed := k.enum()
		v := strings.ToLower(value)
		if !slices.Contains(allowed, v) && !(v == "" && k.name == "tls_fingerprint") {
			return nil, fmt.Errorf("invalid value %q for %s: must be one of: %s", value, k.name, strings.Join(allowed, ", "))
		}
		return v, nil
	}
	return value, nil
}

// KeyCompletions returns "key\tusage" completion candidates for config get/set.
func KeyCompletions() []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k.name+"\t"+k.usage)
	}
	return out
}

// ValueCompletions returns candidate values for name, or nil for free-form keys.
func ValueCompletions(name string) []string {
	k, err := findKey(name)
	if err != nil {
		return nil
	}
	switch {
	case k.kind == kindBool:
		return []string{"true", "false"}
	case k.enum != nil:
		return k.enum()
	}
	return nil
}
