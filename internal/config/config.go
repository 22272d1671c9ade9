// Package config loads lookupkit settings from flags, LOOKUPKIT_* environment
// variables, and the YAML config file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/tbckr/lookupkit/internal/apiclient"
	"github.com/tbckr/lookupkit/internal/appdir"
	"github.com/tbckr/lookupkit/internal/output"
)

// Default values for keys not set anywhere else.
const (
	DefaultAPIURL      = "http://127.0.0.1:8000"
	DefaultConcurrency = 10
	DefaultListen      = "127.0.0.1:8080"
	envPrefix          = "LOOKUPKIT"
)

// Config is the resolved configuration.
type Config struct {
	ConfigFile      string
	APIURL          string
	Timeout         time.Duration
	Proxy           string
	UserAgent       string
	TLSFingerprint  string
	Output          string
	Verbose         bool
	Concurrency     int
	IPv6Compressed  bool
	StrictHostnames bool
	Listen          string
}

// DefaultConfigPath returns the path of config.yaml in the OS config dir.
func DefaultConfigPath() (string, error) {
	dir, err := appdir.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// RegisterFlags adds the global flags to flags. They are meant to be
// registered as persistent flags on the root command.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "config file (default: OS config dir/lookupkit/config.yaml)")
	flags.BoolP("verbose", "v", false, "enable debug logging")
	flags.StringP("output", "o", string(output.FormatTable), "output format: table, json, plain")
	flags.String("api-url", DefaultAPIURL, "base URL of the analysis backend")
	flags.Duration("timeout", apiclient.DefaultTimeout, "per-request timeout")
	flags.String("proxy", "", "proxy URL (http://, https://, socks5://)")
	flags.String("user-agent", "", "override the HTTP User-Agent")
	flags.String("tls-fingerprint", "", "TLS client fingerprint (chrome, firefox, safari, edge, ios, android, randomized)")
	flags.IntP("concurrency", "c", DefaultConcurrency, "parallel lookups for bulk input")
	flags.Bool("ipv6-compressed", true, "accept zero-compressed IPv6 addresses such as 2001:db8::1")
	flags.Bool("strict-hostnames", false, "reject hostnames that are not dotted domain names such as example.com")
}

// Load resolves the configuration. The config file named by --config, or the
// default path, is created empty with 0600 permissions when missing.
func Load(flags *pflag.FlagSet) (*Config, error) {
	cfgFile, _ := flags.GetString("config")
	if cfgFile == "" {
		var err error
		cfgFile, err = DefaultConfigPath()
		if err != nil {
			return nil, err
		}
	}
	if err := appdir.EnsureFile(cfgFile); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigFile(cfgFile)
	v.SetConfigType("yaml")
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for _, k := range keys {
		if f := flags.Lookup(k.flag()); f != nil {
			if err := v.BindPFlag(k.name, f); err != nil {
				return nil, fmt.Errorf("binding flag %s: %w", f.Name, err)
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := &Config{
		ConfigFile:      cfgFile,
		APIURL:          v.GetString("api_url"),
		Timeout:         v.GetDuration("timeout"),
		Proxy:           v.GetString("proxy"),
		UserAgent:       v.GetString("user_agent"),
		TLSFingerprint:  v.GetString("tls_fingerprint"),
		Output:          strings.ToLower(v.GetString("output")),
		Verbose:         v.GetBool("verbose"),
		Concurrency:     v.GetInt("concurrency"),
		IPv6Compressed:  v.GetBool("ipv6_compressed"),
		StrictHostnames: v.GetBool("strict_hostnames"),
		Listen:          v.GetString("listen"),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	for _, k := range keys {
		v.SetDefault(k.name, k.def)
	}
}

func (c *Config) validate() error {
	if _, err := output.ParseFormat(c.Output); err != nil {
		return err
	}
	if err := validateAPIURL(c.APIURL); err != nil {
		return err
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("invalid timeout %s: must be positive", c.Timeout)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("invalid concurrency %d: must be at least 1", c.Concurrency)
	}
	return nil
}

func validateAPIURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid api_url %q: %w", raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid api_url %q: must be an absolute http:// or https:// URL", raw)
	}
	return nil
}
