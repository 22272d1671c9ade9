package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbckr/lookupkit/internal/config"
)

// newTestFlags registers all config flags on a fresh FlagSet, then parses extra args.
func newTestFlags(t *testing.T, cfgFile string, extra ...string) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	config.RegisterFlags(flags)
	args := append([]string{"--config=" + cfgFile}, extra...)
	require.NoError(t, flags.Parse(args))
	return flags
}

func TestLoad_DefaultsWithTempDir(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := config.Load(newTestFlags(t, cfgFile))
	require.NoError(t, err)
	assert.Equal(t, cfgFile, cfg.ConfigFile)
	assert.Equal(t, config.DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, "table", cfg.Output)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, config.DefaultConcurrency, cfg.Concurrency)
	assert.True(t, cfg.IPv6Compressed)
	assert.False(t, cfg.StrictHostnames)
	assert.Equal(t, config.DefaultListen, cfg.Listen)
	assert.Empty(t, cfg.Proxy)
	assert.Empty(t, cfg.TLSFingerprint)

	// Config file should now exist with 0600 permissions.
	info, err := os.Stat(cfgFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLoad_Flags(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := config.Load(newTestFlags(t, cfgFile,
		"--verbose",
		"--output=JSON",
		"--api-url=https://tools.example.com",
		"--timeout=3s",
		"--proxy=http://proxy:8080",
		"--user-agent=MyAgent/1.0",
		"--tls-fingerprint=firefox",
		"--concurrency=5",
		"--ipv6-compressed=false",
		"--strict-hostnames",
	))
	require.NoError(t, err)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, "https://tools.example.com", cfg.APIURL)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, "http://proxy:8080", cfg.Proxy)
	assert.Equal(t, "MyAgent/1.0", cfg.UserAgent)
	assert.Equal(t, "firefox", cfg.TLSFingerprint)
	assert.Equal(t, 5, cfg.Concurrency)
	assert.False(t, cfg.IPv6Compressed)
	assert.True(t, cfg.StrictHostnames)
}

func TestLoad_ConfigFileValues(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	yamlContent := "api_url: \"https://file.example.com\"\ntimeout: 1m\nconcurrency: 20\nlisten: \":9000\"\nipv6_compressed: false\n"
	require.NoError(t, os.WriteFile(cfgFile, []byte(yamlContent), 0o600))

	cfg, err := config.Load(newTestFlags(t, cfgFile))
	require.NoError(t, err)
	assert.Equal(t, "https://file.example.com", cfg.APIURL)
	assert.Equal(t, time.Minute, cfg.Timeout)
	assert.Equal(t, 20, cfg.Concurrency)
	assert.Equal(t, ":9000", cfg.Listen)
	assert.False(t, cfg.IPv6Compressed)
}

func TestLoad_Precedence(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("concurrency: 20\nuser_agent: FileAgent\napi_url: https://file.example.com\n"), 0o600))
	t.Setenv("LOOKUPKIT_CONCURRENCY", "30")
	t.Setenv("LOOKUPKIT_API_URL", "https://env.example.com")

	cfg, err := config.Load(newTestFlags(t, cfgFile, "--concurrency=40"))
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Concurrency, "flag beats env")
	assert.Equal(t, "https://env.example.com", cfg.APIURL, "env beats file")
	assert.Equal(t, "FileAgent", cfg.UserAgent, "file beats default")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"output", []string{"--output=xml"}, "invalid output format"},
		{"api url scheme", []string{"--api-url=ftp://x"}, "invalid api_url"},
		{"api url relative", []string{"--api-url=/api"}, "invalid api_url"},
		{"timeout", []string{"--timeout=0s"}, "invalid timeout"},
		{"concurrency", []string{"--concurrency=0"}, "invalid concurrency"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfgFile := filepath.Join(t.TempDir(), "config.yaml")
			_, err := config.Load(newTestFlags(t, cfgFile, tt.args...))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("output: [unterminated\n"), 0o600))

	_, err := config.Load(newTestFlags(t, cfgFile))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestValidateKey(t *testing.T) {
	t.Run("valid_underscore", func(t *testing.T) {
		require.NoError(t, config.ValidateKey("api_url"))
	})
	t.Run("valid_hyphen", func(t *testing.T) {
		require.NoError(t, config.ValidateKey("tls-fingerprint"))
	})
	t.Run("all_keys", func(t *testing.T) {
		for _, k := range config.ValidKeys() {
			require.NoError(t, config.ValidateKey(k), "key %q should be valid", k)
		}
	})
	t.Run("unknown", func(t *testing.T) {
		err := config.ValidateKey("does_not_exist")
		require.Error(t, err)
		require.ErrorIs(t, err, config.ErrUnknownKey)
	})
}

func TestNormalizeKey(t *testing.T) {
	k, err := config.NormalizeKey(" user-agent ")
	require.NoError(t, err)
	assert.Equal(t, "user_agent", k)
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		key     string
		value   string
		want    any
		wantErr bool
	}{
		// bool
		{key: "verbose", value: "true", want: true},
		{key: "ipv6-compressed", value: "0", want: false},
		{key: "verbose", value: "yes", wantErr: true},
		// int
		{key: "concurrency", value: "5", want: 5},
		{key: "concurrency", value: "0", wantErr: true},
		{key: "concurrency", value: "abc", wantErr: true},
		// duration
		{key: "timeout", value: "90s", want: "1m30s"},
		{key: "timeout", value: "-1s", wantErr: true},
		{key: "timeout", value: "10", wantErr: true},
		// url
		{key: "api_url", value: "https://tools.example.com", want: "https://tools.example.com"},
		{key: "api-url", value: "tools.example.com", wantErr: true},
		// enum
		{key: "output", value: "JSON", want: "json"},
		{key: "output", value: "text", wantErr: true},
		{key: "tls_fingerprint", value: "chrome", want: "chrome"},
		{key: "tls_fingerprint", value: "", want: ""},
		{key: "tls_fingerprint", value: "opera", wantErr: true},
		// free-form string
		{key: "proxy", value: "http://proxy:3128", want: "http://proxy:3128"},
		{key: "listen", value: ":8081", want: ":8081"},
	}
	for _, tc := range tests {
		t.Run(tc.key+"/"+tc.value, func(t *testing.T) {
			got, err := config.ParseValue(tc.key, tc.value)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseValue_UnknownKey(t *testing.T) {
	_, err := config.ParseValue("nonexistent", "value")
	require.ErrorIs(t, err, config.ErrUnknownKey)
}

func TestDefaultConfigPath(t *testing.T) {
	path, err := config.DefaultConfigPath()
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(path), "expected absolute path, got %q", path)
	assert.Equal(t, "config.yaml", filepath.Base(path))
	assert.Equal(t, "lookupkit", filepath.Base(filepath.Dir(path)))
}
