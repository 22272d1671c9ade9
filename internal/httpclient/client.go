// Package httpclient builds the *req.Client every backend call goes through.
package httpclient

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sort"
	"strings"

	"github.com/imroc/req/v3"

	"github.com/tbckr/lookupkit/internal/version"
)

// DefaultUserAgent is the User-Agent sent when no explicit value is configured.
// var (not const) because version.Version is a link-time variable.
var DefaultUserAgent = "lookupkit/" + version.Version + " (+https://github.com/tbckr/lookupkit)"

// impersonatePresets are the preset names for which req sets TLS fingerprint,
// HTTP/2 settings, header order, and User-Agent in one call.
var impersonatePresets = map[string]bool{
	"chrome":  true,
	"firefox": true,
	"safari":  true,
}

// tlsFingerprintPresets are all names accepted by --tls-fingerprint.
var tlsFingerprintPresets = map[string]bool{
	"chrome": true, "firefox": true, "safari": true,
	"edge": true, "ios": true, "android": true, "randomized": true,
}

// Options configures the transport. The zero value is a plain client with
// DefaultUserAgent, proxies taken from the environment, and Go's TLS stack.
type Options struct {
	// Proxy is an http://, https://, or socks5:// URL.
	Proxy string
	// UserAgent overrides DefaultUserAgent.
	UserAgent string
	// TLSFingerprint selects a uTLS client hello profile.
	TLSFingerprint string
	// Debug attaches a response logging hook when Logger is set.
	Debug  bool
	Logger *slog.Logger
}

// PresetNames returns the sorted TLS fingerprint preset names, for shell completion.
func PresetNames() []string {
	names := make([]string, 0, len(tlsFingerprintPresets))
	for name := range tlsFingerprintPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveUserAgent returns the User-Agent that will be sent, for display in
// config show/get.
//
// Resolution order:
//  1. a non-empty custom userAgent is used as-is
//  2. an impersonate preset fingerprint reports the preset name; req manages the UA
//  3. otherwise DefaultUserAgent
func ResolveUserAgent(userAgent, tlsFingerprint string) string {
	if userAgent != "" {
		return userAgent
	}
	if impersonatePresets[tlsFingerprint] {
		return tlsFingerprint
	}
	return DefaultUserAgent
}

// ResolveProxy returns the proxy value that will actually be used.
// An explicit proxy is returned as-is. Otherwise the standard proxy env vars
// are checked and "<from environment>" is returned when any is set.
func ResolveProxy(proxy string) string {
	if proxy != "" {
		return proxy
	}
	for _, env := range []string{"HTTPS_PROXY", "https_proxy", "HTTP_PROXY", "http_proxy", "ALL_PROXY", "all_proxy"} {
		if os.Getenv(env) != "" {
			return "<from environment>"
		}
	}
	return ""
}

// New builds a *req.Client from opts.
// No retry policy is attached: every call is exactly one attempt.
// Returns an error if the proxy URL has an unsupported scheme or the TLS
// fingerprint is unknown.
func New(opts Options) (*req.Client, error) {
	client := req.NewClient()

	switch opts.TLSFingerprint {
	case "chrome":
		client.ImpersonateChrome()
	case "firefox":
		client.ImpersonateFirefox()
	case "safari":
		client.ImpersonateSafari()
	case "edge":
		client.SetTLSFingerprintEdge()
	case "ios":
		client.SetTLSFingerprintIOS()
	case "android":
		client.SetTLSFingerprintAndroid()
	case "randomized":
		client.SetTLSFingerprintRandomized()
	case "":
	default:
		return nil, fmt.Errorf("unknown TLS fingerprint %q", opts.TLSFingerprint)
	}

	if opts.UserAgent != "" {
		client.SetUserAgent(opts.UserAgent)
	} else if !impersonatePresets[opts.TLSFingerprint] {
		client.SetUserAgent(DefaultUserAgent)
	}
	client.SetCommonHeader("Accept", "application/json")

	if opts.Proxy != "" {
		if err := validateProxy(opts.Proxy); err != nil {
			return nil, fmt.Errorf("invalid proxy URL %q: %w", opts.Proxy, err)
		}
		client.SetProxyURL(opts.Proxy)
	} else {
		client.SetProxy(http.ProxyFromEnvironment)
	}

	if opts.Debug && opts.Logger != nil {
		attachDebugHook(client, opts.Logger)
	}

	return client, nil
}

// attachDebugHook logs method, URL, and status of every response at DEBUG
// level, plus a body snippet on non-2xx responses.
func attachDebugHook(client *req.Client, logger *slog.Logger) {
	client.OnAfterResponse(func(_ *req.Client, resp *req.Response) error {
		if resp.Request == nil || resp.Request.RawRequest == nil {
			return nil
		}
		logger.Debug("http response",
			"method", resp.Request.RawRequest.Method,
			"url", resp.Request.RawRequest.URL.String(),
			"status", resp.StatusCode,
		)
		if resp.Response != nil && !resp.IsSuccessState() {
			body := resp.String()
			if len(body) > 512 {
				body = body[:512]
			}
			logger.Debug("http error body", "status", resp.StatusCode, "body", body)
		}
		return nil
	})
}

func validateProxy(proxy string) error {
	for _, scheme := range []string{"http://", "https://", "socks5://"} {
		if strings.HasPrefix(proxy, scheme) {
			return nil
		}
	}
	return fmt.Errorf("proxy scheme must be http://, https://, or socks5://")
}
