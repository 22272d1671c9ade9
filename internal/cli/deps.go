package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/tbckr/lookupkit/internal/apiclient"
	"github.com/tbckr/lookupkit/internal/config"
	"github.com/tbckr/lookupkit/internal/httpclient"
	"github.com/tbckr/lookupkit/internal/output"
	"github.com/tbckr/lookupkit/internal/validate"
)

// deps holds fully-resolved runtime dependencies for a subcommand.
type deps struct {
	logger    *slog.Logger
	cfg       *config.Config
	format    output.Format
	validator *validate.Validator
}

// buildDeps resolves config, logger, output format, and the input validator.
func buildDeps(cmd *cobra.Command, stderr io.Writer) (*deps, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	format, err := output.ParseFormat(cfg.Output)
	if err != nil {
		return nil, err
	}

	validator := validate.New(
		validate.AllowCompressedIPv6(cfg.IPv6Compressed),
		validate.StrictHostnames(cfg.StrictHostnames),
	)

	return &deps{cfg: cfg, logger: logger, format: format, validator: validator}, nil
}

// newAPIClient creates the backend client from the transport settings of the
// resolved config. Commands that never call the backend do not build one, so
// a bad proxy setting cannot break "config set".
func (d *deps) newAPIClient() (*apiclient.Client, error) {
	transport, err := httpclient.New(httpclient.Options{
		Proxy:          d.cfg.Proxy,
		UserAgent:      d.cfg.UserAgent,
		TLSFingerprint: d.cfg.TLSFingerprint,
		Debug:          d.cfg.Verbose,
		Logger:         d.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating HTTP client: %w", err)
	}
	return apiclient.New(transport, apiclient.Config{BaseURL: d.cfg.APIURL, Timeout: d.cfg.Timeout}, d.logger), nil
}

// writeResult formats and writes a result to w.
func writeResult(w io.Writer, d *deps, result any) error {
	if err := output.Write(w, d.format, result); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
