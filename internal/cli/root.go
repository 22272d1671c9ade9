// Package cli provides the Cobra command tree and output wiring for lookupkit.
package cli

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/tbckr/lookupkit/internal/config"
	"github.com/tbckr/lookupkit/internal/tools"
	"github.com/tbckr/lookupkit/internal/version"
)

// ErrLookupFailed is returned when at least one lookup ended rejected or
// failed. The individual errors have already been reported on stderr.
var ErrLookupFailed = errors.New("lookup failed")

// newRootCmd builds the top-level Cobra command for lookupkit.
// Callers must set stdout/stderr via cmd.SetOut / cmd.SetErr before Execute.
func newRootCmd() *cobra.Command {
	// d is populated by PersistentPreRunE before any subcommand's RunE runs.
	// Cobra only executes the innermost PersistentPreRunE in the command
	// chain, so subcommands must not define their own (completion excepted).
	var d deps

	cmd := &cobra.Command{
		Use:   "lookupkit",
		Short: "lookupkit: network and email lookups against an analysis backend",
		Long: `lookupkit validates IP addresses, ASNs, domain names, and raw email headers
locally, then asks the analysis backend for geolocation, ASN ownership,
reverse DNS, IPv6 readiness, host records, or the relay path of a message.

Invalid input is rejected before any request is made. Every request is
bounded by --timeout and is never retried.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			resolved, err := buildDeps(cmd, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			d = *resolved
			return nil
		},
	}

	config.RegisterFlags(cmd.PersistentFlags())
	_ = cmd.RegisterFlagCompletionFunc("output", config.CompleteOutputFormat)
	_ = cmd.RegisterFlagCompletionFunc("tls-fingerprint", config.CompleteTLSFingerprint)

	cmd.Version = version.Version
	cmd.SetVersionTemplate("lookupkit version {{.Version}}\n")

	cmd.AddGroup(
		&cobra.Group{ID: "lookup", Title: "Lookup Tools:"},
		&cobra.Group{ID: "utility", Title: "Utility Commands:"},
	)

	for _, def := range tools.All() {
		cmd.AddCommand(newToolCmd(&d, def))
	}
	cmd.AddCommand(
		newInteractiveCmd(&d),
		newServeCmd(&d),
		newToolsCmd(&d),
		newConfigCmd(&d),
		newCompletionCmd(),
		newVersionCmd(&d),
	)

	return cmd
}

// Execute builds the root command and runs it with args.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.ExecuteContext(ctx)
}
