package config

import (
	"github.com/spf13/cobra"

	"github.com/tbckr/lookupkit/internal/httpclient"
	"github.com/tbckr/lookupkit/internal/output"
)

// CompleteOutputFormat provides shell completion candidates for the --output flag.
func CompleteOutputFormat(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return output.Formats(), cobra.ShellCompDirectiveNoFileComp
}

// CompleteTLSFingerprint provides shell completion candidates for the --tls-fingerprint flag.
func CompleteTLSFingerprint(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return httpclient.PresetNames(), cobra.ShellCompDirectiveNoFileComp
}
