package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tbckr/lookupkit/internal/input"
	"github.com/tbckr/lookupkit/internal/output"
	"github.com/tbckr/lookupkit/internal/tools"
	"github.com/tbckr/lookupkit/internal/validate"
	"github.com/tbckr/lookupkit/internal/worker"
)

func newToolCmd(d *deps, def tools.Definition) *cobra.Command {
	use := def.Name + " [input...]"
	long := fmt.Sprintf(`%s.

Accepted input: %s.

Multiple inputs can be supplied as arguments or piped via stdin (one per line).
Bulk input is processed concurrently (see --concurrency).`, def.Short, def.AcceptsString())
	if acceptsOnly(def, validate.KindRawHeader) {
		use = def.Name + " [header]"
		long = def.Short + `.

The header is read from the argument or, when none is given, from stdin as
a single document. Paste the complete header including every Received line.`
	}

	return &cobra.Command{
		Use:     use,
		Short:   def.Short,
		Long:    long,
		Example: indent(def.Example),
		GroupID: "lookup",
		Args:    cobra.ArbitraryArgs,
		ValidArgsFunction: func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := resolveInputs(cmd, def, args)
			if err != nil {
				return err
			}
			api, err := d.newAPIClient()
			if err != nil {
				return err
			}
			pool := worker.NewPool(def.Tool, d.validator, api, d.cfg.Concurrency, d.logger)
			results := pool.Run(cmd.Context(), inputs)
			return writeLookupResults(cmd.OutOrStdout(), d, def, results)
		},
	}
}

// resolveInputs returns positional args, or reads stdin when no args are
// provided: one input per line, or the whole stream for header tools.
// Returns an error if stdin is an interactive terminal with no args.
func resolveInputs(cmd *cobra.Command, def tools.Definition, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	r := cmd.InOrStdin()
	if input.IsTerminal(r) {
		return nil, fmt.Errorf("no input: pass an argument or pipe stdin")
	}
	if acceptsOnly(def, validate.KindRawHeader) {
		doc, err := input.Document(r)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return []string{doc}, nil
	}
	inputs, err := input.Lines(r)
	if err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	if len(inputs) == 0 {
		// An empty submission still goes through validation and is rejected.
		return []string{""}, nil
	}
	return inputs, nil
}

// writeLookupResults writes every successful result to w and reports
// rejected and failed lookups on the logger. With several inputs in table or
// plain format each result is preceded by a "# <input>" line.
func writeLookupResults(w io.Writer, d *deps, def tools.Definition, results []worker.Result) error {
	failed := 0
	for _, r := range results {
		st := r.State
		if st.ShowError() {
			failed++
			d.logger.Error(st.Error, "input", label(r.Input), "kind", st.ErrorKind)
			continue
		}

		res, err := def.Decode(st.Payload)
		if err != nil {
			d.logger.Debug("showing raw payload", "input", label(r.Input), "error", err)
		}
		if res.IsEmpty() && d.format != output.FormatJSON {
			d.logger.Info("no results", "input", label(r.Input))
			continue
		}
		if len(results) > 1 && d.format != output.FormatJSON {
			if _, err := fmt.Fprintf(w, "# %s\n", label(r.Input)); err != nil {
				return err
			}
		}
		if err := writeResult(w, d, res); err != nil {
			return err
		}
	}
	if failed > 0 {
		d.logger.Debug("lookups finished with errors", "failed", failed, "total", len(results))
		return fmt.Errorf("%w: %d of %d", ErrLookupFailed, failed, len(results))
	}
	return nil
}

func acceptsOnly(def tools.Definition, k validate.Kind) bool {
	return len(def.Accepts) == 1 && def.Accepts[0] == k
}

// label shortens multi-line inputs such as email headers for log lines.
func label(in string) string {
	const maxLabel = 60
	if i := strings.IndexAny(in, "\r\n"); i >= 0 {
		in = in[:i] + "..."
	}
	if r := []rune(in); len(r) > maxLabel {
		in = string(r[:maxLabel]) + "..."
	}
	return output.Clean(in)
}

func indent(example string) string {
	if example == "" {
		return ""
	}
	return "  " + strings.ReplaceAll(example, "\n", "\n  ")
}
