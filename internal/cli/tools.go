package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tbckr/lookupkit/internal/output"
	"github.com/tbckr/lookupkit/internal/tools"
)

type toolEntry struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Accepts string `json:"accepts"`
	Short   string `json:"description"`
}

func allTools() []toolEntry {
	defs := tools.All()
	entries := make([]toolEntry, len(defs))
	for i, def := range defs {
		entries[i] = toolEntry{
			Name:    def.Name,
			Path:    def.Path,
			Accepts: def.AcceptsString(),
			Short:   def.Short,
		}
	}
	return entries
}

func newToolsCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:     "tools",
		Short:   "List the lookup tools, their endpoints, and accepted input",
		Args:    cobra.NoArgs,
		GroupID: "utility",
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries := allTools()
			w := cmd.OutOrStdout()
			switch d.format {
			case output.FormatJSON:
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			case output.FormatTable:
				return writeToolsTable(w, entries)
			default: // plain
				return writeToolsPlain(w, entries)
			}
		},
	}
}

func writeToolsTable(w io.Writer, entries []toolEntry) error {
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{e.Name, e.Path, e.Accepts, e.Short}
	}
	table := output.NewWrappingTable(w, 20, 60)
	table.Header([]string{"Tool", "Endpoint", "Accepts", "Description"})
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

func writeToolsPlain(w io.Writer, entries []toolEntry) error {
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", e.Name, e.Path, e.Accepts); err != nil {
			return err
		}
	}
	return nil
}
