package cli

import (
	"github.com/spf13/cobra"

	"github.com/tbckr/lookupkit/internal/server"
	"github.com/tbckr/lookupkit/internal/tools"
)

func newServeCmd(d *deps) *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the lookup tools as a JSON HTTP API",
		Long: `Serve the lookup tools over HTTP. Each tool has one controller shared by all
clients, so a newer submission supersedes an older one still in flight.

Endpoints:
  GET  /healthz
  GET  /api/tools
  GET  /api/tools/{tool}
  GET  /api/tools/{tool}/state
  POST /api/tools/{tool}/submit   {"input": "..."}  (?wait=false to return immediately)
  GET  /api/tools/{tool}/events   server-sent state changes`,
		Example: `  lookupkit serve --listen 127.0.0.1:8080
  curl -s -d '{"input":"8.8.8.8"}' -H 'Content-Type: application/json' localhost:8080/api/tools/ip/submit`,
		GroupID: "utility",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			addr := d.cfg.Listen
			if cmd.Flags().Changed("listen") {
				addr = listen
			}
			api, err := d.newAPIClient()
			if err != nil {
				return err
			}
			srv := server.New(cmd.Context(), tools.All(), d.validator, api, d.logger)
			return srv.Start(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (default from config key listen)")
	return cmd
}
