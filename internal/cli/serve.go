package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/chaostower/pkg/cache"
	"github.com/matzehuels/chaostower/pkg/server"
)

// serverKeyScope separates server cache entries from CLI ones, so a shared
// backend can be cleared per surface.
const serverKeyScope = "server:"

func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API over HTTP",
		Long: `Serve the generation API over HTTP.

  GET  /healthz
  GET  /v1/presets
  POST /v1/chaos   body: chaos options as JSON, ?format=json|csv
  POST /v1/ifs     body: ifs options as JSON, ?format=json|csv
  POST /v1/rule    body: chaos options as JSON, ?format=svg|dot

The server runs until interrupted.`,
		Example: `  chaostower serve --addr :9090
  curl -d '{"preset":"sierpc","n":20000}' localhost:9090/v1/chaos?format=csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.Config.Server
			if addr != "" {
				cfg.Addr = addr
			}

			runner, err := c.newRunner(cmd.Context(), noCache)
			if err != nil {
				return err
			}
			defer runner.Close()
			runner.Keyer = cache.NewScopedKeyer(runner.Keyer, serverKeyScope)

			return server.New(runner, cfg, c.Logger).ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: config or :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the sequence cache")
	return cmd
}
