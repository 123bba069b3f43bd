package cli

import (
	"github.com/spf13/cobra"

	"github.com/artprint-il/artprint/internal/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the storefront HTTP API",
		Long: `Serve the JSON API for price quoting, size validation, basket
management, and checkout. The API operates on the same persisted basket
the CLI commands use.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				c.Config.Server.Addr = addr
			}

			bs, closeStore, err := c.openBasket(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			srv := server.New(c.Config, bs, c.Logger)
			printInfo("Serving on http://%s", c.Config.Server.Addr)
			printDetail("press ctrl+c to stop")
			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}
