package cli

import (
	"github.com/spf13/cobra"

	"github.com/cristianadrielbraun/memezzz/internal/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}
			app, err := server.New(cfg, c.Logger)
			if err != nil {
				return err
			}
			return app.Run(cmd.Context())
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides PORT)")
	return cmd
}
