package main

import (
	"github.com/aussiebroadwan/cmsadmin/internal/admin/app"
	"github.com/spf13/cobra"
)

func newServeCmd(c *cli) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the admin HTTP server",
		Long: `Serve the landing page, runtime config, theme CSS, vitals beacon,
health probes and metrics. The inventory sync worker runs in the
background while a session is stored.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr != "" {
				c.cfg.ServeAddr = addr
			}

			clients, err := c.connect(cmd.Context())
			if err != nil {
				return err
			}

			// The application closes the store on shutdown
			c.clients = nil
			return app.NewWithClients(c.cfg, clients, c.logger).Run()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :3000)")
	return cmd
}
