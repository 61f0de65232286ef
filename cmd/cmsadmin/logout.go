package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLogoutCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the session and clear stored tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			clients, err := c.connect(cmd.Context())
			if err != nil {
				return err
			}

			// The local session is gone either way; a server error is only a warning
			if err := clients.CMS.Logout(cmd.Context()); err != nil {
				c.logger.Warn("server side logout failed", "error", err)
			}
			fmt.Fprintln(c.out, "Signed out.")
			return nil
		},
	}
}
