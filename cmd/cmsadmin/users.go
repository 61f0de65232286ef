package main

import (
	"context"
	"fmt"

	"github.com/aussiebroadwan/cmsadmin/pkg/cmssdk"
	"github.com/spf13/cobra"
)

func newUsersCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage CMS users",
	}
	cmd.AddCommand(newUsersListCmd(c), newUsersInviteCmd(c))
	return cmd
}

func newUsersListCmd(c *cli) *cobra.Command {
	var lf listFlags
	var status, role string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			clients, err := c.connect(cmd.Context())
			if err != nil {
				return err
			}

			params := lf.params(map[string]string{"status": status, "role_id": role})
			page, err := load(cmd.Context(), c, "loading users", func(ctx context.Context) (*cmssdk.Page[cmssdk.User], error) {
				return clients.CMS.ListUsers(ctx, params)
			})
			if err != nil {
				return err
			}

			return printPage(c, page, []string{"ID", "Name", "Email", "Role", "Status", "2FA", "Last login"},
				func(u cmssdk.User) []string {
					roleName := "-"
					if u.Role != nil {
						roleName = u.Role.Name
					}
					lastLogin := "-"
					if u.LastLoginAt != nil {
						lastLogin = dateOrDash(*u.LastLoginAt)
					}
					twoFA := "no"
					if u.TwoFactorEnabled {
						twoFA = "yes"
					}
					return []string{u.ID, u.Name, u.Email, roleName, orDash(u.Status), twoFA, lastLogin}
				})
		},
	}

	lf.register(cmd)
	cmd.Flags().StringVar(&status, "status", "", "filter by status: active, invited or suspended")
	cmd.Flags().StringVar(&role, "role", "", "filter by role id")
	return cmd
}

func newUsersInviteCmd(c *cli) *cobra.Command {
	var in cmssdk.InviteRequest

	cmd := &cobra.Command{
		Use:   "invite <email>",
		Short: "Invite a user by email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clients, err := c.connect(cmd.Context())
			if err != nil {
				return err
			}

			in.Email = args[0]
			u, err := clients.CMS.InviteUser(cmd.Context(), in)
			if err != nil {
				return err
			}

			if c.jsonOutput() {
				return c.printJSON(u)
			}
			fmt.Fprintf(c.out, "Invited %s (%s)\n", u.Email, u.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "display name")
	cmd.Flags().StringVar(&in.RoleID, "role", "", "role id to assign")
	return cmd
}
