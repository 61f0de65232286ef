package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/cmsadmin/pkg/apiclient"
	"github.com/aussiebroadwan/cmsadmin/pkg/jwtx"
	"github.com/spf13/cobra"
)

type whoami struct {
	UserID         string    `json:"user_id"`
	Email          string    `json:"email,omitempty"`
	Name           string    `json:"name,omitempty"`
	Role           string    `json:"role,omitempty"`
	OrganizationID string    `json:"organization_id,omitempty"`
	Scopes         []string  `json:"scopes,omitempty"`
	ExpiresAt      time.Time `json:"expires_at"`
	Expired        bool      `json:"expired"`
}

func newWhoamiCmd(c *cli) *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed in user from the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			clients, err := c.connect(ctx)
			if err != nil {
				return err
			}

			token, err := clients.Store.Get(ctx, apiclient.KeyAccessToken)
			if err != nil {
				return err
			}
			claims := jwtx.Parse(token)
			if claims == nil {
				return errors.New("not signed in, run `cmsadmin login`")
			}

			info := whoami{
				UserID:         claims.EffectiveUserID(),
				Email:          claims.Email,
				Role:           claims.Role,
				OrganizationID: claims.OrganizationID,
				Scopes:         claims.Scopes,
				ExpiresAt:      jwtx.ExpiresAt(token),
				Expired:        jwtx.IsExpired(token, 0),
			}

			if user, _ := clients.CMS.CachedUser(ctx); user != nil {
				info.Name = user.Name
			}
			if remote {
				user, err := clients.CMS.Me(ctx)
				if err != nil {
					return err
				}
				info.Name, info.Email = user.Name, user.Email
			}

			if c.jsonOutput() {
				return c.printJSON(info)
			}

			expiry := dateOrDash(info.ExpiresAt)
			if info.Expired {
				expiry += " " + c.styles.Danger.Render("(expired, refreshes on next call)")
			}
			fmt.Fprintln(c.out, c.styles.KeyValues([][2]string{
				{"user", info.UserID},
				{"name", orDash(info.Name)},
				{"email", orDash(info.Email)},
				{"role", orDash(info.Role)},
				{"organization", orDash(info.OrganizationID)},
				{"scopes", orDash(strings.Join(info.Scopes, " "))},
				{"expires", expiry},
			}))
			return nil
		},
	}

	cmd.Flags().BoolVar(&remote, "remote", false, "fetch the profile from the CMS instead of the cache")
	return cmd
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
