package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

type resolvedConfig struct {
	CMSAPIURL      string `json:"cms_api_url"`
	PlatformAPIURL string `json:"platform_api_url"`
	StoreDriver    string `json:"store_driver"`
	StoreProfile   string `json:"store_profile"`
	Env            string `json:"env"`
}

func newConfigCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the resolved API URLs and session store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			endpoints := c.cfg.Endpoints()
			rc := resolvedConfig{
				CMSAPIURL:      endpoints.CMSAPIURL,
				PlatformAPIURL: endpoints.PlatformAPIURL,
				StoreDriver:    c.cfg.Store.Driver,
				StoreProfile:   c.cfg.Store.Profile,
				Env:            c.cfg.Env,
			}

			if c.jsonOutput() {
				return c.printJSON(rc)
			}
			fmt.Fprintln(c.out, c.styles.KeyValues([][2]string{
				{"cms api", rc.CMSAPIURL},
				{"platform api", rc.PlatformAPIURL},
				{"store", rc.StoreDriver + " (" + rc.StoreProfile + ")"},
				{"env", rc.Env},
			}))
			return nil
		},
	}
}
