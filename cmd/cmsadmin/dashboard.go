package main

import (
	"context"
	"fmt"

	"github.com/aussiebroadwan/cmsadmin/internal/admin/ui"
	"github.com/aussiebroadwan/cmsadmin/pkg/apiclient"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newDashboardCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Summaries of the CMS and the boutique",
	}
	cmd.AddCommand(newCMSDashboardCmd(c), newBoutiqueDashboardCmd(c))
	return cmd
}

func newCMSDashboardCmd(c *cli) *cobra.Command {
	var days, top int

	cmd := &cobra.Command{
		Use:   "cms",
		Short: "Content analytics overview",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			clients, err := c.connect(cmd.Context())
			if err != nil {
				return err
			}

			d, err := load(cmd.Context(), c, "loading analytics", func(ctx context.Context) (ui.CMSDashboard, error) {
				var d ui.CMSDashboard
				g, ctx := errgroup.WithContext(ctx)
				g.Go(func() error {
					o, err := clients.CMS.AnalyticsOverview(ctx)
					if err == nil {
						d.Overview = *o
					}
					return err
				})
				g.Go(func() (err error) {
					d.Top, err = clients.CMS.TopContent(ctx, top)
					return err
				})
				g.Go(func() (err error) {
					d.Stats, err = clients.CMS.ContentStats(ctx, days)
					return err
				})
				err := g.Wait()
				return d, err
			})
			if err != nil {
				return err
			}

			if c.jsonOutput() {
				return c.printJSON(d)
			}
			fmt.Fprintln(c.out, c.styles.CMSDashboard(d))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "days of activity to show")
	cmd.Flags().IntVar(&top, "top", 5, "number of top entries to show")
	return cmd
}

func newBoutiqueDashboardCmd(c *cli) *cobra.Command {
	var recent int

	cmd := &cobra.Command{
		Use:   "boutique",
		Short: "Orders, stock and staff overview",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			clients, err := c.connect(cmd.Context())
			if err != nil {
				return err
			}

			d, err := load(cmd.Context(), c, "loading boutique", func(ctx context.Context) (ui.BoutiqueDashboard, error) {
				var d ui.BoutiqueDashboard
				g, ctx := errgroup.WithContext(ctx)
				g.Go(func() error {
					page, err := clients.Platform.ListOrders(ctx, apiclient.ListParams{
						Page: 1, PageSize: recent, Sort: "created_at", Order: "desc",
					})
					if err == nil {
						d.Orders, d.OrdersTotal = page.Data, page.Total
					}
					return err
				})
				g.Go(func() (err error) {
					d.LowStock, err = clients.Platform.LowStock(ctx, c.cfg.LowStockThreshold)
					return err
				})
				g.Go(func() error {
					page, err := clients.Platform.ListEmployees(ctx, apiclient.ListParams{
						Page: 1, PageSize: 10, Filters: map[string]string{"status": "active"},
					})
					if err == nil {
						d.Employees, d.EmployeesTotal = page.Data, page.Total
					}
					return err
				})
				err := g.Wait()
				return d, err
			})
			if err != nil {
				return err
			}

			if c.jsonOutput() {
				return c.printJSON(d)
			}
			fmt.Fprintln(c.out, c.styles.BoutiqueDashboard(d))
			return nil
		},
	}

	cmd.Flags().IntVar(&recent, "recent", 10, "number of recent orders to include")
	return cmd
}
