package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aussiebroadwan/cmsadmin/pkg/platformsdk"
	"github.com/spf13/cobra"
)

func newOrdersCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Browse and update boutique orders",
	}
	cmd.AddCommand(newOrdersListCmd(c), newOrdersGetCmd(c), newOrdersStatusCmd(c), newOrdersCancelCmd(c))
	return cmd
}

func newOrdersListCmd(c *cli) *cobra.Command {
	var lf listFlags
	var status, customer string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			clients, err := c.connect(cmd.Context())
			if err != nil {
				return err
			}

			params := lf.params(map[string]string{"status": status, "customer_id": customer})
			page, err := load(cmd.Context(), c, "loading orders", func(ctx context.Context) (*platformsdk.Page[platformsdk.Order], error) {
				return clients.Platform.ListOrders(ctx, params)
			})
			if err != nil {
				return err
			}

			return printPage(c, page, []string{"Order", "Status", "Items", "Total", "Placed"},
				func(o platformsdk.Order) []string {
					return []string{o.OrderNumber, string(o.Status), strconv.Itoa(len(o.Items)), o.Total.StringFixed(2) + " " + o.Currency, dateOrDash(o.CreatedAt)}
				})
		},
	}

	lf.register(cmd)
	cmd.Flags().StringVar(&status, "status", "", "filter by status")
	cmd.Flags().StringVar(&customer, "customer", "", "filter by customer id")
	return cmd
}

func newOrdersGetCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show an order and its lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clients, err := c.connect(cmd.Context())
			if err != nil {
				return err
			}

			o, err := load(cmd.Context(), c, "loading order", func(ctx context.Context) (*platformsdk.Order, error) {
				return clients.Platform.GetOrder(ctx, args[0])
			})
			if err != nil {
				return err
			}
			return printOrder(c, o)
		},
	}
}

func newOrdersStatusCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Move an order to a new status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clients, err := c.connect(cmd.Context())
			if err != nil {
				return err
			}

			o, err := clients.Platform.UpdateOrderStatus(cmd.Context(), args[0], platformsdk.OrderStatus(args[1]))
			if err != nil {
				return err
			}
			return printOrder(c, o)
		},
	}
}

func newOrdersCancelCmd(c *cli) *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clients, err := c.connect(cmd.Context())
			if err != nil {
				return err
			}

			o, err := clients.Platform.CancelOrder(cmd.Context(), args[0], reason)
			if err != nil {
				return err
			}
			return printOrder(c, o)
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "cancellation reason")
	return cmd
}

func printOrder(c *cli, o *platformsdk.Order) error {
	if c.jsonOutput() {
		return c.printJSON(o)
	}

	fmt.Fprintln(c.out, c.styles.Title.Render("Order "+o.OrderNumber))
	fmt.Fprintln(c.out, c.styles.KeyValues([][2]string{
		{"id", o.ID},
		{"status", string(o.Status)},
		{"customer", o.CustomerID},
		{"subtotal", o.Subtotal.StringFixed(2)},
		{"tax", o.Tax.StringFixed(2)},
		{"shipping", o.Shipping.StringFixed(2)},
		{"total", o.Total.StringFixed(2) + " " + o.Currency},
		{"placed", dateOrDash(o.CreatedAt)},
	}))

	if len(o.Items) > 0 {
		rows := make([][]string, len(o.Items))
		for i, it := range o.Items {
			rows[i] = []string{it.SKU, it.Name, strconv.Itoa(it.Quantity), it.UnitPrice.StringFixed(2), it.Total.StringFixed(2)}
		}
		fmt.Fprintln(c.out, c.styles.Table([]string{"SKU", "Item", "Qty", "Unit", "Total"}, rows))
	}
	return nil
}
