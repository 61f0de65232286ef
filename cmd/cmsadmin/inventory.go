package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aussiebroadwan/cmsadmin/internal/admin/worker"
	"github.com/aussiebroadwan/cmsadmin/pkg/platformsdk"
	"github.com/spf13/cobra"
)

func newInventoryCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Inspect and adjust boutique stock",
	}
	cmd.AddCommand(newInventoryListCmd(c), newInventoryLowCmd(c), newInventorySyncCmd(c), newInventoryAdjustCmd(c))
	return cmd
}

func inventoryRow(it platformsdk.InventoryItem) []string {
	return []string{
		it.SKU,
		it.Name,
		strconv.Itoa(it.Quantity),
		strconv.Itoa(it.Available()),
		strconv.Itoa(it.ReorderLevel),
		it.StockValue().StringFixed(2),
		orDash(it.Location),
	}
}

var inventoryHeaders = []string{"SKU", "Item", "On hand", "Available", "Reorder at", "Value", "Location"}

func newInventoryListCmd(c *cli) *cobra.Command {
	var lf listFlags
	var location string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List inventory items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			clients, err := c.connect(cmd.Context())
			if err != nil {
				return err
			}

			params := lf.params(map[string]string{"location": location})
			page, err := load(cmd.Context(), c, "loading inventory", func(ctx context.Context) (*platformsdk.Page[platformsdk.InventoryItem], error) {
				return clients.Platform.ListInventory(ctx, params)
			})
			if err != nil {
				return err
			}
			return printPage(c, page, inventoryHeaders, inventoryRow)
		},
	}

	lf.register(cmd)
	cmd.Flags().StringVar(&location, "location", "", "filter by stock location")
	return cmd
}

func newInventoryLowCmd(c *cli) *cobra.Command {
	var threshold int

	cmd := &cobra.Command{
		Use:   "low",
		Short: "List items at or below their reorder level",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			clients, err := c.connect(cmd.Context())
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("threshold") {
				threshold = c.cfg.LowStockThreshold
			}
			items, err := load(cmd.Context(), c, "loading low stock", func(ctx context.Context) ([]platformsdk.InventoryItem, error) {
				return clients.Platform.LowStock(ctx, threshold)
			})
			if err != nil {
				return err
			}

			if c.jsonOutput() {
				return c.printJSON(items)
			}
			if len(items) == 0 {
				fmt.Fprintln(c.out, "No items are low on stock.")
				return nil
			}
			rows := make([][]string, len(items))
			for i, it := range items {
				rows[i] = inventoryRow(it)
			}
			fmt.Fprintln(c.out, c.styles.Table(inventoryHeaders, rows))
			return nil
		},
	}

	cmd.Flags().IntVar(&threshold, "threshold", 0, "override each item's reorder level (default from config)")
	return cmd
}

func newInventorySyncCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Pull inventory changes since the last sync",
		Long: `Pull inventory changes since the stored watermark. The first sync, or
one after the watermark is cleared, fetches the full inventory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			clients, err := c.connect(cmd.Context())
			if err != nil {
				return err
			}

			syncer := worker.NewInventorySyncService(clients.Platform, clients.HasSession, c.logger, 0)
			status, err := load(cmd.Context(), c, "syncing inventory", func(context.Context) (worker.SyncStatus, error) {
				syncer.RunOnce()
				return syncer.Status(), nil
			})
			if err != nil {
				return err
			}

			if c.jsonOutput() {
				return c.printJSON(status)
			}
			switch {
			case status.Skipped > 0:
				return errors.New("not signed in, run `cmsadmin login`")
			case status.LastError != "":
				return fmt.Errorf("inventory sync failed: %s", status.LastError)
			}

			fmt.Fprintf(c.out, "Synced %d updated and %d deleted items.\n", status.Updated, status.Deleted)
			if len(status.LowStock) > 0 {
				fmt.Fprintln(c.out, c.styles.Danger.Render("Low stock: "+strings.Join(status.LowStock, ", ")))
			}
			return nil
		},
	}
}

func newInventoryAdjustCmd(c *cli) *cobra.Command {
	var adj platformsdk.InventoryAdjustment

	cmd := &cobra.Command{
		Use:   "adjust <id>",
		Short: "Apply a stock movement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if adj.Delta == 0 {
				return errors.New("--delta must be non-zero")
			}

			clients, err := c.connect(cmd.Context())
			if err != nil {
				return err
			}

			item, err := clients.Platform.AdjustInventory(cmd.Context(), args[0], adj)
			if err != nil {
				return err
			}

			if c.jsonOutput() {
				return c.printJSON(item)
			}
			fmt.Fprintln(c.out, c.styles.Table(inventoryHeaders, [][]string{inventoryRow(*item)}))
			return nil
		},
	}

	cmd.Flags().IntVar(&adj.Delta, "delta", 0, "quantity to add, negative to remove")
	cmd.Flags().StringVar(&adj.Reason, "reason", "correction", "received, damaged, correction or returned")
	cmd.Flags().StringVar(&adj.Reference, "reference", "", "external reference")
	return cmd
}
