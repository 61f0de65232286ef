package platformsdk

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/aussiebroadwan/cmsadmin/pkg/apiclient"
	"github.com/shopspring/decimal"
)

type InventoryItem struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Quantity     int             `json:"quantity"`
	Reserved     int             `json:"reserved"`
	ReorderLevel int             `json:"reorder_level"`
	Location     string          `json:"location,omitempty"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Available is the stock not held by open orders.
func (i InventoryItem) Available() int {
	return i.Quantity - i.Reserved
}

// LowStock reports whether available stock is at or below the reorder level.
func (i InventoryItem) LowStock() bool {
	return i.Available() <= i.ReorderLevel
}

// StockValue is quantity x unit cost.
func (i InventoryItem) StockValue() decimal.Decimal {
	return i.UnitCost.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type InventoryAdjustment struct {
	// Delta is added to the on-hand quantity; negative to remove stock.
	Delta     int    `json:"delta"`
	Reason    string `json:"reason"` // received, damaged, correction, returned
	Reference string `json:"reference,omitempty"`
}

// InventoryChanges is the delta feed returned by /inventory/changes.
type InventoryChanges struct {
	Items      []InventoryItem `json:"items"`
	Deleted    []string        `json:"deleted,omitempty"`
	ServerTime time.Time       `json:"server_time"`
}

func (c *Client) ListInventory(ctx context.Context, params ListParams) (*Page[InventoryItem], error) {
	return getList[InventoryItem](ctx, c, "/inventory", params)
}

func (c *Client) GetInventoryItem(ctx context.Context, id string) (*InventoryItem, error) {
	return getOne[InventoryItem](ctx, c, "/inventory/"+seg(id), nil)
}

// AdjustInventory applies a stock movement and returns the updated item.
func (c *Client) AdjustInventory(ctx context.Context, id string, adj InventoryAdjustment) (*InventoryItem, error) {
	return postOne[InventoryItem](ctx, c, "/inventory/"+seg(id)+"/adjust", adj)
}

// LowStock lists items at or under their reorder level. A positive
// threshold overrides each item's own level.
func (c *Client) LowStock(ctx context.Context, threshold int) ([]InventoryItem, error) {
	q := url.Values{}
	if threshold > 0 {
		q.Set("threshold", strconv.Itoa(threshold))
	}

	var out struct {
		Data []InventoryItem `json:"data"`
	}
	if err := c.api.Get(ctx, "/inventory/low-stock", q, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// InventoryChangesSince returns items changed after since. A zero since
// returns the full inventory.
func (c *Client) InventoryChangesSince(ctx context.Context, since time.Time) (*InventoryChanges, error) {
	var q url.Values
	if !since.IsZero() {
		q = url.Values{"since": {since.UTC().Format(time.RFC3339)}}
	}
	return getOne[InventoryChanges](ctx, c, "/inventory/changes", q)
}

// LastInventorySync returns the stored sync watermark, or the zero time.
func (c *Client) LastInventorySync(ctx context.Context) (time.Time, error) {
	raw, err := c.api.Store().Get(ctx, apiclient.KeyInventoryLastSync)
	if err != nil || raw == "" {
		return time.Time{}, err
	}

	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		// A corrupt watermark only costs one full sync
		return time.Time{}, nil
	}
	return t, nil
}

// SyncInventory fetches changes since the stored watermark and, on success,
// advances the watermark to the server's time (or now when the response
// carries none).
func (c *Client) SyncInventory(ctx context.Context) (*InventoryChanges, error) {
	since, err := c.LastInventorySync(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read sync watermark: %w", err)
	}

	changes, err := c.InventoryChangesSince(ctx, since)
	if err != nil {
		return nil, err
	}

	mark := changes.ServerTime
	if mark.IsZero() {
		mark = time.Now()
	}
	if err := c.api.Store().Set(ctx, apiclient.KeyInventoryLastSync, mark.UTC().Format(time.RFC3339)); err != nil {
		return nil, fmt.Errorf("failed to store sync watermark: %w", err)
	}
	return changes, nil
}
