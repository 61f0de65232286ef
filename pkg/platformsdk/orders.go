package platformsdk

import (
	"context"
	"net/http"
	"time"

	"github.com/aussiebroadwan/cmsadmin/pkg/apiclient"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IdempotencyHeader lets the backend recognise a retried order creation.
const IdempotencyHeader = "Idempotency-Key"

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderFulfilled OrderStatus = "fulfilled"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
	OrderRefunded  OrderStatus = "refunded"
)

type OrderItem struct {
	ProductID string          `json:"product_id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

type Order struct {
	ID              string          `json:"id"`
	OrderNumber     string          `json:"order_number"`
	CustomerID      string          `json:"customer_id"`
	Status          OrderStatus     `json:"status"`
	Items           []OrderItem     `json:"items"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Tax             decimal.Decimal `json:"tax"`
	Shipping        decimal.Decimal `json:"shipping"`
	Total           decimal.Decimal `json:"total"`
	Currency        string          `json:"currency"`
	Notes           string          `json:"notes,omitempty"`
	ShippingAddress *Address        `json:"shipping_address,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ItemsTotal sums quantity x unit price over the order lines.
func (o *Order) ItemsTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range o.Items {
		sum = sum.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return sum
}

type OrderLineInput struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type CreateOrderRequest struct {
	CustomerID        string           `json:"customer_id"`
	Items             []OrderLineInput `json:"items"`
	ShippingAddressID string           `json:"shipping_address_id,omitempty"`
	Notes             string           `json:"notes,omitempty"`
	Currency          string           `json:"currency,omitempty"`
}

func (c *Client) ListOrders(ctx context.Context, params ListParams) (*Page[Order], error) {
	return getList[Order](ctx, c, "/orders", params)
}

func (c *Client) GetOrder(ctx context.Context, id string) (*Order, error) {
	return getOne[Order](ctx, c, "/orders/"+seg(id), nil)
}

// CreateOrder places an order. When idempotencyKey is empty a random UUID
// is used; pass the same key to retry safely.
func (c *Client) CreateOrder(ctx context.Context, in CreateOrderRequest, idempotencyKey string) (*Order, error) {
	if idempotencyKey == "" {
		idempotencyKey = uuid.NewString()
	}

	resp, err := c.api.Do(ctx, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/orders",
		Body:   in,
		Header: http.Header{IdempotencyHeader: {idempotencyKey}},
	})
	if err != nil {
		return nil, err
	}

	var out Order
	if err := resp.Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateOrderStatus moves the order to status. The backend rejects
// transitions that skip states with 409.
func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status OrderStatus) (*Order, error) {
	return patchOne[Order](ctx, c, "/orders/"+seg(id)+"/status", map[string]OrderStatus{"status": status})
}

func (c *Client) CancelOrder(ctx context.Context, id, reason string) (*Order, error) {
	return postOne[Order](ctx, c, "/orders/"+seg(id)+"/cancel", map[string]string{"reason": reason})
}
