package platformsdk

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Address struct {
	ID         string `json:"id"`
	Label      string `json:"label,omitempty"` // home, work
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	IsDefault  bool   `json:"is_default"`
}

type Customer struct {
	ID          string          `json:"id"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	TotalSpent  decimal.Decimal `json:"total_spent"`
	OrdersCount int             `json:"orders_count"`
	Addresses   []Address       `json:"addresses,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type CustomerInput struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

type AddressInput struct {
	Label      string `json:"label,omitempty"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	IsDefault  bool   `json:"is_default,omitempty"`
}

// ============================================================================
// Customers
// ============================================================================

func (c *Client) ListCustomers(ctx context.Context, params ListParams) (*Page[Customer], error) {
	return getList[Customer](ctx, c, "/customers", params)
}

func (c *Client) GetCustomer(ctx context.Context, id string) (*Customer, error) {
	return getOne[Customer](ctx, c, "/customers/"+seg(id), nil)
}

func (c *Client) CreateCustomer(ctx context.Context, in CustomerInput) (*Customer, error) {
	return postOne[Customer](ctx, c, "/customers", in)
}

func (c *Client) UpdateCustomer(ctx context.Context, id string, in CustomerInput) (*Customer, error) {
	return putOne[Customer](ctx, c, "/customers/"+seg(id), in)
}

func (c *Client) DeleteCustomer(ctx context.Context, id string) error {
	return c.api.Delete(ctx, "/customers/"+seg(id), nil)
}

// CustomerOrders lists one customer's orders.
func (c *Client) CustomerOrders(ctx context.Context, id string, params ListParams) (*Page[Order], error) {
	return getList[Order](ctx, c, "/customers/"+seg(id)+"/orders", params)
}

// ============================================================================
// Addresses
// ============================================================================

func (c *Client) ListAddresses(ctx context.Context, customerID string) ([]Address, error) {
	var out struct {
		Data []Address `json:"data"`
	}
	if err := c.api.Get(ctx, "/customers/"+seg(customerID)+"/addresses", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) AddAddress(ctx context.Context, customerID string, in AddressInput) (*Address, error) {
	return postOne[Address](ctx, c, "/customers/"+seg(customerID)+"/addresses", in)
}

func (c *Client) UpdateAddress(ctx context.Context, customerID, addressID string, in AddressInput) (*Address, error) {
	return putOne[Address](ctx, c, "/customers/"+seg(customerID)+"/addresses/"+seg(addressID), in)
}

func (c *Client) DeleteAddress(ctx context.Context, customerID, addressID string) error {
	return c.api.Delete(ctx, "/customers/"+seg(customerID)+"/addresses/"+seg(addressID), nil)
}

// DefaultAddress returns the customer's default address. Any failure,
// including a customer with no default, yields nil and a nil error.
func (c *Client) DefaultAddress(ctx context.Context, customerID string) (*Address, error) {
	addr, err := getOne[Address](ctx, c, "/customers/"+seg(customerID)+"/addresses/default", nil)
	if err != nil {
		return nil, nil
	}
	return addr, nil
}
