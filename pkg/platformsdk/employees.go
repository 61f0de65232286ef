package platformsdk

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID         string           `json:"id"`
	FirstName  string           `json:"first_name"`
	LastName   string           `json:"last_name"`
	Email      string           `json:"email"`
	Phone      string           `json:"phone,omitempty"`
	Position   string           `json:"position"`
	Department string           `json:"department,omitempty"`
	Status     string           `json:"status"` // active, on_leave, terminated
	HourlyRate *decimal.Decimal `json:"hourly_rate,omitempty"`
	HiredAt    *time.Time       `json:"hired_at,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

func (e Employee) FullName() string {
	switch {
	case e.FirstName == "":
		return e.LastName
	case e.LastName == "":
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

type EmployeeInput struct {
	FirstName  string           `json:"first_name,omitempty"`
	LastName   string           `json:"last_name,omitempty"`
	Email      string           `json:"email,omitempty"`
	Phone      string           `json:"phone,omitempty"`
	Position   string           `json:"position,omitempty"`
	Department string           `json:"department,omitempty"`
	Status     string           `json:"status,omitempty"`
	HourlyRate *decimal.Decimal `json:"hourly_rate,omitempty"`
	HiredAt    *time.Time       `json:"hired_at,omitempty"`
}

func (c *Client) ListEmployees(ctx context.Context, params ListParams) (*Page[Employee], error) {
	return getList[Employee](ctx, c, "/employees", params)
}

func (c *Client) GetEmployee(ctx context.Context, id string) (*Employee, error) {
	return getOne[Employee](ctx, c, "/employees/"+seg(id), nil)
}

func (c *Client) CreateEmployee(ctx context.Context, in EmployeeInput) (*Employee, error) {
	return postOne[Employee](ctx, c, "/employees", in)
}

func (c *Client) UpdateEmployee(ctx context.Context, id string, in EmployeeInput) (*Employee, error) {
	return putOne[Employee](ctx, c, "/employees/"+seg(id), in)
}

func (c *Client) DeleteEmployee(ctx context.Context, id string) error {
	return c.api.Delete(ctx, "/employees/"+seg(id), nil)
}
