package models

import "time"

// Sale statuses. A sale starts pending and is settled by the admin.
const (
	SaleStatusPending   = "pending"
	SaleStatusPaid      = "paid"
	SaleStatusCancelled = "cancelled"
)

// Sale represents a persisted order created at checkout.
// Multi-item checkouts store the item breakdown in ProductName
// ("2x A, 1x B") and leave ProductID nil with UnitPrice 0; the schema
// predates multi-item carts.
type Sale struct {
	ID            int64     `json:"id"`
	ProductID     *int64    `json:"product_id,omitempty"`
	ProductName   string    `json:"product_name"`
	Quantity      int       `json:"quantity"`
	UnitPrice     int64     `json:"unit_price_centavos"`
	TotalAmount   int64     `json:"total_amount_centavos"`
	CustomerName  *string   `json:"customer_name,omitempty"`
	CustomerPhone *string   `json:"customer_phone,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}
