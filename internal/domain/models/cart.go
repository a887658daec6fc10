package models

// CartItem is a product plus the quantity the customer wants.
// Identity of a line is the product ID.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Subtotal returns price * quantity in centavos.
func (i CartItem) Subtotal() int64 {
	return i.Product.Price * int64(i.Quantity)
}
