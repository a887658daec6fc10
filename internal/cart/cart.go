// Package cart holds the in-progress order for a browsing session.
// Carts are in-memory only; nothing here touches the database.
package cart

import (
	"sync"
	"time"

	"github.com/linemk/pix-shop/internal/domain/models"
)

// Cart is an ordered list of line items for one session.
// A single session has a single logical writer, but the store is shared
// between request goroutines, so access is guarded by a mutex.
type Cart struct {
	mu         sync.Mutex
	items      []models.CartItem
	submitting bool
	lastAccess time.Time
}

func NewCart() *Cart {
	return &Cart{lastAccess: time.Now()}
}

// Add appends quantity of the product, merging into an existing line
// when the product is already in the cart.
func (c *Cart) Add(product models.Product, quantity int) {
	if quantity <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touch()

	for i := range c.items {
		if c.items[i].Product.ID == product.ID {
			c.items[i].Quantity += quantity
			return
		}
	}
	c.items = append(c.items, models.CartItem{Product: product, Quantity: quantity})
}

// SetQuantity sets the quantity of a line; a quantity <= 0 removes it.
// Returns false when the product is not in the cart.
func (c *Cart) SetQuantity(productID int64, quantity int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touch()

	for i := range c.items {
		if c.items[i].Product.ID == productID {
			if quantity <= 0 {
				c.items = append(c.items[:i], c.items[i+1:]...)
			} else {
				c.items[i].Quantity = quantity
			}
			return true
		}
	}
	return false
}

// Remove deletes a line by product ID.
func (c *Cart) Remove(productID int64) bool {
	return c.SetQuantity(productID, 0)
}

// Clear drops every line.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touch()
	c.items = nil
}

// Items returns a copy of the current lines, safe to keep as a snapshot.
func (c *Cart) Items() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touch()
	out := make([]models.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// TotalPrice is the sum of price * quantity over current lines, in centavos.
func (c *Cart) TotalPrice() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total int64
	for _, it := range c.items {
		total += it.Subtotal()
	}
	return total
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// BeginCheckout marks the cart as submitting. Returns false when a
// checkout is already in flight, serializing finalize attempts.
func (c *Cart) BeginCheckout() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.submitting {
		return false
	}
	c.submitting = true
	return true
}

// EndCheckout clears the submitting flag.
func (c *Cart) EndCheckout() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitting = false
}

// touch is called with the mutex held
func (c *Cart) touch() {
	c.lastAccess = time.Now()
}

func (c *Cart) idleSince(now time.Time) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return now.Sub(c.lastAccess)
}
