package cart

import "github.com/noah-isme/backend-pos/internal/catalog"

// Line records a single add-to-cart action. The receipt carries one priced
// line per add call, not per distinct product.
type Line struct {
	Product  catalog.Product
	Quantity float64
}

// Cart accumulates products over a shopping session. It keeps both the
// ordered add history and the running total per product; the offer engine
// only cares about the totals. Quantities are taken as given, sign included.
type Cart struct {
	lines  []Line
	totals map[catalog.Product]float64
}

// New constructs an empty cart.
func New() *Cart {
	return &Cart{totals: make(map[catalog.Product]float64)}
}

// AddItem adds a single unit of the product.
func (c *Cart) AddItem(p catalog.Product) {
	c.Add(p, 1.0)
}

// Add records one add action and bumps the product's running total.
func (c *Cart) Add(p catalog.Product, quantity float64) {
	c.lines = append(c.lines, Line{Product: p, Quantity: quantity})
	c.totals[p] += quantity
}

// Lines returns the add history in order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Quantities returns the accumulated quantity per product.
func (c *Cart) Quantities() map[catalog.Product]float64 {
	out := make(map[catalog.Product]float64, len(c.totals))
	for p, q := range c.totals {
		out[p] = q
	}
	return out
}
