package receipt

import (
	"math"

	"github.com/google/uuid"

	"github.com/noah-isme/backend-pos/internal/catalog"
	"github.com/noah-isme/backend-pos/internal/offer"
)

// LineItem is one priced record of a single add-to-cart action.
type LineItem struct {
	Product    catalog.Product `json:"product"`
	Quantity   float64         `json:"quantity"`
	UnitPrice  float64         `json:"unitPrice"`
	TotalPrice float64         `json:"totalPrice"`
}

// Receipt accumulates the priced line items and discounts of one checkout.
// A receipt is created fresh per checkout, written once, then read.
type Receipt struct {
	id        string
	items     []LineItem
	discounts []offer.Discount
}

// New constructs an empty receipt with a fresh identifier.
func New() *Receipt {
	return &Receipt{id: uuid.NewString()}
}

// ID returns the receipt identifier.
func (r *Receipt) ID() string {
	return r.id
}

// AddLineItem appends a priced line.
func (r *Receipt) AddLineItem(p catalog.Product, quantity, unitPrice, totalPrice float64) {
	r.items = append(r.items, LineItem{
		Product:    p,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		TotalPrice: totalPrice,
	})
}

// AddDiscount appends a discount. The zero value is ignored so callers can
// forward "no discount" without a presence check.
func (r *Receipt) AddDiscount(d offer.Discount) {
	if d.IsZero() {
		return
	}
	r.discounts = append(r.discounts, d)
}

// Items returns the line items in checkout order.
func (r *Receipt) Items() []LineItem {
	out := make([]LineItem, len(r.items))
	copy(out, r.items)
	return out
}

// Discounts returns the applied discounts in evaluation order.
func (r *Receipt) Discounts() []offer.Discount {
	out := make([]offer.Discount, len(r.discounts))
	copy(out, r.discounts)
	return out
}

// TotalItemAmount sums the line item totals at full precision.
func (r *Receipt) TotalItemAmount() float64 {
	var total float64
	for _, item := range r.items {
		total += item.TotalPrice
	}
	return total
}

// TotalDiscountAmount sums the discount amounts at full precision. Each
// amount is zero or negative.
func (r *Receipt) TotalDiscountAmount() float64 {
	var total float64
	for _, d := range r.discounts {
		total += d.Amount
	}
	return total
}

// TotalPrice is the item and discount totals combined, rounded to two
// decimals. Rounding happens only here; accumulation keeps full precision.
func (r *Receipt) TotalPrice() float64 {
	return math.Round((r.TotalItemAmount()+r.TotalDiscountAmount())*100) / 100
}
