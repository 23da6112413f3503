package offer

import (
	"fmt"
	"math"
	"strconv"

	"github.com/noah-isme/backend-pos/internal/catalog"
)

// Every complete bundle is discounted by this fixed percentage; the offer's
// configured argument is not consulted. TODO: honour Offer.Argument here and
// in the ten-percent rule once product decides the configured value should win.
const bundlePercentOff = 10.0

// Evaluate runs every offer against the cart's accumulated quantities and
// returns the discounts that apply, in offer order. Offers are independent
// rules over the raw totals: one offer consuming a quantity does not reduce
// what another offer on the same product sees. A price lookup failure aborts
// evaluation with the error; there is no partial result.
func Evaluate(quantities map[catalog.Product]float64, offers []Offer, prices catalog.Catalog) ([]Discount, error) {
	var discounts []Discount
	for _, o := range offers {
		var (
			d   Discount
			ok  bool
			err error
		)
		if o.Type == Bundle {
			d, ok, err = bundleDiscount(o, quantities, prices)
		} else {
			d, ok, err = singleProductDiscount(o, quantities, prices)
		}
		if err != nil {
			return nil, err
		}
		if ok {
			discounts = append(discounts, d)
		}
	}
	return discounts, nil
}

func singleProductDiscount(o Offer, quantities map[catalog.Product]float64, prices catalog.Catalog) (Discount, bool, error) {
	product := o.Product()
	quantity := quantities[product]
	if quantity == 0 {
		return Discount{}, false, nil
	}
	unitPrice, err := prices.UnitPrice(product)
	if err != nil {
		return Discount{}, false, err
	}

	var (
		amount      float64
		description string
	)
	switch o.Type {
	case ThreeForTwo:
		amount = bulkDiscount(quantity, unitPrice, 3, 2*unitPrice)
		description = "3 for 2"
	case TwoForAmount:
		amount = bulkDiscount(quantity, unitPrice, 2, o.Argument)
		description = "2 for " + formatAmount(o.Argument)
	case FiveForAmount:
		amount = bulkDiscount(quantity, unitPrice, 5, o.Argument)
		description = "5 for " + formatAmount(o.Argument)
	case TenPercentDiscount:
		amount = -quantity * unitPrice * 10.0 / 100.0
		description = "10.0% off"
	}
	if amount == 0 {
		return Discount{}, false, nil
	}
	return Discount{Products: o.Products, Description: description, Amount: amount}, true, nil
}

// bulkDiscount prices whole groups of bulk units at groupPrice and the
// remainder at the plain unit price. Below one full group the difference is
// exactly zero and the caller suppresses the discount.
func bulkDiscount(quantity, unitPrice float64, bulk int, groupPrice float64) float64 {
	groups := math.Floor(quantity / float64(bulk))
	remainder := math.Mod(quantity, float64(bulk))
	paid := groups*groupPrice + remainder*unitPrice
	return paid - quantity*unitPrice
}

func bundleDiscount(o Offer, quantities map[catalog.Product]float64, prices catalog.Catalog) (Discount, bool, error) {
	complete := completeBundles(o.Products, quantities)
	if complete == 0 {
		return Discount{}, false, nil
	}
	var fullBundlePrice float64
	for _, p := range o.Products {
		unitPrice, err := prices.UnitPrice(p)
		if err != nil {
			return Discount{}, false, err
		}
		fullBundlePrice += unitPrice
	}
	amount := -float64(complete) * fullBundlePrice * bundlePercentOff / 100.0
	return Discount{
		Products:    o.Products,
		Description: fmt.Sprintf("%d Bundle", complete),
		Amount:      amount,
	}, true, nil
}

// completeBundles is the largest whole number of times every product in the
// subject is jointly present, one unit each per bundle.
func completeBundles(products []catalog.Product, quantities map[catalog.Product]float64) int {
	lowest := math.Inf(1)
	for _, p := range products {
		q := quantities[p]
		if q < lowest {
			lowest = q
		}
	}
	if math.IsInf(lowest, 1) || lowest <= 0 {
		return 0
	}
	return int(math.Floor(lowest))
}

func formatAmount(a float64) string {
	return strconv.FormatFloat(a, 'f', -1, 64)
}
