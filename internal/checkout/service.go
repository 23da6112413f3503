package checkout

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/noah-isme/backend-pos/internal/cart"
	"github.com/noah-isme/backend-pos/internal/catalog"
	"github.com/noah-isme/backend-pos/internal/common"
	"github.com/noah-isme/backend-pos/internal/offer"
	"github.com/noah-isme/backend-pos/internal/receipt"
)

// Service is the teller: it owns the active offer set and prices carts
// against the injected catalog. Offer registration happens at configuration
// time; checkouts only read, so concurrent checkouts are safe.
type Service struct {
	Catalog catalog.Catalog

	mu     sync.RWMutex
	offers []offer.Offer
}

// AddSpecialOffer registers a single-product offer.
func (s *Service) AddSpecialOffer(t offer.Type, product catalog.Product, argument float64) error {
	o, err := offer.New(t, product, argument)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.offers = append(s.offers, o)
	s.mu.Unlock()
	return nil
}

// AddBundleOffer registers a bundle offer over distinct products.
func (s *Service) AddBundleOffer(products []catalog.Product, argument float64) error {
	o, err := offer.NewBundle(products, argument)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.offers = append(s.offers, o)
	s.mu.Unlock()
	return nil
}

// Offers returns the registered offers in registration order.
func (s *Service) Offers() []offer.Offer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]offer.Offer, len(s.offers))
	copy(out, s.offers)
	return out
}

// CheckOut prices every cart line in add order, then evaluates the offer set
// against the accumulated totals and attaches the resulting discounts. A
// missing price is a configuration error and aborts the whole checkout.
func (s *Service) CheckOut(c *cart.Cart) (*receipt.Receipt, error) {
	if s == nil || s.Catalog == nil {
		return nil, errors.New("checkout service not configured")
	}
	rcpt := receipt.New()
	for _, line := range c.Lines() {
		unitPrice, err := s.Catalog.UnitPrice(line.Product)
		if err != nil {
			return nil, priceError(line.Product, err)
		}
		rcpt.AddLineItem(line.Product, line.Quantity, unitPrice, line.Quantity*unitPrice)
	}
	discounts, err := offer.Evaluate(c.Quantities(), s.Offers(), s.Catalog)
	if err != nil {
		return nil, common.NewAppError("PRICE_NOT_FOUND", err.Error(), http.StatusUnprocessableEntity, err)
	}
	for _, d := range discounts {
		rcpt.AddDiscount(d)
	}
	return rcpt, nil
}

func priceError(p catalog.Product, err error) error {
	msg := fmt.Sprintf("no price for %q (%s)", p.Name, p.Unit)
	return common.NewAppError("PRICE_NOT_FOUND", msg, http.StatusUnprocessableEntity, err)
}
