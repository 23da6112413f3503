package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrProductNotFound indicates the product was never registered with a price.
var ErrProductNotFound = errors.New("product not found in catalog")

// Unit identifies how a product is measured and sold.
type Unit string

const (
	// UnitEach is for products sold as discrete articles.
	UnitEach Unit = "EACH"
	// UnitKilo is for products sold by weight.
	UnitKilo Unit = "KILO"
)

// ParseUnit converts the wire representation of a sales unit.
func ParseUnit(value string) (Unit, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case string(UnitEach):
		return UnitEach, nil
	case string(UnitKilo):
		return UnitKilo, nil
	}
	return "", fmt.Errorf("unknown product unit %q", value)
}

// Product identifies a sellable article by name and sales unit. Two products
// with the same name and unit are the same product, so the type is usable as
// a map key throughout the pricing code.
type Product struct {
	Name string `json:"name"`
	Unit Unit   `json:"unit"`
}

// Catalog is the price lookup capability consumed during pricing. It is
// queried, never mutated, while a checkout runs.
type Catalog interface {
	UnitPrice(p Product) (float64, error)
}

// Entry pairs a product with its configured unit price.
type Entry struct {
	Product Product `json:"product"`
	Price   float64 `json:"price"`
}

// Store is an in-memory Catalog implementation safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	prices map[Product]float64
}

// NewStore constructs an empty Store.
func NewStore() *Store {
	return &Store{prices: make(map[Product]float64)}
}

// AddProduct registers or replaces the unit price for a product.
func (s *Store) AddProduct(p Product, price float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prices[p] = price
}

// UnitPrice implements Catalog.
func (s *Store) UnitPrice(p Product) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	price, ok := s.prices[p]
	if !ok {
		return 0, fmt.Errorf("%q (%s): %w", p.Name, p.Unit, ErrProductNotFound)
	}
	return price, nil
}

// Entries returns the registered products sorted by name for stable listings.
func (s *Store) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Entry, 0, len(s.prices))
	for p, price := range s.prices {
		out = append(out, Entry{Product: p, Price: price})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Product.Name != out[j].Product.Name {
			return out[i].Product.Name < out[j].Product.Name
		}
		return out[i].Product.Unit < out[j].Product.Unit
	})
	return out
}

// Len reports how many products carry a price.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.prices)
}
