package offer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/noah-isme/backend-pos/internal/catalog"
)

var (
	// ErrBundleTooSmall is returned when a bundle offer carries fewer than two distinct products.
	ErrBundleTooSmall = errors.New("bundle offer needs at least two distinct products")
	// ErrSubjectMismatch is returned when an offer is constructed with the wrong subject shape.
	ErrSubjectMismatch = errors.New("offer subject does not match offer type")
)

// Type enumerates the supported promotional rules.
type Type string

const (
	ThreeForTwo        Type = "THREE_FOR_TWO"
	TenPercentDiscount Type = "TEN_PERCENT_DISCOUNT"
	TwoForAmount       Type = "TWO_FOR_AMOUNT"
	FiveForAmount      Type = "FIVE_FOR_AMOUNT"
	Bundle             Type = "BUNDLE"
)

// ParseType converts the wire representation of an offer type.
func ParseType(value string) (Type, error) {
	switch Type(strings.ToUpper(strings.TrimSpace(value))) {
	case ThreeForTwo:
		return ThreeForTwo, nil
	case TenPercentDiscount:
		return TenPercentDiscount, nil
	case TwoForAmount:
		return TwoForAmount, nil
	case FiveForAmount:
		return FiveForAmount, nil
	case Bundle:
		return Bundle, nil
	}
	return "", fmt.Errorf("unknown offer type %q", value)
}

// Offer describes one promotional rule. The subject shape is decided at
// construction time: single-product types carry exactly one product, bundle
// offers carry two or more distinct products. Offers are immutable once built.
type Offer struct {
	Type     Type              `json:"type"`
	Products []catalog.Product `json:"products"`
	Argument float64           `json:"argument"`
}

// New builds a single-product offer. Argument is the target price for
// TWO_FOR_AMOUNT and FIVE_FOR_AMOUNT and is unused for the other types.
func New(t Type, product catalog.Product, argument float64) (Offer, error) {
	switch t {
	case ThreeForTwo, TenPercentDiscount, TwoForAmount, FiveForAmount:
	case Bundle:
		return Offer{}, fmt.Errorf("bundle offers take a product collection: %w", ErrSubjectMismatch)
	default:
		return Offer{}, fmt.Errorf("unknown offer type %q", t)
	}
	return Offer{Type: t, Products: []catalog.Product{product}, Argument: argument}, nil
}

// NewBundle builds a bundle offer over two or more distinct products.
func NewBundle(products []catalog.Product, argument float64) (Offer, error) {
	seen := make(map[catalog.Product]struct{}, len(products))
	subject := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		subject = append(subject, p)
	}
	if len(subject) < 2 {
		return Offer{}, ErrBundleTooSmall
	}
	return Offer{Type: Bundle, Products: subject, Argument: argument}, nil
}

// Product returns the subject of a single-product offer.
func (o Offer) Product() catalog.Product {
	return o.Products[0]
}

// Discount is the result of one applicable offer. Amount is never positive;
// it reduces the receipt total.
type Discount struct {
	Products    []catalog.Product `json:"products"`
	Description string            `json:"description"`
	Amount      float64           `json:"amount"`
}

// IsZero reports whether the discount is the zero value.
func (d Discount) IsZero() bool {
	return len(d.Products) == 0 && d.Description == "" && d.Amount == 0
}
