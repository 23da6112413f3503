package checkout

import (
	"encoding/json"
	"errors"
	"net/http"

	validator "github.com/go-playground/validator/v10"

	"github.com/noah-isme/backend-pos/internal/cart"
	"github.com/noah-isme/backend-pos/internal/catalog"
	"github.com/noah-isme/backend-pos/internal/common"
	"github.com/noah-isme/backend-pos/internal/obs"
	"github.com/noah-isme/backend-pos/internal/offer"
	"github.com/noah-isme/backend-pos/internal/receipt"
)

// Handler exposes checkout and offer configuration endpoints.
type Handler struct {
	Svc      *Service
	Validate *validator.Validate
}

type itemPayload struct {
	Name     string  `json:"name" validate:"required"`
	Unit     string  `json:"unit" validate:"required"`
	Quantity float64 `json:"quantity" validate:"gt=0"`
}

// Input is the checkout request: one entry per add-to-cart action, in order.
type Input struct {
	Items []itemPayload `json:"items" validate:"required,min=1,dive"`
}

// Output is the receipt shape returned to rendering clients.
type Output struct {
	ReceiptID           string             `json:"receiptId"`
	Items               []receipt.LineItem `json:"items"`
	Discounts           []offer.Discount   `json:"discounts"`
	TotalItemAmount     float64            `json:"totalItemAmount"`
	TotalDiscountAmount float64            `json:"totalDiscountAmount"`
	TotalPrice          float64            `json:"totalPrice"`
}

type productRef struct {
	Name string `json:"name" validate:"required"`
	Unit string `json:"unit" validate:"required"`
}

type offerPayload struct {
	Type     string       `json:"type" validate:"required"`
	Product  *productRef  `json:"product,omitempty"`
	Products []productRef `json:"products,omitempty" validate:"omitempty,dive"`
	Argument float64      `json:"argument"`
}

// Checkout handles POST /api/v1/checkout.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "checkout service not configured", nil)
		return
	}
	var payload Input
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		countCheckout("invalid")
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if err := h.validate(payload); err != nil {
		countCheckout("invalid")
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		return
	}

	c := cart.New()
	for _, item := range payload.Items {
		unit, err := catalog.ParseUnit(item.Unit)
		if err != nil {
			countCheckout("invalid")
			common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
			return
		}
		c.Add(catalog.Product{Name: item.Name, Unit: unit}, item.Quantity)
	}

	rcpt, err := h.Svc.CheckOut(c)
	if err != nil {
		countCheckout("failed")
		h.writeError(w, err)
		return
	}

	discounts := rcpt.Discounts()
	countCheckout("ok")
	if obs.DiscountsApplied != nil {
		obs.DiscountsApplied.Add(float64(len(discounts)))
	}
	if obs.ReceiptTotal != nil {
		obs.ReceiptTotal.Observe(rcpt.TotalPrice())
	}

	common.JSON(w, http.StatusOK, map[string]any{"data": Output{
		ReceiptID:           rcpt.ID(),
		Items:               rcpt.Items(),
		Discounts:           discounts,
		TotalItemAmount:     rcpt.TotalItemAmount(),
		TotalDiscountAmount: rcpt.TotalDiscountAmount(),
		TotalPrice:          rcpt.TotalPrice(),
	}})
}

// CreateOffer handles POST /api/v1/offers.
func (h *Handler) CreateOffer(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "checkout service not configured", nil)
		return
	}
	var payload offerPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if err := h.validate(payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		return
	}
	offerType, err := offer.ParseType(payload.Type)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		return
	}

	if offerType == offer.Bundle {
		products := make([]catalog.Product, 0, len(payload.Products))
		for _, ref := range payload.Products {
			unit, err := catalog.ParseUnit(ref.Unit)
			if err != nil {
				common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
				return
			}
			products = append(products, catalog.Product{Name: ref.Name, Unit: unit})
		}
		if err := h.Svc.AddBundleOffer(products, payload.Argument); err != nil {
			common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
			return
		}
	} else {
		if payload.Product == nil {
			common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "product is required", nil)
			return
		}
		unit, err := catalog.ParseUnit(payload.Product.Unit)
		if err != nil {
			common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
			return
		}
		product := catalog.Product{Name: payload.Product.Name, Unit: unit}
		if err := h.Svc.AddSpecialOffer(offerType, product, payload.Argument); err != nil {
			common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
			return
		}
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": map[string]any{"registered": true}})
}

// ListOffers handles GET /api/v1/offers.
func (h *Handler) ListOffers(w http.ResponseWriter, _ *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "checkout service not configured", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": h.Svc.Offers()})
}

func (h *Handler) validate(payload any) error {
	if h.Validate == nil {
		return nil
	}
	return h.Validate.Struct(payload)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if err == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unknown error", nil)
		return
	}
	var appErr *common.AppError
	if errors.As(err, &appErr) {
		status := appErr.HTTPStatus
		if status == 0 {
			status = http.StatusBadRequest
		}
		code := appErr.Code
		if code == "" {
			code = "BAD_REQUEST"
		}
		common.JSONError(w, status, code, appErr.Message, appErr.Details)
		return
	}
	common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
}

func countCheckout(result string) {
	if obs.CheckoutTotal != nil {
		obs.CheckoutTotal.WithLabelValues(result).Inc()
	}
}
