package catalog

import (
	"encoding/json"
	"net/http"

	validator "github.com/go-playground/validator/v10"

	"github.com/noah-isme/backend-pos/internal/common"
)

// Handler exposes catalog configuration endpoints.
type Handler struct {
	Store    *Store
	Validate *validator.Validate
}

type productPayload struct {
	Name  string  `json:"name" validate:"required"`
	Unit  string  `json:"unit" validate:"required"`
	Price float64 `json:"price" validate:"gt=0"`
}

// Create handles POST /api/v1/products.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog store not configured", nil)
		return
	}
	var payload productPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(payload); err != nil {
			common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
			return
		}
	}
	unit, err := ParseUnit(payload.Unit)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		return
	}
	product := Product{Name: payload.Name, Unit: unit}
	h.Store.AddProduct(product, payload.Price)
	common.JSON(w, http.StatusCreated, map[string]any{
		"data": Entry{Product: product, Price: payload.Price},
	})
}

// List handles GET /api/v1/products.
func (h *Handler) List(w http.ResponseWriter, _ *http.Request) {
	if h.Store == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog store not configured", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": h.Store.Entries()})
}
