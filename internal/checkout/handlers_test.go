package checkout_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	validator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-pos/internal/checkout"
	"github.com/noah-isme/backend-pos/internal/offer"
)

type checkoutResponse struct {
	Data checkout.Output `json:"data"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type offersResponse struct {
	Data []offer.Offer `json:"data"`
}

func newHandler(t *testing.T) (*checkout.Handler, *checkout.Service) {
	t.Helper()
	svc, _ := newService(t)
	return &checkout.Handler{Svc: svc, Validate: validator.New()}, svc
}

func postJSON(t *testing.T, handlerFunc http.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handlerFunc(rec, req)
	return rec
}

func TestCheckoutHandler(t *testing.T) {
	handler, svc := newHandler(t)
	require.NoError(t, svc.AddSpecialOffer(offer.TwoForAmount, cherryTomatoes, 0.99))

	body := `{"items":[
		{"name":"cherry tomatoes","unit":"EACH","quantity":1},
		{"name":"cherry tomatoes","unit":"EACH","quantity":1}
	]}`
	rec := postJSON(t, handler.Checkout, "/api/v1/checkout", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp checkoutResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.ReceiptID)
	require.Len(t, resp.Data.Items, 2)
	require.Len(t, resp.Data.Discounts, 1)
	require.Equal(t, "2 for 0.99", resp.Data.Discounts[0].Description)
	require.InDelta(t, 1.38, resp.Data.TotalItemAmount, 1e-9)
	require.InDelta(t, -0.39, resp.Data.TotalDiscountAmount, 1e-9)
	require.InDelta(t, 0.99, resp.Data.TotalPrice, 1e-9)
}

func TestCheckoutHandlerValidation(t *testing.T) {
	handler, _ := newHandler(t)

	t.Run("empty items", func(t *testing.T) {
		rec := postJSON(t, handler.Checkout, "/api/v1/checkout", `{"items":[]}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := postJSON(t, handler.Checkout, "/api/v1/checkout", `{"items":`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown unit", func(t *testing.T) {
		rec := postJSON(t, handler.Checkout, "/api/v1/checkout", `{"items":[{"name":"rice","unit":"LITRE","quantity":1}]}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCheckoutHandlerMissingPrice(t *testing.T) {
	handler, _ := newHandler(t)

	rec := postJSON(t, handler.Checkout, "/api/v1/checkout", `{"items":[{"name":"caviar","unit":"EACH","quantity":1}]}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "PRICE_NOT_FOUND", resp.Error.Code)
	require.Contains(t, resp.Error.Message, "caviar")
}

func TestCreateOfferHandler(t *testing.T) {
	handler, svc := newHandler(t)

	t.Run("single product offer", func(t *testing.T) {
		body := `{"type":"THREE_FOR_TWO","product":{"name":"toothbrush","unit":"EACH"}}`
		rec := postJSON(t, handler.CreateOffer, "/api/v1/offers", body)
		require.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("bundle offer", func(t *testing.T) {
		body := `{"type":"BUNDLE","products":[{"name":"toothbrush","unit":"EACH"},{"name":"toothpaste","unit":"EACH"}]}`
		rec := postJSON(t, handler.CreateOffer, "/api/v1/offers", body)
		require.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("bundle below two products", func(t *testing.T) {
		body := `{"type":"BUNDLE","products":[{"name":"toothbrush","unit":"EACH"}]}`
		rec := postJSON(t, handler.CreateOffer, "/api/v1/offers", body)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown type", func(t *testing.T) {
		body := `{"type":"BOGOF","product":{"name":"toothbrush","unit":"EACH"}}`
		rec := postJSON(t, handler.CreateOffer, "/api/v1/offers", body)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("single offer without product", func(t *testing.T) {
		body := `{"type":"THREE_FOR_TWO"}`
		rec := postJSON(t, handler.CreateOffer, "/api/v1/offers", body)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	require.Len(t, svc.Offers(), 2)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/offers", nil)
	rec := httptest.NewRecorder()
	handler.ListOffers(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp offersResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	require.Equal(t, offer.ThreeForTwo, resp.Data[0].Type)
	require.Equal(t, offer.Bundle, resp.Data[1].Type)
}
