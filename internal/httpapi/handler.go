// Package httpapi exposes the shop state over a JSON HTTP API.
package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mmynk/shophub/internal/auth"
	"github.com/mmynk/shophub/internal/calculator"
	"github.com/mmynk/shophub/internal/models"
	"github.com/mmynk/shophub/internal/service"
)

type Handler struct {
	shop   *service.Shop
	logger *slog.Logger
}

func NewHandler(shop *service.Shop, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{shop: shop, logger: logger}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Session

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Authenticated bool                `json:"authenticated"`
	User          *models.SessionUser `json:"user"`
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req auth.SignupInput
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	user, err := h.shop.Session.Signup(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	user, err := h.shop.Session.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.shop.Session.Logout(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	user := h.shop.Session.CurrentUser()
	writeJSON(w, http.StatusOK, sessionResponse{Authenticated: user != nil, User: user})
}

// Catalog

func (h *Handler) Products(w http.ResponseWriter, r *http.Request) {
	products, err := h.shop.Catalog.Products(r.Context())
	if err != nil {
		writeJSON(w, http.StatusBadGateway, products)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// Cart

type cartResponse struct {
	models.Cart
	Summary models.OrderSummary `json:"summary"`
}

type quantityRequest struct {
	Quantity *int `json:"quantity"`
}

type quantityResponse struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	h.writeCart(w, h.shop.Cart.Cart(), nil)
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var p models.Product
	if err := decodeJSON(w, r, &p); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if p.ID <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "product id is required"})
		return
	}

	cart, err := h.shop.Cart.AddToCart(r.Context(), p)
	h.writeCart(w, cart, err)
}

func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}
	var req quantityRequest
	if err := decodeJSON(w, r, &req); err != nil || req.Quantity == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "quantity is required"})
		return
	}

	cart, err := h.shop.Cart.UpdateQuantity(r.Context(), productID, *req.Quantity)
	h.writeCart(w, cart, err)
}

func (h *Handler) IncrementItem(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}
	cart, err := h.shop.Cart.IncrementQuantity(r.Context(), productID)
	h.writeCart(w, cart, err)
}

func (h *Handler) DecrementItem(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}
	cart, err := h.shop.Cart.DecrementQuantity(r.Context(), productID)
	h.writeCart(w, cart, err)
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}
	cart, err := h.shop.Cart.RemoveFromCart(r.Context(), productID)
	h.writeCart(w, cart, err)
}

func (h *Handler) ItemQuantity(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, quantityResponse{
		ProductID: productID,
		Quantity:  h.shop.Cart.GetProductQuantity(productID),
	})
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.shop.Cart.ClearCart(r.Context())
	h.writeCart(w, cart, err)
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	summary, err := h.shop.Cart.Checkout(r.Context())
	if errors.Is(err, service.ErrEmptyCart) {
		h.writeError(w, err)
		return
	}
	if err != nil {
		// The order is confirmed; only the persisted cart could not be cleared.
		h.logger.Warn("Checkout completed with persist failure", "error", err)
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) writeCart(w http.ResponseWriter, cart models.Cart, err error) {
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cartResponse{Cart: cart, Summary: calculator.Summarize(cart)})
}

func productIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "productId"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid product id"})
		return 0, false
	}
	return id, true
}
