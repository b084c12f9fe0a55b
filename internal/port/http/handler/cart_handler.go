package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shopcore/admin-service/internal/domain/entity"
	"github.com/shopcore/admin-service/internal/platform/logger"
	"github.com/shopcore/admin-service/internal/service"
)

type CartHandler struct {
	cart service.CartService
	log  logger.Logger
}

func NewCartHandler(cart service.CartService, log logger.Logger) *CartHandler {
	return &CartHandler{cart: cart, log: log}
}

// cartResponse flags quantities that were clamped to the line's stock
// snapshot so the caller can warn the user.
type cartResponse struct {
	Cart        *entity.Cart `json:"cart"`
	Clamped     bool         `json:"clamped"`
	TotalAmount float64      `json:"total_amount"`
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	cart, err := h.cart.GetCart(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cartResponse{Cart: cart, TotalAmount: cart.TotalAmount()})
}

type addItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warnf("AddItem: invalid request body: %v", err)
		writeBadRequest(w, "invalid request body")
		return
	}

	cart, clamped, err := h.cart.AddItem(r.Context(), chi.URLParam(r, "userID"), req.ProductID, req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cartResponse{Cart: cart, Clamped: clamped, TotalAmount: cart.TotalAmount()})
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warnf("UpdateQuantity: invalid request body: %v", err)
		writeBadRequest(w, "invalid request body")
		return
	}

	cart, clamped, err := h.cart.UpdateItemQuantity(r.Context(), chi.URLParam(r, "userID"), chi.URLParam(r, "productID"), req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cartResponse{Cart: cart, Clamped: clamped, TotalAmount: cart.TotalAmount()})
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	cart, err := h.cart.RemoveItem(r.Context(), chi.URLParam(r, "userID"), chi.URLParam(r, "productID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cartResponse{Cart: cart, TotalAmount: cart.TotalAmount()})
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.cart.ClearCart(r.Context(), chi.URLParam(r, "userID")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func (h *CartHandler) AckNewItem(w http.ResponseWriter, r *http.Request) {
	if err := h.cart.AckNewItem(r.Context(), chi.URLParam(r, "userID")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "acknowledged"})
}
