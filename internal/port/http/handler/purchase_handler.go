package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shopcore/admin-service/internal/platform/logger"
	"github.com/shopcore/admin-service/internal/service"
)

type PurchaseHandler struct {
	purchase service.PurchaseService
	log      logger.Logger
}

func NewPurchaseHandler(purchase service.PurchaseService, log logger.Logger) *PurchaseHandler {
	return &PurchaseHandler{purchase: purchase, log: log}
}

func (h *PurchaseHandler) ProductsNearPostalCode(w http.ResponseWriter, r *http.Request) {
	postalCode := r.URL.Query().Get("postal_code")
	products, err := h.purchase.ProductsNearPostalCode(r.Context(), postalCode)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

type purchaseRequest struct {
	UserID     string `json:"user_id"`
	PostalCode string `json:"postal_code"`
	ProductID  string `json:"product_id"`
	Quantity   int    `json:"quantity"`
}

func (h *PurchaseHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	var req purchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warnf("Purchase: invalid request body: %v", err)
		writeBadRequest(w, "invalid request body")
		return
	}

	result, err := h.purchase.Purchase(r.Context(), service.PurchaseParams{
		UserID:     req.UserID,
		PostalCode: req.PostalCode,
		ProductID:  req.ProductID,
		Quantity:   req.Quantity,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *PurchaseHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	result, err := h.purchase.Checkout(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, err)
		return
	}

	status := http.StatusOK
	if result.Failures > 0 {
		// Partial failure is reported explicitly, never as a blanket success.
		status = http.StatusMultiStatus
	}
	writeJSON(w, status, result)
}
