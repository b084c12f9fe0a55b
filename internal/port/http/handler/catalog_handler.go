package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shopcore/admin-service/internal/domain/entity"
	"github.com/shopcore/admin-service/internal/platform/logger"
	"github.com/shopcore/admin-service/internal/service"
)

const maxImageUploadBytes = 10 << 20 // 10 MB

type CatalogHandler struct {
	catalog service.CatalogService
	log     logger.Logger
}

func NewCatalogHandler(catalog service.CatalogService, log logger.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, log: log}
}

func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *CatalogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var product entity.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		h.log.Warnf("CreateProduct: invalid request body: %v", err)
		writeBadRequest(w, "invalid request body")
		return
	}

	saved, err := h.catalog.CreateProduct(r.Context(), &product)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (h *CatalogHandler) Update(w http.ResponseWriter, r *http.Request) {
	var product entity.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		h.log.Warnf("UpdateProduct: invalid request body: %v", err)
		writeBadRequest(w, "invalid request body")
		return
	}
	product.ID = chi.URLParam(r, "id")

	saved, err := h.catalog.UpdateProduct(r.Context(), &product)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (h *CatalogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// UploadImage accepts a multipart form with an "image" file and returns
// the stored image URL to be set on a product record.
func (h *CatalogHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImageUploadBytes); err != nil {
		h.log.Warnf("UploadImage: invalid multipart form: %v", err)
		writeBadRequest(w, "invalid multipart form")
		return
	}

	f, header, err := r.FormFile("image")
	if err != nil {
		writeBadRequest(w, "missing image file")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxImageUploadBytes))
	if err != nil {
		h.log.Errorf("UploadImage: failed to read file %s: %v", header.Filename, err)
		writeBadRequest(w, "failed to read image file")
		return
	}

	url, err := h.catalog.UploadImage(r.Context(), header.Filename, data)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"url": url})
}
