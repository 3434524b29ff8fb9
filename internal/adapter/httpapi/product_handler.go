package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rajasharmaa/dttt/internal/usecase"
)

// ProductHandler serves the public, read-only product catalog.
type ProductHandler struct {
	products *usecase.ProductUsecase
	rs       *responder
}

func NewProductHandler(products *usecase.ProductUsecase, rs *responder) *ProductHandler {
	return &ProductHandler{products: products, rs: rs}
}

// queryInt64 parses an integer query parameter, returning 0 when absent or
// malformed so the usecase applies its defaults.
func queryInt64(r *http.Request, key string) int64 {
	value, err := strconv.ParseInt(r.URL.Query().Get(key), 10, 64)
	if err != nil {
		return 0
	}
	return value
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	search := r.URL.Query().Get("search")

	products, pagination, err := h.products.List(r.Context(), category, search, queryInt64(r, "page"), queryInt64(r, "limit"))
	if err != nil {
		h.rs.writeError(w, err)
		return
	}

	h.rs.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"data":       products,
		"pagination": pagination,
	})
}

func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.rs.writeError(w, err)
		return
	}

	h.rs.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    product,
	})
}

func (h *ProductHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")

	products, err := h.products.ListByCategory(r.Context(), category, queryInt64(r, "limit"))
	if err != nil {
		h.rs.writeError(w, err)
		return
	}

	h.rs.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"data":     products,
		"category": category,
		"count":    len(products),
	})
}
