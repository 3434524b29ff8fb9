package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rajasharmaa/dttt/internal/domain"
	"github.com/rajasharmaa/dttt/internal/platform/metrics"
	"github.com/rajasharmaa/dttt/internal/usecase"
)

// AdminHandler serves the admin inquiry queue. Routes are behind
// RequireAdmin.
type AdminHandler struct {
	inquiries *usecase.InquiryUsecase
	metrics   *metrics.Manager // optional
	rs        *responder
}

func NewAdminHandler(inquiries *usecase.InquiryUsecase, m *metrics.Manager, rs *responder) *AdminHandler {
	return &AdminHandler{inquiries: inquiries, metrics: m, rs: rs}
}

func (h *AdminHandler) ListInquiries(w http.ResponseWriter, r *http.Request) {
	var status *string
	if s := r.URL.Query().Get("status"); s != "" {
		status = &s
	}

	inquiries, pagination, err := h.inquiries.ListForAdmin(r.Context(), status, queryInt64(r, "page"), queryInt64(r, "limit"))
	if err != nil {
		h.rs.writeError(w, err)
		return
	}

	h.rs.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"data":       inquiries,
		"pagination": pagination,
	})
}

type updateInquiryRequest struct {
	Status *string `json:"status"`
	Read   *bool   `json:"read"`
}

func (h *AdminHandler) UpdateInquiry(w http.ResponseWriter, r *http.Request) {
	var req updateInquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.rs.writeBadRequest(w, "Invalid request body")
		return
	}

	inquiry, err := h.inquiries.UpdateStatus(r.Context(), chi.URLParam(r, "id"), domain.InquiryPatch{
		Status: req.Status,
		Read:   req.Read,
	})
	if err != nil {
		h.rs.writeError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.InquiryUpdatesTotal.Inc()
	}

	h.rs.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Inquiry updated successfully",
		"data":    inquiry,
	})
}
