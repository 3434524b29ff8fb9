package httpapi

import (
	"encoding/json"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rajasharmaa/dttt/internal/adapter/httpapi/middleware"
	"github.com/rajasharmaa/dttt/internal/platform/metrics"
	"github.com/rajasharmaa/dttt/internal/usecase"
)

// InquiryHandler serves public inquiry creation and the caller's own
// inquiry list.
type InquiryHandler struct {
	inquiries *usecase.InquiryUsecase
	metrics   *metrics.Manager // optional
	rs        *responder
}

func NewInquiryHandler(inquiries *usecase.InquiryUsecase, m *metrics.Manager, rs *responder) *InquiryHandler {
	return &InquiryHandler{inquiries: inquiries, metrics: m, rs: rs}
}

type createInquiryRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (h *InquiryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createInquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.rs.writeBadRequest(w, "Invalid request body")
		return
	}

	// Ownership comes from the session, never from the request body, so an
	// inquiry cannot be pinned on another user. Anonymous submissions are
	// allowed.
	var submitter *primitive.ObjectID
	if identity, ok := middleware.SessionFromContext(r.Context()); ok {
		if id, err := primitive.ObjectIDFromHex(identity.UserID); err == nil {
			submitter = &id
		}
	}

	inquiry, err := h.inquiries.Create(r.Context(), usecase.CreateInquiryInput{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Subject:         req.Subject,
		Message:         req.Message,
		SubmitterUserID: submitter,
	})
	if err != nil {
		h.rs.writeError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.InquiriesCreatedTotal.Inc()
	}

	h.rs.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Inquiry submitted successfully",
		"data":    inquiry,
	})
}

func (h *InquiryHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.SessionFromContext(r.Context())

	inquiries, err := h.inquiries.ListForUser(r.Context(), identity.UserID)
	if err != nil {
		h.rs.writeError(w, err)
		return
	}

	h.rs.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    inquiries,
		"count":   len(inquiries),
	})
}
