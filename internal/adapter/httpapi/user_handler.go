package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rajasharmaa/dttt/internal/adapter/httpapi/middleware"
	"github.com/rajasharmaa/dttt/internal/usecase"
)

// UserHandler serves profile view and update. Routes are behind RequireUser;
// the owner-or-admin check happens in the usecase because it compares the
// session's user id against the path parameter.
type UserHandler struct {
	auth *usecase.AuthUsecase
	rs   *responder
}

func NewUserHandler(auth *usecase.AuthUsecase, rs *responder) *UserHandler {
	return &UserHandler{auth: auth, rs: rs}
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.SessionFromContext(r.Context())

	user, err := h.auth.GetUser(r.Context(), *identity, chi.URLParam(r, "id"))
	if err != nil {
		h.rs.writeError(w, err)
		return
	}

	h.rs.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    user.View(),
	})
}

type updateUserRequest struct {
	Name            *string `json:"name"`
	Phone           *string `json:"phone"`
	CurrentPassword string  `json:"currentPassword"`
	NewPassword     string  `json:"newPassword"`
}

func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.SessionFromContext(r.Context())
	token, _ := middleware.TokenFromContext(r.Context())

	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.rs.writeBadRequest(w, "Invalid request body")
		return
	}

	user, err := h.auth.UpdateProfile(r.Context(), *identity, token, chi.URLParam(r, "id"), usecase.UpdateProfileInput{
		Name:            req.Name,
		Phone:           req.Phone,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		h.rs.writeError(w, err)
		return
	}

	h.rs.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Profile updated successfully",
		"data":    user.View(),
	})
}
