package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/rajasharmaa/dttt/internal/adapter/httpapi/middleware"
	"github.com/rajasharmaa/dttt/internal/platform/metrics"
	"github.com/rajasharmaa/dttt/internal/session"
	"github.com/rajasharmaa/dttt/internal/usecase"
)

// AuthHandler serves registration, login, logout and session status.
type AuthHandler struct {
	auth          *usecase.AuthUsecase
	metrics       *metrics.Manager // optional
	rs            *responder
	secureCookies bool
}

func NewAuthHandler(auth *usecase.AuthUsecase, m *metrics.Manager, rs *responder, secureCookies bool) *AuthHandler {
	return &AuthHandler{auth: auth, metrics: m, rs: rs, secureCookies: secureCookies}
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	sameSite := http.SameSiteLaxMode
	if h.secureCookies {
		// Cross-origin front-ends need SameSite=None, which requires Secure.
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(session.TTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: sameSite,
	})
}

func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.rs.writeBadRequest(w, "Invalid request body")
		return
	}

	user, token, err := h.auth.Register(r.Context(), usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		h.rs.writeError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.UsersRegisteredTotal.Inc()
	}

	h.setSessionCookie(w, token)
	h.rs.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Registration successful",
		"user":    user.View(),
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.rs.writeBadRequest(w, "Invalid request body")
		return
	}

	user, token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.rs.writeError(w, err)
		return
	}

	h.setSessionCookie(w, token)
	h.rs.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Login successful",
		"user":    user.View(),
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	// Logging out without a cookie (or twice) is fine; destroy is a no-op
	// for absent tokens.
	if cookie, err := r.Cookie(session.CookieName); err == nil {
		if err := h.auth.Logout(r.Context(), cookie.Value); err != nil {
			h.rs.writeError(w, err)
			return
		}
	}

	h.clearSessionCookie(w)
	h.rs.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Logout successful",
	})
}

func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		h.rs.writeJSON(w, http.StatusOK, map[string]interface{}{"authenticated": false})
		return
	}

	h.rs.writeJSON(w, http.StatusOK, map[string]interface{}{
		"authenticated": true,
		"user": map[string]string{
			"id":    identity.UserID,
			"name":  identity.Name,
			"email": identity.Email,
			"role":  identity.Role,
		},
	})
}
