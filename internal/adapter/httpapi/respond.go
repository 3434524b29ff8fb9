package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/rajasharmaa/dttt/internal/domain"
	"github.com/rajasharmaa/dttt/internal/platform/logger"
)

// errorBody is the stable error envelope returned on every failure.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// responder maps domain errors to HTTP statuses and writes JSON responses.
// Outside development mode internal error details are suppressed.
type responder struct {
	logger  *logger.Logger
	devMode bool
}

func newResponder(log *logger.Logger, devMode bool) *responder {
	return &responder{logger: log.Named("HTTPResponder"), devMode: devMode}
}

func (rs *responder) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		rs.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (rs *responder) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		rs.writeJSON(w, http.StatusBadRequest, errorBody{Error: "Validation Error", Message: err.Error()})
	case errors.Is(err, domain.ErrEmailTaken):
		rs.writeJSON(w, http.StatusConflict, errorBody{Error: "Conflict", Message: "User with this email already exists"})
	case errors.Is(err, domain.ErrInvalidCredentials):
		rs.writeJSON(w, http.StatusUnauthorized, errorBody{Error: "Authentication Error", Message: "Invalid credentials"})
	case errors.Is(err, domain.ErrUnauthenticated):
		rs.writeJSON(w, http.StatusUnauthorized, errorBody{Error: "Unauthorized", Message: "Please login to access this resource"})
	case errors.Is(err, domain.ErrForbidden):
		rs.writeJSON(w, http.StatusForbidden, errorBody{Error: "Forbidden", Message: "You do not have permission to access this resource"})
	case errors.Is(err, domain.ErrNotFound):
		rs.writeJSON(w, http.StatusNotFound, errorBody{Error: "Not Found", Message: "Resource not found"})
	default:
		rs.logger.Error("Internal error", zap.Error(err))
		message := "Something went wrong"
		if rs.devMode {
			message = err.Error()
		}
		rs.writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Internal Server Error", Message: message})
	}
}

func (rs *responder) writeBadRequest(w http.ResponseWriter, message string) {
	rs.writeJSON(w, http.StatusBadRequest, errorBody{Error: "Validation Error", Message: message})
}
