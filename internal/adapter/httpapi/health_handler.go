package httpapi

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// HealthHandler serves liveness and service metadata endpoints.
type HealthHandler struct {
	mongoClient *mongo.Client
	serviceName string
	environment string
	rs          *responder
	startTime   time.Time
}

func NewHealthHandler(mongoClient *mongo.Client, serviceName, environment string, rs *responder) *HealthHandler {
	return &HealthHandler{
		mongoClient: mongoClient,
		serviceName: serviceName,
		environment: environment,
		rs:          rs,
		startTime:   time.Now(),
	}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.mongoClient.Ping(ctx, readpref.Primary()); err != nil {
		h.rs.writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"status":    "unhealthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"error":     "Database connection failed",
		})
		return
	}

	h.rs.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":         "healthy",
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
		"service":        h.serviceName,
		"environment":    h.environment,
		"database":       "connected",
		"uptime_seconds": int64(time.Since(h.startTime).Seconds()),
	})
}

func (h *HealthHandler) Info(w http.ResponseWriter, r *http.Request) {
	h.rs.writeJSON(w, http.StatusOK, map[string]interface{}{
		"name":        h.serviceName,
		"version":     "1.0.0",
		"description": "E-commerce and inquiry management system",
		"environment": h.environment,
		"go_version":  runtime.Version(),
	})
}
