package health

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/lordsadmin/internal/app/system/apiclient"
	"github.com/dalemusser/lordsadmin/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Handler holds dependencies needed for health checks.
type Handler struct {
	API    *apiclient.Client
	Client *mongo.Client // nil when no audit database is configured
	Log    *zap.Logger
}

// NewHandler constructs a health Handler. client may be nil.
func NewHandler(api *apiclient.Client, client *mongo.Client, logger *zap.Logger) *Handler {
	return &Handler{
		API:    api,
		Client: client,
		Log:    logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status   string `json:"status"`
	Backend  string `json:"backend"`
	Breaker  string `json:"breaker"`
	Database string `json:"database"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Serve handles GET and HEAD /health.
//
// On success: 200 and
//
//	{ "status":"ok", "backend":"reachable", "breaker":"closed", "database":"connected" }
//
// "database" is "disabled" when Mongo is not configured. If the backend or
// a configured database does not answer: 503 with status "error".
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{
		Status:   "ok",
		Backend:  "reachable",
		Breaker:  h.API.BreakerState(),
		Database: "disabled",
	}

	if err := h.API.Ping(ctx); err != nil {
		h.Log.Error("health-check: backend ping failed", zap.Error(err), zap.String("base_url", h.API.BaseURL()))
		resp.Status = "error"
		resp.Backend = "unreachable"
		resp.Message = "Backend unavailable"
		resp.Error = err.Error()
	}

	if h.Client != nil {
		resp.Database = "connected"
		if err := h.Client.Ping(ctx, readpref.Primary()); err != nil {
			h.Log.Error("health-check: mongo ping failed", zap.Error(err))
			resp.Database = "disconnected"
			if resp.Status == "ok" {
				resp.Status = "error"
				resp.Message = "Database unavailable"
				resp.Error = err.Error()
			}
		}
	}

	if resp.Status != "ok" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(resp)
}
