package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"person-api/internal/handler/http/respond"
	"person-api/internal/infra/httpclient"
)

// ExternalHealthHandler provides health check endpoints for the external
// lookup service dependency.
type ExternalHealthHandler struct {
	pool       *httpclient.Pool
	clientName string
	prober     ExternalProber
}

// ExternalProber performs a live reachability check against the external
// service and reports the round-trip latency.
type ExternalProber interface {
	Probe(ctx context.Context) (time.Duration, error)
}

// NewExternalHealthHandler creates a health check handler for the named
// external client. prober may be nil, in which case only the pool
// configuration is checked and no traffic is sent.
func NewExternalHealthHandler(pool *httpclient.Pool, clientName string, prober ExternalProber) *ExternalHealthHandler {
	return &ExternalHealthHandler{
		pool:       pool,
		clientName: clientName,
		prober:     prober,
	}
}

// ExternalHealthResponse represents the response structure for the external
// health endpoint.
type ExternalHealthResponse struct {
	Status  string   `json:"status"`
	Client  string   `json:"client,omitempty"`
	Clients []string `json:"clients,omitempty"`
	Message string   `json:"message,omitempty"`
	Latency string   `json:"latency,omitempty"`
}

// Health returns the status of the external lookup dependency.
// GET /health/external
// Returns 200 if the named client is registered (and, with a prober
// configured, the service answered), 503 otherwise.
func (h *ExternalHealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	if h.pool == nil {
		h.write(w, http.StatusServiceUnavailable, ExternalHealthResponse{
			Status:  "unhealthy",
			Message: "client pool not configured",
		})
		return
	}

	if _, err := h.pool.Acquire(h.clientName); err != nil {
		h.write(w, http.StatusServiceUnavailable, ExternalHealthResponse{
			Status:  "unhealthy",
			Client:  h.clientName,
			Clients: h.pool.Names(),
			Message: "client not registered",
		})
		return
	}

	response := ExternalHealthResponse{
		Status:  "healthy",
		Client:  h.clientName,
		Clients: h.pool.Names(),
	}

	if h.prober != nil {
		latency, err := h.prober.Probe(ctx)
		if err != nil {
			h.write(w, http.StatusServiceUnavailable, ExternalHealthResponse{
				Status:  "unhealthy",
				Client:  h.clientName,
				Clients: h.pool.Names(),
				// Probe errors can carry full request URLs
				Message: respond.SanitizeError(err),
			})
			return
		}
		response.Latency = latency.String()
	}

	h.write(w, http.StatusOK, response)
}

func (h *ExternalHealthHandler) write(w http.ResponseWriter, status int, response ExternalHealthResponse) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("failed to encode external health response", slog.Any("error", err))
	}
}
