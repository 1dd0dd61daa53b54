package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/casaflow/backend/api/transport"
	"github.com/casaflow/backend/internal/infrastructure/monitor"
	"github.com/casaflow/backend/pkg/httpcontext"
)

type HealthHandler struct {
	baseHandler
	monitor *monitor.Monitor
}

func NewHealthHandler(mon *monitor.Monitor, adapter *httpcontext.Adapter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		monitor:     mon,
	}
}

// @Summary Health check
// @Tags health
// @Router /health [get]
func (h *HealthHandler) Check(ctx *fasthttp.RequestCtx) {
	status := h.monitor.GetStatus()
	payload := map[string]interface{}{
		"timestamp": time.Now().UTC(),
		"services": map[string]interface{}{
			"mongo": status.Mongo,
			"redis": status.Redis,
			"local_store": map[string]interface{}{
				"online":       status.LocalStore,
				"repair_queue": status.RepairQueue,
			},
		},
	}

	// The service stays up on the local mirror when the document store is
	// down; only a dead mirror plus dead remote is a hard outage.
	if status.Mongo || status.LocalStore {
		h.respondSuccess(ctx, http.StatusOK, payload)
		return
	}
	h.respondJSON(ctx, http.StatusServiceUnavailable, transport.NewError("DEGRADED", "storage tiers unavailable", payload))
}
