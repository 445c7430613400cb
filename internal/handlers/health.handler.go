package handlers

import (
	"github.com/fasthttp/router"
	xhttp "github.com/pkaveh/loyalty-gateway/pkg/http"
)

type HealthService interface {
	Get() error
}

type HealthHandler struct {
	healthService HealthService
}

func RegisterHealthRoutes(e *router.Group, h *HealthHandler) {
	e.GET("/health", h.GetHealth)
}

func NewHealthHandler(healthService HealthService) *HealthHandler {
	return &HealthHandler{
		healthService: healthService,
	}
}

func (h *HealthHandler) GetHealth(ctx *xhttp.RequestCtx) {
	if err := h.healthService.Get(); err != nil {
		writeError(ctx, xhttp.StatusInternalServerError, "unhealthy")
		return
	}
	ctx.Response.SetBodyString("success")
}
