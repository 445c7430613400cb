package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/pkaveh/loyalty-gateway/internal/model"
	xhttp "github.com/pkaveh/loyalty-gateway/pkg/http"
	"github.com/pkaveh/loyalty-gateway/pkg/logger"
)

type CatalogService interface {
	ListActive(ctx context.Context) ([]*model.Item, error)
}

type CatalogHandler struct {
	svc CatalogService
}

func RegisterCatalogRoutes(e *router.Group, h *CatalogHandler) {
	e.GET("/items", h.ListItems)
}

func NewCatalogHandler(catalogService CatalogService) *CatalogHandler {
	return &CatalogHandler{
		svc: catalogService,
	}
}

// ListItems returns active items for the staff purchase selection.
func (h *CatalogHandler) ListItems(ctx *xhttp.RequestCtx) {
	items, err := h.svc.ListActive(ctx)
	if err != nil {
		logger.Error("list items failed", "error", err)
		writeError(ctx, xhttp.StatusInternalServerError, "Failed to fetch items")
		return
	}

	if items == nil {
		items = []*model.Item{}
	}
	writeJSON(ctx, xhttp.StatusOK, items)
}
