package handlers

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/fasthttp/router"
	"github.com/pkaveh/loyalty-gateway/internal/model"
	"github.com/pkaveh/loyalty-gateway/internal/services"
	xhttp "github.com/pkaveh/loyalty-gateway/pkg/http"
	"github.com/pkaveh/loyalty-gateway/pkg/logger"
)

type AccrualService interface {
	RecordPurchase(ctx context.Context, customerID string, itemID int64) (*services.AccrualResult, error)
}

type AccrualHandler struct {
	svc AccrualService
}

func RegisterAccrualRoutes(e *router.Group, h *AccrualHandler) {
	e.POST("/points", h.AddPoints)
}

func NewAccrualHandler(accrualService AccrualService) *AccrualHandler {
	return &AccrualHandler{
		svc: accrualService,
	}
}

type addPointsRequest struct {
	CustomerID string `json:"customer_id"`
	ItemID     int64  `json:"item_id"`
}

type addPointsResponse struct {
	Success         bool   `json:"success"`
	ItemName        string `json:"itemName"`
	TotalItemPoints uint   `json:"totalItemPoints"`
	RewardEarned    bool   `json:"rewardEarned"`
	Message         string `json:"message"`
}

// AddPoints is the staff scanning endpoint: one purchase of one item for
// one customer.
func (h *AccrualHandler) AddPoints(ctx *xhttp.RequestCtx) {
	var req addPointsRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	result, err := h.svc.RecordPurchase(ctx, req.CustomerID, req.ItemID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCustomerIDRequired), errors.Is(err, services.ErrItemIDRequired):
			writeError(ctx, xhttp.StatusBadRequest, "Customer ID and item ID are required")
		case errors.Is(err, services.ErrCustomerNotFound):
			writeError(ctx, xhttp.StatusNotFound, "Customer not found")
		case errors.Is(err, services.ErrItemNotFound):
			writeError(ctx, xhttp.StatusNotFound, "Item not found or inactive")
		default:
			logger.Error("record purchase failed", "customer_id", req.CustomerID, "item_id", req.ItemID, "error", err)
			writeError(ctx, xhttp.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeJSON(ctx, xhttp.StatusOK, addPointsResponse{
		Success:         true,
		ItemName:        result.ItemName,
		TotalItemPoints: result.TotalItemPoints,
		RewardEarned:    result.RewardEarned,
		Message:         result.Message,
	})
}

/* ------------------------------- Helpers ------------------------------- */

func readJSON(ctx *xhttp.RequestCtx, dst any) error {
	body := ctx.PostBody()
	return json.Unmarshal(body, dst)
}

func writeJSON(ctx *xhttp.RequestCtx, status int, v any) {
	b, _ := json.Marshal(v)
	ctx.Response.Header.Set("Content-Type", "application/json; charset=utf-8")
	ctx.Response.SetStatusCode(status)
	ctx.Response.SetBodyRaw(b)
}

func writeError(ctx *xhttp.RequestCtx, status int, msg string) {
	writeJSON(ctx, status, map[string]string{"error": msg})
}

// writeServiceError splits service failures: client input errors echo
// their message with 400, everything else is logged with detail and
// reported generically.
func writeServiceError(ctx *xhttp.RequestCtx, what string, err error) {
	var ve model.ValidationError
	if errors.As(err, &ve) {
		writeError(ctx, xhttp.StatusBadRequest, ve.Error())
		return
	}
	logger.Error(what, "error", err)
	writeError(ctx, xhttp.StatusInternalServerError, "Internal server error")
}

func pathParam(ctx *xhttp.RequestCtx, key string) string {
	if v, ok := ctx.UserValue(key).(string); ok {
		return v
	}
	return ""
}
