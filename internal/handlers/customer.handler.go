package handlers

import (
	"context"
	"errors"

	"github.com/fasthttp/router"
	"github.com/pkaveh/loyalty-gateway/internal/model"
	"github.com/pkaveh/loyalty-gateway/internal/services"
	xhttp "github.com/pkaveh/loyalty-gateway/pkg/http"
	"github.com/pkaveh/loyalty-gateway/pkg/logger"
)

type CustomerService interface {
	Register(ctx context.Context, p model.CustomerRegisterRequest) (*model.Customer, error)
	GetCard(ctx context.Context, customerID string) (*model.CustomerCard, error)
	List(ctx context.Context) ([]*model.Customer, error)
	Delete(ctx context.Context, customerID string) error
	BulkDelete(ctx context.Context, customerIDs []string) (int64, error)
}

type CustomerHandler struct {
	svc CustomerService
}

func RegisterCustomerRoutes(e *router.Group, h *CustomerHandler) {
	e.POST("/customers", h.Register)
	e.GET("/customers/{id}/points", h.GetCard)
}

func NewCustomerHandler(customerService CustomerService) *CustomerHandler {
	return &CustomerHandler{
		svc: customerService,
	}
}

type registerRequest struct {
	Name string `json:"name"`
	PIN  string `json:"pin"`
}

type registerResponse struct {
	Success    bool   `json:"success"`
	CustomerID string `json:"customerId"`
	QRCode     string `json:"qrCode"`
	Message    string `json:"message"`
}

func (h *CustomerHandler) Register(ctx *xhttp.RequestCtx) {
	var req registerRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	customer, err := h.svc.Register(ctx, model.CustomerRegisterRequest{
		Name: req.Name,
		PIN:  req.PIN,
	})
	if err != nil {
		writeServiceError(ctx, "customer registration failed", err)
		return
	}

	writeJSON(ctx, xhttp.StatusCreated, registerResponse{
		Success:    true,
		CustomerID: customer.ID,
		QRCode:     customer.QRCode,
		Message:    "Customer registered successfully",
	})
}

func (h *CustomerHandler) GetCard(ctx *xhttp.RequestCtx) {
	id := pathParam(ctx, "id")
	if id == "" {
		writeError(ctx, xhttp.StatusBadRequest, "customer id is required")
		return
	}

	card, err := h.svc.GetCard(ctx, id)
	if err != nil {
		if errors.Is(err, services.ErrCustomerNotFound) {
			writeError(ctx, xhttp.StatusNotFound, "Customer not found")
			return
		}
		logger.Error("get customer card failed", "customer_id", id, "error", err)
		writeError(ctx, xhttp.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(ctx, xhttp.StatusOK, card)
}
