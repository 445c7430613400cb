package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/fasthttp/router"
	"github.com/pkaveh/loyalty-gateway/internal/model"
	"github.com/pkaveh/loyalty-gateway/internal/services"
	xhttp "github.com/pkaveh/loyalty-gateway/pkg/http"
	"github.com/pkaveh/loyalty-gateway/pkg/logger"
)

type AdminService interface {
	Login(ctx context.Context, username, password string) error
	GetSettings(ctx context.Context) (*model.Settings, error)
	UpdateSettings(ctx context.Context, p model.SettingsUpdateRequest) (*model.Settings, error)
	GetBranding(ctx context.Context) (*model.Branding, error)
	UpdateBranding(ctx context.Context, p model.BrandingUpdateRequest) (*model.Branding, error)
}

type AdminCatalogService interface {
	Create(ctx context.Context, p model.ItemUpsertRequest) (*model.Item, error)
	Update(ctx context.Context, id int64, p model.ItemUpsertRequest) (*model.Item, error)
	Delete(ctx context.Context, id int64) error
	ListAll(ctx context.Context) ([]*model.Item, error)
}

type AnalyticsService interface {
	GetStats(ctx context.Context) (*services.Stats, error)
	GetAnalytics(ctx context.Context) (*services.Analytics, error)
}

type AdminHandler struct {
	svc       AdminService
	catalog   AdminCatalogService
	customers CustomerService
	analytics AnalyticsService
}

func RegisterAdminRoutes(e *router.Group, h *AdminHandler) {
	e.POST("/admin/login", h.Login)
	e.GET("/admin/settings", h.GetSettings)
	e.PUT("/admin/settings", h.UpdateSettings)
	e.GET("/admin/branding", h.GetBranding)
	e.PUT("/admin/branding", h.UpdateBranding)
	e.GET("/admin/customers", h.ListCustomers)
	e.DELETE("/admin/customers/{id}", h.DeleteCustomer)
	e.POST("/admin/customers/bulk-delete", h.BulkDeleteCustomers)
	e.GET("/admin/items", h.ListItems)
	e.POST("/admin/items", h.CreateItem)
	e.PUT("/admin/items/{id}", h.UpdateItem)
	e.DELETE("/admin/items/{id}", h.DeleteItem)
	e.GET("/admin/stats", h.GetStats)
	e.GET("/admin/analytics", h.GetAnalytics)
}

func NewAdminHandler(adminService AdminService, catalogService AdminCatalogService, customerService CustomerService, analyticsService AnalyticsService) *AdminHandler {
	return &AdminHandler{
		svc:       adminService,
		catalog:   catalogService,
		customers: customerService,
		analytics: analyticsService,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AdminHandler) Login(ctx *xhttp.RequestCtx) {
	var req loginRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	if err := h.svc.Login(ctx, req.Username, req.Password); err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			writeError(ctx, xhttp.StatusUnauthorized, "Invalid credentials")
			return
		}
		logger.Error("admin login failed", "error", err)
		writeError(ctx, xhttp.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(ctx, xhttp.StatusOK, map[string]bool{"success": true})
}

/* ------------------------------- Settings ------------------------------- */

type settingsRequest struct {
	StorePIN        string `json:"store_pin"`
	PointsForReward uint   `json:"points_for_reward"`
	AdminUsername   string `json:"admin_username"`
	AdminPassword   string `json:"admin_password"`
}

func (h *AdminHandler) GetSettings(ctx *xhttp.RequestCtx) {
	settings, err := h.svc.GetSettings(ctx)
	if err != nil {
		logger.Error("get settings failed", "error", err)
		writeError(ctx, xhttp.StatusInternalServerError, "Failed to load settings")
		return
	}
	writeJSON(ctx, xhttp.StatusOK, settings)
}

func (h *AdminHandler) UpdateSettings(ctx *xhttp.RequestCtx) {
	var req settingsRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	settings, err := h.svc.UpdateSettings(ctx, model.SettingsUpdateRequest{
		StorePIN:        req.StorePIN,
		PointsForReward: req.PointsForReward,
		AdminUsername:   req.AdminUsername,
		AdminPassword:   req.AdminPassword,
	})
	if err != nil {
		writeServiceError(ctx, "update settings failed", err)
		return
	}

	writeJSON(ctx, xhttp.StatusOK, map[string]any{"success": true, "settings": settings})
}

/* ------------------------------- Branding ------------------------------- */

type brandingRequest struct {
	BusinessName   string `json:"business_name"`
	PrimaryColor   string `json:"primary_color"`
	SecondaryColor string `json:"secondary_color"`
	LogoURL        string `json:"logo_url"`
	WelcomeMessage string `json:"welcome_message"`
}

func (h *AdminHandler) GetBranding(ctx *xhttp.RequestCtx) {
	branding, err := h.svc.GetBranding(ctx)
	if err != nil {
		logger.Error("get branding failed", "error", err)
		writeError(ctx, xhttp.StatusInternalServerError, "Failed to load branding")
		return
	}
	writeJSON(ctx, xhttp.StatusOK, branding)
}

func (h *AdminHandler) UpdateBranding(ctx *xhttp.RequestCtx) {
	var req brandingRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	branding, err := h.svc.UpdateBranding(ctx, model.BrandingUpdateRequest{
		BusinessName:   req.BusinessName,
		PrimaryColor:   req.PrimaryColor,
		SecondaryColor: req.SecondaryColor,
		LogoURL:        req.LogoURL,
		WelcomeMessage: req.WelcomeMessage,
	})
	if err != nil {
		writeServiceError(ctx, "update branding failed", err)
		return
	}

	writeJSON(ctx, xhttp.StatusOK, map[string]any{"success": true, "branding": branding})
}

/* ------------------------------- Customers ------------------------------ */

func (h *AdminHandler) ListCustomers(ctx *xhttp.RequestCtx) {
	customers, err := h.customers.List(ctx)
	if err != nil {
		logger.Error("list customers failed", "error", err)
		writeError(ctx, xhttp.StatusInternalServerError, "Failed to fetch customers")
		return
	}

	if customers == nil {
		customers = []*model.Customer{}
	}
	writeJSON(ctx, xhttp.StatusOK, customers)
}

func (h *AdminHandler) DeleteCustomer(ctx *xhttp.RequestCtx) {
	id := pathParam(ctx, "id")
	if id == "" {
		writeError(ctx, xhttp.StatusBadRequest, "customer id is required")
		return
	}

	if err := h.customers.Delete(ctx, id); err != nil {
		if errors.Is(err, services.ErrCustomerNotFound) {
			writeError(ctx, xhttp.StatusNotFound, "Customer not found")
			return
		}
		logger.Error("delete customer failed", "customer_id", id, "error", err)
		writeError(ctx, xhttp.StatusInternalServerError, "Failed to delete customer")
		return
	}

	writeJSON(ctx, xhttp.StatusOK, map[string]any{"success": true, "message": "Customer deleted successfully"})
}

type bulkDeleteRequest struct {
	CustomerIDs []string `json:"customer_ids"`
}

func (h *AdminHandler) BulkDeleteCustomers(ctx *xhttp.RequestCtx) {
	var req bulkDeleteRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if len(req.CustomerIDs) == 0 {
		writeError(ctx, xhttp.StatusBadRequest, "customer_ids is required")
		return
	}

	deleted, err := h.customers.BulkDelete(ctx, req.CustomerIDs)
	if err != nil {
		logger.Error("bulk delete customers failed", "error", err)
		writeError(ctx, xhttp.StatusInternalServerError, "Failed to delete customers")
		return
	}

	writeJSON(ctx, xhttp.StatusOK, map[string]any{"success": true, "deleted": deleted})
}

/* -------------------------------- Items --------------------------------- */

type itemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PointsValue uint   `json:"points_value"`
	Price       uint   `json:"price"`
	IsActive    *bool  `json:"is_active"`
}

func (r itemRequest) toUpsert() model.ItemUpsertRequest {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return model.ItemUpsertRequest{
		Name:        r.Name,
		Description: r.Description,
		PointsValue: r.PointsValue,
		Price:       r.Price,
		IsActive:    active,
	}
}

func (h *AdminHandler) ListItems(ctx *xhttp.RequestCtx) {
	items, err := h.catalog.ListAll(ctx)
	if err != nil {
		logger.Error("list all items failed", "error", err)
		writeError(ctx, xhttp.StatusInternalServerError, "Failed to fetch items")
		return
	}

	if items == nil {
		items = []*model.Item{}
	}
	writeJSON(ctx, xhttp.StatusOK, items)
}

func (h *AdminHandler) CreateItem(ctx *xhttp.RequestCtx) {
	var req itemRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	item, err := h.catalog.Create(ctx, req.toUpsert())
	if err != nil {
		writeServiceError(ctx, "create item failed", err)
		return
	}

	writeJSON(ctx, xhttp.StatusCreated, map[string]any{"success": true, "item": item})
}

func (h *AdminHandler) UpdateItem(ctx *xhttp.RequestCtx) {
	id, err := strconv.ParseInt(pathParam(ctx, "id"), 10, 64)
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid item id")
		return
	}

	var req itemRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	item, err := h.catalog.Update(ctx, id, req.toUpsert())
	if err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			writeError(ctx, xhttp.StatusNotFound, "Item not found")
			return
		}
		writeServiceError(ctx, "update item failed", err)
		return
	}

	writeJSON(ctx, xhttp.StatusOK, map[string]any{"success": true, "item": item})
}

func (h *AdminHandler) DeleteItem(ctx *xhttp.RequestCtx) {
	id, err := strconv.ParseInt(pathParam(ctx, "id"), 10, 64)
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid item id")
		return
	}

	if err := h.catalog.Delete(ctx, id); err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			writeError(ctx, xhttp.StatusNotFound, "Item not found")
			return
		}
		logger.Error("delete item failed", "item_id", id, "error", err)
		writeError(ctx, xhttp.StatusInternalServerError, "Failed to delete item")
		return
	}

	writeJSON(ctx, xhttp.StatusOK, map[string]bool{"success": true})
}

/* ------------------------------ Analytics ------------------------------- */

func (h *AdminHandler) GetStats(ctx *xhttp.RequestCtx) {
	stats, err := h.analytics.GetStats(ctx)
	if err != nil {
		logger.Error("get stats failed", "error", err)
		writeError(ctx, xhttp.StatusInternalServerError, "Failed to fetch stats")
		return
	}
	writeJSON(ctx, xhttp.StatusOK, stats)
}

func (h *AdminHandler) GetAnalytics(ctx *xhttp.RequestCtx) {
	analytics, err := h.analytics.GetAnalytics(ctx)
	if err != nil {
		logger.Error("get analytics failed", "error", err)
		writeError(ctx, xhttp.StatusInternalServerError, "Failed to fetch analytics")
		return
	}
	writeJSON(ctx, xhttp.StatusOK, analytics)
}
