package handlers

import (
	"net/http"
	"strconv"

	"saudemart/internal/common"
	"saudemart/internal/services"

	"github.com/labstack/echo/v4"
)

// SaleHandlers handles HTTP requests for sales
type SaleHandlers struct {
	saleService services.SaleServiceInterface
}

// NewSaleHandlers creates a new sale handlers instance
func NewSaleHandlers(saleService services.SaleServiceInterface) *SaleHandlers {
	return &SaleHandlers{saleService: saleService}
}

// CreateSale handles POST /sales
func (h *SaleHandlers) CreateSale(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req struct {
		ClientID string `json:"client_id"`
		Items    []struct {
			ServiceID  string  `json:"service_id"`
			ProviderID string  `json:"provider_id"`
			Value      float64 `json:"value"`
		} `json:"items"`
		PaymentMethod string  `json:"payment_method"`
		Notes         *string `json:"notes"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	clientID, err := common.ValidateUUID(req.ClientID, "client_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	if err := common.ValidateRequiredString(req.PaymentMethod, "payment_method"); err != nil {
		return common.SendValidationError(c, "payment_method", err.Error())
	}
	if len(req.Items) == 0 {
		return common.SendValidationError(c, "items", "at least one item is required")
	}

	createReq := &services.CreateSaleRequest{
		ClientID:      clientID,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	}
	for _, item := range req.Items {
		serviceID, err := common.ValidateUUID(item.ServiceID, "service_id")
		if err != nil {
			return common.SendClientError(c, err.Error())
		}
		providerID, err := common.ValidateUUID(item.ProviderID, "provider_id")
		if err != nil {
			return common.SendClientError(c, err.Error())
		}
		if err := common.ValidatePositiveFloat(item.Value, "value", 1000000.0); err != nil {
			return common.SendValidationError(c, "value", err.Error())
		}
		createReq.Items = append(createReq.Items, services.SaleItemInput{
			ServiceID:  serviceID,
			ProviderID: providerID,
			Value:      item.Value,
		})
	}

	sale, vouchers, err := h.saleService.CreateSale(ctx, tenantID, createReq)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"sale":     sale,
		"vouchers": vouchers,
	})
}

// GetSale handles GET /sales/:id
func (h *SaleHandlers) GetSale(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	saleID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	sale, err := h.saleService.GetSale(ctx, tenantID, saleID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, sale)
}

// ListSales handles GET /sales
func (h *SaleHandlers) ListSales(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	limit, offset, err := common.ValidatePaginationParams(limit, offset)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	sales, err := h.saleService.ListSales(ctx, tenantID, limit, offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, sales)
}
