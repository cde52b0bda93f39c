package handlers

import (
	"net/http"
	"strconv"

	"saudemart/internal/common"
	"saudemart/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// QuoteHandlers handles HTTP requests for quotes
type QuoteHandlers struct {
	quoteService services.QuoteServiceInterface
}

// NewQuoteHandlers creates a new quote handlers instance
func NewQuoteHandlers(quoteService services.QuoteServiceInterface) *QuoteHandlers {
	return &QuoteHandlers{quoteService: quoteService}
}

// CreateQuote handles POST /quotes
func (h *QuoteHandlers) CreateQuote(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req struct {
		ClientID    string  `json:"client_id"`
		ProviderID  string  `json:"provider_id"`
		ServiceID   string  `json:"service_id"`
		CostValue   float64 `json:"cost_value"`
		SaleValue   float64 `json:"sale_value"`
		DiscountPct float64 `json:"discount_pct"`
		Notes       *string `json:"notes"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	clientID, err := common.ValidateUUID(req.ClientID, "client_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	providerID, err := common.ValidateUUID(req.ProviderID, "provider_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	serviceID, err := common.ValidateUUID(req.ServiceID, "service_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	if err := common.ValidatePositiveFloat(req.SaleValue, "sale_value", 1000000.0); err != nil {
		return common.SendValidationError(c, "sale_value", err.Error())
	}
	if req.DiscountPct < 0 || req.DiscountPct > 100 {
		return common.SendValidationError(c, "discount_pct", "discount must be between 0 and 100")
	}

	quote, err := h.quoteService.CreateQuote(ctx, tenantID, &services.CreateQuoteRequest{
		ClientID:    clientID,
		ProviderID:  providerID,
		ServiceID:   serviceID,
		CostValue:   req.CostValue,
		SaleValue:   req.SaleValue,
		DiscountPct: req.DiscountPct,
		Notes:       req.Notes,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, quote)
}

// GetQuote handles GET /quotes/:id
func (h *QuoteHandlers) GetQuote(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	quoteID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	quote, err := h.quoteService.GetQuote(ctx, tenantID, quoteID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, quote)
}

// ListQuotes handles GET /quotes
func (h *QuoteHandlers) ListQuotes(c echo.Context) error {
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

	clientID := uuid.Nil
	if raw := c.QueryParam("client_id"); raw != "" {
		clientID, err = common.ValidateUUID(raw, "client_id")
		if err != nil {
			return common.SendClientError(c, err.Error())
		}
	}

	quotes, err := h.quoteService.ListQuotes(ctx, tenantID, clientID, limit, offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, quotes)
}

// CancelQuote handles POST /quotes/:id/cancel
func (h *QuoteHandlers) CancelQuote(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	quoteID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	quote, err := h.quoteService.CancelQuote(ctx, tenantID, quoteID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, quote)
}

// ConvertQuote handles POST /quotes/:id/convert
func (h *QuoteHandlers) ConvertQuote(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	quoteID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req struct {
		PaymentMethod string `json:"payment_method"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.PaymentMethod, "payment_method"); err != nil {
		return common.SendValidationError(c, "payment_method", err.Error())
	}

	sale, vouchers, err := h.quoteService.ConvertToSale(ctx, tenantID, quoteID, req.PaymentMethod)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"sale":     sale,
		"vouchers": vouchers,
	})
}
