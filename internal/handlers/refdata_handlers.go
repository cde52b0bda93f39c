package handlers

import (
	"net/http"
	"strconv"

	"saudemart/internal/common"
	"saudemart/internal/models"
	"saudemart/internal/services"

	"github.com/labstack/echo/v4"
)

// RefDataHandlers exposes the read-only reference data the unit front office
// needs when composing quotes and sales.
type RefDataHandlers struct {
	refData services.RefDataService
}

// NewRefDataHandlers creates a new reference data handlers instance
func NewRefDataHandlers(refData services.RefDataService) *RefDataHandlers {
	return &RefDataHandlers{refData: refData}
}

func (h *RefDataHandlers) listParams(c echo.Context) (int, int, error) {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	return common.ValidatePaginationParams(limit, offset)
}

// ListClients handles GET /clients
func (h *RefDataHandlers) ListClients(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	limit, offset, err := h.listParams(c)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	clients, err := h.refData.ListClients(ctx, tenantID, limit, offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, clients)
}

// ListProviders handles GET /providers
func (h *RefDataHandlers) ListProviders(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	limit, offset, err := h.listParams(c)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	providers, err := h.refData.ListProviders(ctx, tenantID, limit, offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, providers)
}

// ListHealthServices handles GET /services
func (h *RefDataHandlers) ListHealthServices(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	limit, offset, err := h.listParams(c)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	servicesList, err := h.refData.ListHealthServices(ctx, tenantID, limit, offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, servicesList)
}

// RefreshCache handles POST /cache/refresh. Back-office edits reference data
// upstream and purges the tenant's cached copies through here.
func (h *RefDataHandlers) RefreshCache(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	actorRole, ok := common.GetActorRoleFromContext(ctx)
	if !ok || actorRole != models.RoleUnit {
		return common.SendForbiddenError(c, "only the unit back office can refresh the cache")
	}

	if err := h.refData.RefreshCache(ctx, tenantID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "reference data cache refreshed"})
}
