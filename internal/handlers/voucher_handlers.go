package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"saudemart/internal/common"
	"saudemart/internal/services"

	"github.com/labstack/echo/v4"
)

// VoucherHandlers handles HTTP requests for service vouchers
type VoucherHandlers struct {
	voucherService services.VoucherServiceInterface
}

// NewVoucherHandlers creates a new voucher handlers instance
func NewVoucherHandlers(voucherService services.VoucherServiceInterface) *VoucherHandlers {
	return &VoucherHandlers{voucherService: voucherService}
}

// GetVoucher handles GET /vouchers/:id
func (h *VoucherHandlers) GetVoucher(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	voucherID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	voucher, err := h.voucherService.GetVoucher(ctx, tenantID, voucherID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, voucher)
}

// GetVoucherByAuthCode handles GET /vouchers/code/:code
func (h *VoucherHandlers) GetVoucherByAuthCode(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	code := strings.TrimSpace(c.Param("code"))
	if err := common.ValidateRequiredString(code, "code"); err != nil {
		return common.SendClientError(c, err.Error())
	}

	voucher, err := h.voucherService.GetVoucherByAuthCode(ctx, tenantID, code)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, voucher)
}

// ListVouchersByProvider handles GET /providers/:id/vouchers
func (h *VoucherHandlers) ListVouchersByProvider(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	providerID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	limit, offset, err = common.ValidatePaginationParams(limit, offset)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	vouchers, err := h.voucherService.ListVouchersByProvider(ctx, tenantID, providerID, limit, offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, vouchers)
}

// TransitionVoucher handles POST /vouchers/:id/transition
func (h *VoucherHandlers) TransitionVoucher(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	actorRole, ok := common.GetActorRoleFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	voucherID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := common.ValidateVoucherTargetStatus(req.Status); err != nil {
		return common.SendValidationError(c, "status", err.Error())
	}

	voucher, err := h.voucherService.ApplyTransition(ctx, tenantID, voucherID, req.Status, actorRole)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, voucher)
}
