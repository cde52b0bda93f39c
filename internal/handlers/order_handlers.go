package handlers

import (
	"net/http"

	"saudemart/internal/common"
	"saudemart/internal/services"

	"github.com/labstack/echo/v4"
)

// OrderHandlers exposes the cancellation and reversal operations that act on
// a sale and its vouchers as a group.
type OrderHandlers struct {
	orderService services.OrderServiceInterface
}

// NewOrderHandlers creates a new order handlers instance
func NewOrderHandlers(orderService services.OrderServiceInterface) *OrderHandlers {
	return &OrderHandlers{orderService: orderService}
}

// CancelOrder handles POST /sales/:id/cancel
func (h *OrderHandlers) CancelOrder(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	actorRole, ok := common.GetActorRoleFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	saleID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	result, err := h.orderService.CancelOrder(ctx, tenantID, saleID, actorRole)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// ReverseVoucher handles POST /vouchers/:id/reverse
func (h *OrderHandlers) ReverseVoucher(c echo.Context) error {
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

	voucher, err := h.orderService.ReverseVoucher(ctx, tenantID, voucherID, actorRole)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, voucher)
}

// MarkSaleReversed handles POST /sales/:id/reverse
func (h *OrderHandlers) MarkSaleReversed(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	actorRole, ok := common.GetActorRoleFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	saleID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	sale, err := h.orderService.MarkSaleReversed(ctx, tenantID, saleID, actorRole)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, sale)
}

// RelatedVouchers handles GET /vouchers/:id/related
func (h *OrderHandlers) RelatedVouchers(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	voucherID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	vouchers, err := h.orderService.FindRelatedVouchers(ctx, tenantID, voucherID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, vouchers)
}
