package handlers

import (
	"errors"

	"saudemart/internal/common"
	"saudemart/internal/services"

	"github.com/labstack/echo/v4"
)

// respondServiceError maps engine error kinds onto HTTP responses. Anything
// unrecognized is a server error with the detail kept out of the response.
func respondServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, services.ErrOrderNotFound):
		return common.SendNotFoundError(c, "order")
	case errors.Is(err, services.ErrNotFound):
		return common.SendNotFoundError(c, "record")
	case errors.Is(err, services.ErrPermissionDenied):
		return common.SendForbiddenError(c, err.Error())
	case errors.Is(err, services.ErrInvalidTransition):
		return common.SendConflictError(c, err.Error())
	case errors.Is(err, services.ErrInvalidState):
		return common.SendConflictError(c, err.Error())
	default:
		return common.SendServerError(c, "operation could not be completed")
	}
}
