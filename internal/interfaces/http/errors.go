package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/med-integems/lomemis-dashboard/internal/application/dto"
	"github.com/med-integems/lomemis-dashboard/internal/domain"
)

// writeError maps a domain error onto the HTTP error envelope. Export
// failures are checked before the upstream sentinels they wrap.
func writeError(c *fiber.Ctx, err error) error {
	status, code := fiber.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrInvalidDateRange):
		status, code = fiber.StatusUnprocessableEntity, "INVALID_DATE_RANGE"
	case errors.Is(err, domain.ErrInvalidInput):
		status, code = fiber.StatusBadRequest, "INVALID_INPUT"
	case errors.Is(err, domain.ErrScopeLocked):
		status, code = fiber.StatusForbidden, "SCOPE_LOCKED"
	case errors.Is(err, domain.ErrAccessDenied):
		status, code = fiber.StatusForbidden, "ACCESS_DENIED"
	case errors.Is(err, domain.ErrUnauthorized):
		status, code = fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrExportFailed):
		status, code = fiber.StatusBadGateway, "EXPORT_FAILED"
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		status, code = fiber.StatusBadGateway, "UPSTREAM_UNAVAILABLE"
	case errors.Is(err, domain.ErrUpstreamRejected):
		status, code = fiber.StatusBadGateway, "UPSTREAM_REJECTED"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}
