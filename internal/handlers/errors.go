package handlers

import (
	"errors"

	appErrors "jobpay/internal/errors"
	"jobpay/internal/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// statusByError is the single place domain errors become HTTP statuses.
var statusByError = map[*appErrors.DomainError]int{
	appErrors.ErrNotFound:              fiber.StatusNotFound,
	appErrors.ErrUnauthorized:          fiber.StatusForbidden,
	appErrors.ErrInsufficientFunds:     fiber.StatusBadRequest,
	appErrors.ErrBusinessRuleViolation: fiber.StatusBadRequest,
	appErrors.ErrInvalidAmount:         fiber.StatusBadRequest,
	appErrors.ErrInvalidTransfer:       fiber.StatusBadRequest,
	appErrors.ErrConflict:              fiber.StatusConflict,
	appErrors.ErrTransferFailed:        fiber.StatusInternalServerError,
}

// respondError writes err as a JSON error body. Errors outside the domain
// taxonomy are logged and reported as a bare 500.
func respondError(c *fiber.Ctx, logger *zap.Logger, err error) error {
	var de *appErrors.DomainError
	if errors.As(err, &de) {
		if status, ok := statusByError[de]; ok {
			if status >= fiber.StatusInternalServerError {
				logger.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
			}
			return utils.Respond(c, status, fiber.Map{"error": de.Message, "code": de.Code})
		}
	}
	logger.Error("unexpected error", zap.String("path", c.Path()), zap.Error(err))
	return utils.InternalError(c, "internal server error")
}

func nopLogger(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
