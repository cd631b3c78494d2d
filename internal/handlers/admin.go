package handlers

import (
	"errors"

	"jobpay/internal/repositories"
	"jobpay/internal/services/report"
	"jobpay/internal/utils"
	"jobpay/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AdminHandler serves the aggregate reports.
type AdminHandler struct {
	reports report.Service
	logger  *zap.Logger
}

func NewAdminHandler(reports report.Service, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{reports: reports, logger: nopLogger(logger)}
}

// BestProfession handles GET /admin/best-profession
func (h *AdminHandler) BestProfession(c *fiber.Ctx) error {
	var q validation.ReportQuery
	if err := c.QueryParser(&q); err != nil {
		return utils.BadRequest(c, "invalid query parameters")
	}
	v := validation.New()
	if v.Report(&q); !v.Valid() {
		return utils.ValidationFailed(c, v.Errors)
	}
	start, end := q.Bounds()

	best, err := h.reports.BestProfession(c.UserContext(), repositories.DateRange{Start: start, End: end})
	if err != nil {
		return respondError(c, h.logger, err)
	}
	if best == nil {
		return utils.Success(c, fiber.Map{})
	}
	return utils.Success(c, best)
}

// BestClients handles GET /admin/best-clients
func (h *AdminHandler) BestClients(c *fiber.Ctx) error {
	var q validation.ReportQuery
	if err := c.QueryParser(&q); err != nil {
		return utils.BadRequest(c, "invalid query parameters")
	}
	v := validation.New()
	if v.Report(&q); !v.Valid() {
		return utils.ValidationFailed(c, v.Errors)
	}
	start, end := q.Bounds()

	clients, err := h.reports.BestClients(c.UserContext(), repositories.DateRange{Start: start, End: end}, q.ClientLimit())
	if err != nil {
		if errors.Is(err, report.ErrInvalidLimit) {
			return utils.BadRequest(c, err.Error())
		}
		return respondError(c, h.logger, err)
	}
	return utils.Success(c, clients)
}
