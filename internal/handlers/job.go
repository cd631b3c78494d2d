package handlers

import (
	"jobpay/internal/services/contract"
	"jobpay/internal/services/ledger"
	"jobpay/internal/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// JobHandler lists and settles jobs.
type JobHandler struct {
	contracts contract.Service
	ledger    ledger.Service
	logger    *zap.Logger
}

func NewJobHandler(contracts contract.Service, ledger ledger.Service, logger *zap.Logger) *JobHandler {
	return &JobHandler{contracts: contracts, ledger: ledger, logger: nopLogger(logger)}
}

// ListUnpaid handles GET /jobs/unpaid
func (h *JobHandler) ListUnpaid(c *fiber.Ctx) error {
	profile, ok := utils.GetProfile(c)
	if !ok {
		return utils.Unauthorized(c, "missing profile")
	}

	jobs, err := h.contracts.ListUnpaidJobs(c.UserContext(), profile)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.Success(c, jobs)
}

// Pay handles POST /jobs/:job_id/pay
func (h *JobHandler) Pay(c *fiber.Ctx) error {
	profile, ok := utils.GetProfile(c)
	if !ok {
		return utils.Unauthorized(c, "missing profile")
	}
	jobID, err := c.ParamsInt("job_id")
	if err != nil || jobID <= 0 {
		return utils.BadRequest(c, "invalid job id")
	}

	if err := h.ledger.PayJob(c.UserContext(), uint(jobID), profile); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
