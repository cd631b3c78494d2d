package handlers

import (
	"jobpay/internal/services/contract"
	"jobpay/internal/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ContractHandler exposes the caller's contracts.
type ContractHandler struct {
	service contract.Service
	logger  *zap.Logger
}

func NewContractHandler(s contract.Service, logger *zap.Logger) *ContractHandler {
	return &ContractHandler{service: s, logger: nopLogger(logger)}
}

// GetContract handles GET /contracts/:id
func (h *ContractHandler) GetContract(c *fiber.Ctx) error {
	profile, ok := utils.GetProfile(c)
	if !ok {
		return utils.Unauthorized(c, "missing profile")
	}
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "invalid contract id")
	}

	result, err := h.service.GetContract(c.UserContext(), profile, uint(id))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.Success(c, result)
}

// ListContracts handles GET /contracts
func (h *ContractHandler) ListContracts(c *fiber.Ctx) error {
	profile, ok := utils.GetProfile(c)
	if !ok {
		return utils.Unauthorized(c, "missing profile")
	}

	contracts, err := h.service.ListActiveContracts(c.UserContext(), profile)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.Success(c, contracts)
}
