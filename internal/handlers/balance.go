package handlers

import (
	"jobpay/internal/services/ledger"
	"jobpay/internal/utils"
	"jobpay/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// BalanceHandler exposes deposits between clients.
type BalanceHandler struct {
	ledger ledger.Service
	logger *zap.Logger
}

func NewBalanceHandler(ledger ledger.Service, logger *zap.Logger) *BalanceHandler {
	return &BalanceHandler{ledger: ledger, logger: nopLogger(logger)}
}

// Deposit handles POST /balances/deposit/:userId
func (h *BalanceHandler) Deposit(c *fiber.Ctx) error {
	profile, ok := utils.GetProfile(c)
	if !ok {
		return utils.Unauthorized(c, "missing profile")
	}
	destinationID, err := c.ParamsInt("userId")
	if err != nil || destinationID <= 0 {
		return utils.BadRequest(c, "invalid user id")
	}

	var req validation.DepositRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	v := validation.New()
	if v.Deposit(&req); !v.Valid() {
		return utils.ValidationFailed(c, v.Errors)
	}

	if err := h.ledger.Deposit(c.UserContext(), profile, uint(destinationID), req.Amount); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
