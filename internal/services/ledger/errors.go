package ledger

import (
	"errors"

	appErrors "jobpay/internal/errors"
	"jobpay/internal/repositories"
)

// translate maps a failure from inside the transfer transaction to the
// domain error surfaced to callers. Anything unrecognised, including an
// expired deadline, becomes ErrTransferFailed.
func translate(err error) error {
	var de *appErrors.DomainError
	switch {
	case errors.As(err, &de):
		return de
	case errors.Is(err, repositories.ErrInsufficientFunds):
		return appErrors.ErrInsufficientFunds
	case errors.Is(err, repositories.ErrSameAccount):
		return appErrors.ErrInvalidTransfer
	case errors.Is(err, repositories.ErrProfileNotFound):
		return appErrors.ErrNotFound
	case errors.Is(err, repositories.ErrJobAlreadyPaid):
		return appErrors.ErrConflict
	default:
		return appErrors.ErrTransferFailed
	}
}
