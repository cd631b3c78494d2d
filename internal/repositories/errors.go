package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrProfileNotFound   = errors.New("profile not found")
	ErrContractNotFound  = errors.New("contract not found")
	ErrJobNotFound       = errors.New("job not found")
	ErrJobAlreadyPaid    = errors.New("job already paid")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrSameAccount       = errors.New("source and destination are the same account")
)

// postgres SQLSTATE codes the ledger reacts to
const (
	pgCheckViolation = "23514"
)

// isCheckViolation reports whether err is a CHECK constraint failure, which
// for profiles means a balance would have gone negative.
func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgCheckViolation
}
