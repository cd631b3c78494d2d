package errors

var (
	// ErrNotFound covers both absent rows and rows outside the caller's scope.
	ErrNotFound = &DomainError{
		Code:    "NOT_FOUND",
		Message: "resource not found",
	}
	ErrUnauthorized = &DomainError{
		Code:    "UNAUTHORIZED",
		Message: "profile is not allowed to perform this operation",
	}
	ErrInsufficientFunds = &DomainError{
		Code:    "INSUFFICIENT_FUNDS",
		Message: "insufficient funds",
	}
	ErrBusinessRuleViolation = &DomainError{
		Code:    "BUSINESS_RULE_VIOLATION",
		Message: "the amount exceeds the 25% of unpaid jobs",
	}
	ErrConflict = &DomainError{
		Code:    "CONFLICT",
		Message: "job payment is already being settled",
	}
	ErrTransferFailed = &DomainError{
		Code:    "TRANSFER_FAILED",
		Message: "transfer failed",
	}
	ErrInvalidAmount = &DomainError{
		Code:    "INVALID_AMOUNT",
		Message: "amount must be positive",
	}
	ErrInvalidTransfer = &DomainError{
		Code:    "INVALID_TRANSFER",
		Message: "source and destination must differ",
	}
)
