// Package errors holds the domain error taxonomy shared by services and
// handlers.
package errors

import stderrors "errors"

// DomainError is a typed failure surfaced to callers of the ledger.
// Values are compared by identity, so wrap them with %w and test with Is.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Code extracts the domain code from err, or "" when err carries none.
func Code(err error) string {
	var de *DomainError
	if stderrors.As(err, &de) {
		return de.Code
	}
	return ""
}
