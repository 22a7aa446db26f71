package services

import (
	"errors"
	"fmt"

	"kiosk/internal/repositories"

	"github.com/shopspring/decimal"
)

// Error kinds returned by the services. Callers match them with errors.Is;
// the wrapped message carries the detail.
var (
	ErrNotFound          = repositories.ErrNotFound
	ErrValidation        = errors.New("validation failed")
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrWalletNotFound is a settlement failure and does not wrap ErrNotFound.
	ErrWalletNotFound = errors.New("wallet not found")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrConflict       = errors.New("conflict")
)

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func conflictError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

func insufficientFunds(balance, required decimal.Decimal) error {
	return fmt.Errorf("%w: balance %s is less than %s", ErrInsufficientFunds,
		balance.StringFixed(2), required.StringFixed(2))
}

func walletNotFound(userID string) error {
	return fmt.Errorf("%w: user %s has no wallet", ErrWalletNotFound, userID)
}
