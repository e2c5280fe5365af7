package ledger

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/sectionledger/backend/internal/models"
	"github.com/shopspring/decimal"
)

var (
	ErrValidation        = errors.New("invalid request")
	ErrNotFound          = errors.New("not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidState      = errors.New("invalid state")
	ErrStore             = errors.New("the ledger store could not complete the request")
)

// SQLite primary result codes, see https://www.sqlite.org/rescode.html
const (
	sqliteBusy   = 5
	sqliteLocked = 6
)

// InsufficientFundsError is returned when a section, the income pool or a goal
// cannot cover a requested amount.
type InsufficientFundsError struct {
	Source    string
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds in %s: %s available, %s requested", e.Source, e.Available, e.Requested)
}

// Shortfall is the amount that is missing to cover the request.
func (e *InsufficientFundsError) Shortfall() decimal.Decimal {
	return e.Requested.Sub(e.Available)
}

// Is makes the error match ErrInsufficientFunds. A balance that would
// turn negative is also an invalid state of the section.
func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds || target == ErrInvalidState
}

func insufficient(source string, available, requested decimal.Decimal) error {
	return &InsufficientFundsError{Source: source, Available: available, Requested: requested}
}

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func invalidState(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidState, fmt.Sprintf(format, args...))
}

// notFound marks store lookups that found nothing.
func notFound(err error) error {
	if errors.Is(err, models.ErrResourceNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	return err
}

// isDomain reports whether err is one of the errors the ledger itself
// raises for a request. Those are final for the caller.
func isDomain(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInsufficientFunds) ||
		errors.Is(err, ErrInvalidState) ||
		errors.Is(err, models.ErrEmailNotUnique)
}

// IsRetryable reports whether an operation that failed with err can be
// attempted again. Timeouts, a busy database and broken connections are
// retryable, everything else is not.
func IsRetryable(err error) bool {
	if err == nil || isDomain(err) {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, driver.ErrBadConn) {
		return true
	}

	var sqliteErr *go_sqlite.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code() & 0xff
		return code == sqliteBusy || code == sqliteLocked
	}

	return strings.Contains(err.Error(), "database is locked")
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
