// Package service holds the error taxonomy and time helpers shared by
// the ledger, bulk and metrics services.
package service

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotFound: the referenced item/medicine/member/log row does not
	// exist. Surfaced as 404.
	ErrNotFound = errors.New("not found")

	// ErrInsufficientStock: the requested quantity exceeds current
	// stock. The row is left unchanged. Surfaced as 400.
	ErrInsufficientStock = errors.New("not enough stock")

	// ErrNoFields: a bulk update resolved to an empty merge set.
	ErrNoFields = errors.New("no fields to update")
)

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// Validationf builds a ValidationError.
func Validationf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

const (
	timestampLayout = "2006-01-02 15:04:05"
	dateLayout      = "2006-01-02"
)

// Timestamp returns the current UTC time as stored in log and audit
// columns. The date is the leading 10 bytes, so substr(col, 1, 10)
// works identically on sqlite and mysql.
func Timestamp() string {
	return time.Now().UTC().Format(timestampLayout)
}

// Today returns the current UTC calendar date (the day boundary used by
// all "today" rollups).
func Today() string {
	return time.Now().UTC().Format(dateLayout)
}

// DaysFromToday returns the UTC date n days from now.
func DaysFromToday(n int) string {
	return time.Now().UTC().AddDate(0, 0, n).Format(dateLayout)
}
