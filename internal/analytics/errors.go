package analytics

import (
	"errors"
	"fmt"
)

// ErrInsufficientData is returned when a computation needs more price points
// than the series provides.
var ErrInsufficientData = errors.New("analytics: at least 2 price points are required")

// DomainError reports input the analytics cannot operate on, such as
// non-positive prices (invalid for the log transform) or misaligned
// date/price arrays. Invalid values are never coerced or clamped.
type DomainError struct {
	Reason string
}

func (e *DomainError) Error() string {
	return "analytics: " + e.Reason
}

func domainErrorf(format string, args ...any) *DomainError {
	return &DomainError{Reason: fmt.Sprintf(format, args...)}
}
