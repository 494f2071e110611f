package billing

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/diewo77/gst-invoices/validation"
)

var (
	// ErrNotReady is returned by Finalize when the draft lacks a customer or items.
	// Nothing is emitted when it is returned.
	ErrNotReady = errors.New("draft not ready to finalize")
	// ErrCustomerRequired and ErrNoItems both wrap ErrNotReady.
	ErrCustomerRequired = fmt.Errorf("%w: customer required", ErrNotReady)
	ErrNoItems          = fmt.Errorf("%w: at least one item required", ErrNotReady)

	ErrFinalized     = errors.New("draft already finalized")
	ErrUnknownField  = errors.New("unknown item field")
	ErrInvalidNumber = errors.New("invalid numeric value")
	ErrDraftNotFound = errors.New("draft not found")
)

// ValidationError carries the per-field violations found when a draft is saved.
type ValidationError struct {
	Violations validation.Violations
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Violations))
	for k := range e.Violations {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Violations[k])
	}
	return "invalid draft: " + strings.Join(parts, ", ")
}
