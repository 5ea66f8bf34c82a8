package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound       = errors.New("invoice_not_found")
	ErrInvalidID      = errors.New("invalid_invoice_id")
	ErrItemsRequired  = errors.New("invoice_items_required")
	ErrClientRequired = errors.New("invoice_client_required")
	ErrClientMismatch = errors.New("invoice_client_tenant_mismatch")
	ErrInvalidStatus  = errors.New("invalid_invoice_status")

	// ErrManualTotalNotAllowed rejects a supplied line total when the
	// tenant requires totals to be derived from unit price and quantity.
	ErrManualTotalNotAllowed = errors.New("manual_item_total_not_allowed")

	// ErrPersistFailed wraps a storage failure that happened after an
	// invoice number was already consumed. The resulting gap in the
	// sequence is permanent; the number is never reissued.
	ErrPersistFailed = errors.New("invoice_persist_failed")
)

// PersistFailure marks err as a post-allocation storage failure.
func PersistFailure(err error) error {
	return fmt.Errorf("%w: %w", ErrPersistFailed, err)
}
