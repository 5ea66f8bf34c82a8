// Package domain defines the invoice-number allocation contract.
package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Allocation is the result of minting one invoice number.
type Allocation struct {
	InvoiceNumber string `json:"invoice_number"`
	FinancialYear string `json:"financial_year"`
	Counter       int64  `json:"counter"`
}

// Allocator mints gap-free, strictly increasing invoice numbers per tenant.
// The counter resets to 1 on the first allocation of a new financial year.
//
// Allocations for the same tenant are serialized by the database row lock
// taken by the conditional update; two concurrent calls can never observe
// the same counter value. A number once minted is never reused, even when a
// later step fails.
type Allocator interface {
	// Allocate mints the next number in its own transaction. The counter
	// stays advanced once Allocate returns, regardless of what the caller
	// does next.
	Allocate(ctx context.Context, tenantID snowflake.ID) (Allocation, error)

	// AllocateTx mints the next number inside an existing transaction. The
	// counter advance commits or rolls back with that transaction.
	AllocateTx(ctx context.Context, tx *gorm.DB, tenantID snowflake.ID) (Allocation, error)
}
