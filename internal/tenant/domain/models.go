// Package domain contains the tenant (company) model and contracts.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Tenant is a company owning its own invoice sequence and tax defaults.
//
// SequenceCounter and SequenceEpoch are owned exclusively by the sequence
// allocator and must never be written by any other code path.
type Tenant struct {
	ID   snowflake.ID `gorm:"primaryKey" json:"id"`
	Name string       `gorm:"type:text;not null;uniqueIndex" json:"name"`
	Slug string       `gorm:"type:text;not null;uniqueIndex" json:"slug"`

	InvoicePrefix   string `gorm:"column:invoice_prefix;type:text;not null" json:"invoice_prefix"`
	SequenceCounter int64  `gorm:"column:sequence_counter;not null;default:0" json:"sequence_counter"`
	SequenceEpoch   string `gorm:"column:sequence_epoch;type:text;not null;default:''" json:"sequence_epoch"`

	// AllowManualItemTotals lets invoice items carry a supplied total
	// instead of unit price times quantity.
	AllowManualItemTotals bool `gorm:"column:allow_manual_item_totals;not null;default:false" json:"allow_manual_item_totals"`

	// No gorm default tag: gorm drops zero-value fields that carry one from
	// the INSERT, and an inactive tenant written through gorm must stay
	// inactive.
	Active bool `gorm:"not null" json:"active"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Tenant) TableName() string { return "tenants" }
