// Package domain contains persistence models and contracts for invoicing.
package domain

import (
	"time"

	taxdomain "github.com/billforge/billforge/internal/tax/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// InvoiceStatus represents invoice lifecycle states.
type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "Pending"
	InvoiceStatusPaid    InvoiceStatus = "Paid"
	InvoiceStatusOverdue InvoiceStatus = "Overdue"
)

func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusPending, InvoiceStatusPaid, InvoiceStatusOverdue:
		return true
	default:
		return false
	}
}

// Invoice is the persisted snapshot of one billing document. Amounts are
// written once by the tax calculator; a change to the items always re-runs
// the full calculation, never a partial patch. The invoice number is
// immutable after creation.
type Invoice struct {
	ID       snowflake.ID `gorm:"primaryKey" json:"id"`
	TenantID snowflake.ID `gorm:"column:tenant_id;not null;index;uniqueIndex:ux_invoice_tenant_number" json:"tenant_id"`
	ClientID snowflake.ID `gorm:"column:client_id;not null;index" json:"client_id"`

	InvoiceNumber string    `gorm:"column:invoice_number;type:text;not null;uniqueIndex:ux_invoice_tenant_number" json:"invoice_number"`
	FinancialYear string    `gorm:"column:financial_year;type:text;not null;index" json:"financial_year"`
	InvoiceDate   time.Time `gorm:"column:invoice_date;not null" json:"invoice_date"`

	Status InvoiceStatus `gorm:"type:text;not null;default:'Pending'" json:"status"`

	TotalBeforeTax   float64 `gorm:"column:total_before_tax;not null;default:0" json:"total_before_tax"`
	TaxableAmount    float64 `gorm:"column:taxable_amount;not null;default:0" json:"taxable_amount"`
	NonTaxableAmount float64 `gorm:"column:non_taxable_amount;not null;default:0" json:"non_taxable_amount"`

	Tax taxdomain.Breakdown `gorm:"embedded;embeddedPrefix:tax_" json:"tax_breakdown"`

	RoundingAdjustment float64 `gorm:"column:rounding_adjustment;not null;default:0" json:"rounding_adjustment"`
	GrossAmount        float64 `gorm:"column:gross_amount;not null;default:0" json:"gross_amount"`
	InWords            string  `gorm:"column:in_words;type:text" json:"in_words,omitempty"`

	Note        string `gorm:"type:text" json:"note,omitempty"`
	Declaration string `gorm:"type:text" json:"declaration,omitempty"`

	// Details carries free-form dispatch and reference fields
	// (reference no, purchase order, terms of delivery, consignee).
	Details datatypes.JSONMap `gorm:"type:jsonb" json:"details,omitempty"`

	Items []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }

// InvoiceItem is one resolved line on an invoice.
type InvoiceItem struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	InvoiceID snowflake.ID `gorm:"column:invoice_id;not null;index" json:"invoice_id"`

	Position    int      `gorm:"not null" json:"position"`
	Description string   `gorm:"type:text;not null" json:"description"`
	HSNCode     string   `gorm:"column:hsn_code;type:text" json:"hsn_code,omitempty"`
	Quantity    *float64 `gorm:"" json:"quantity,omitempty"`
	UnitPrice   *float64 `gorm:"column:unit_price" json:"unit_price,omitempty"`
	Total       float64  `gorm:"not null" json:"total"`
	// No gorm default tag: gorm drops zero-value fields that carry one from
	// the INSERT, which would silently store taxable=false items as taxable.
	Taxable bool `gorm:"not null" json:"taxable"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (InvoiceItem) TableName() string { return "invoice_items" }
