package domain

import (
	"context"
	"time"

	taxdomain "github.com/billforge/billforge/internal/tax/domain"
)

type Service interface {
	// Create mints an invoice number, computes totals, and persists the
	// snapshot. The number is consumed even if persistence fails.
	Create(ctx context.Context, req CreateRequest) (*Invoice, error)
	GetByID(ctx context.Context, id string) (*Invoice, error)
	List(ctx context.Context, req ListRequest) ([]Invoice, error)
	// UpdateItems replaces the line items and re-runs the full tax
	// calculation. The invoice number and financial year never change.
	UpdateItems(ctx context.Context, req UpdateItemsRequest) (*Invoice, error)
	UpdateStatus(ctx context.Context, id string, status InvoiceStatus) (*Invoice, error)
}

type CreateRequest struct {
	TenantID    string               `json:"tenant_id"`
	ClientID    string               `json:"client_id"`
	InvoiceDate *time.Time           `json:"invoice_date,omitempty"`
	Items       []taxdomain.LineItem `json:"items"`
	Regime      taxdomain.Regime     `json:"tax_regime"`
	Rates       taxdomain.Rates      `json:"rates"`
	Note        string               `json:"note,omitempty"`
	Declaration string               `json:"declaration,omitempty"`
	Details     map[string]any       `json:"details,omitempty"`
}

type UpdateItemsRequest struct {
	ID     string               `json:"id"`
	Items  []taxdomain.LineItem `json:"items"`
	Regime taxdomain.Regime     `json:"tax_regime"`
	Rates  taxdomain.Rates      `json:"rates"`
}

type ListRequest struct {
	TenantID *string
	ClientID *string
	Status   *InvoiceStatus
	DateFrom *time.Time
	DateTo   *time.Time
	Limit    int
}
