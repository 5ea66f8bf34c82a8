package domain

import "context"

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Tenant, error)
	GetByID(ctx context.Context, id string) (*Tenant, error)
	List(ctx context.Context, req ListRequest) ([]Tenant, error)
	Deactivate(ctx context.Context, id string) (*Tenant, error)
}

type CreateRequest struct {
	Name                  string  `json:"name"`
	InvoicePrefix         *string `json:"invoice_prefix,omitempty"`
	AllowManualItemTotals bool    `json:"allow_manual_item_totals"`
}

type ListRequest struct {
	Active *bool
}
