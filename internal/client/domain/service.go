package domain

import "context"

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Client, error)
	GetByID(ctx context.Context, id string) (*Client, error)
	List(ctx context.Context, req ListRequest) ([]Client, error)
}

type CreateRequest struct {
	TenantID     string `json:"tenant_id"`
	Name         string `json:"name"`
	Email        string `json:"email,omitempty"`
	GSTIN        string `json:"gstin,omitempty"`
	AddressLine1 string `json:"address_line1,omitempty"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	PinCode      string `json:"pin_code,omitempty"`
}

type ListRequest struct {
	TenantID *string
}
