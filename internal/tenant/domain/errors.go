package domain

import "errors"

var (
	ErrNotFound    = errors.New("tenant_not_found")
	ErrInactive    = errors.New("tenant_inactive")
	ErrInvalidID   = errors.New("invalid_tenant_id")
	ErrInvalidName = errors.New("invalid_tenant_name")
	ErrNameExists  = errors.New("tenant_name_exists")
)
