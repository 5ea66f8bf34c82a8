package domain

import "errors"

var (
	ErrNotFound    = errors.New("client_not_found")
	ErrInvalidID   = errors.New("invalid_client_id")
	ErrInvalidName = errors.New("invalid_client_name")
)
