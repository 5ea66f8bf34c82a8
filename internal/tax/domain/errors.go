package domain

import "errors"

var (
	ErrInvalidRegime  = errors.New("invalid_tax_regime")
	ErrInvalidTaxRate = errors.New("invalid_tax_rate")
)
