// Package domain contains the tax types shared by the calculator and the
// invoice service.
package domain

// Regime identifies which GST components apply to an invoice.
// It is a closed set; anything else is rejected at the boundary.
type Regime string

const (
	// RegimeNone applies no GST components.
	RegimeNone Regime = "None"
	// RegimeCGSTSGST splits intra-state GST into central and state halves,
	// both computed from the same taxable base.
	RegimeCGSTSGST Regime = "CGST_SGST"
	// RegimeIGST applies integrated GST for inter-state supply.
	RegimeIGST Regime = "IGST"
)

func (r Regime) Valid() bool {
	switch r {
	case RegimeNone, RegimeCGSTSGST, RegimeIGST:
		return true
	default:
		return false
	}
}

// Rates holds the percentage rates for each component. Components outside
// the selected regime are ignored. Surcharge applies independently of the
// regime whenever its rate is positive.
type Rates struct {
	CGST      float64 `json:"cgst_rate"`
	SGST      float64 `json:"sgst_rate"`
	IGST      float64 `json:"igst_rate"`
	Surcharge float64 `json:"surcharge_rate"`
}

func (r Rates) Validate() error {
	if r.CGST < 0 || r.SGST < 0 || r.IGST < 0 || r.Surcharge < 0 {
		return ErrInvalidTaxRate
	}
	return nil
}

// LineItem is one invoice line as submitted by a caller. Total may be
// supplied directly or derived from unit price and quantity. Taxable
// defaults to true when omitted.
type LineItem struct {
	Description string   `json:"description"`
	HSNCode     string   `json:"hsn_code,omitempty"`
	Quantity    *float64 `json:"quantity,omitempty"`
	UnitPrice   *float64 `json:"unit_price,omitempty"`
	Total       *float64 `json:"total,omitempty"`
	Taxable     *bool    `json:"taxable,omitempty"`
}

// ResolvedLineItem is a LineItem after total resolution. Total is immutable
// for the rest of the calculation pass.
type ResolvedLineItem struct {
	Description string   `json:"description"`
	HSNCode     string   `json:"hsn_code,omitempty"`
	Quantity    *float64 `json:"quantity,omitempty"`
	UnitPrice   *float64 `json:"unit_price,omitempty"`
	Total       float64  `json:"total"`
	Taxable     bool     `json:"taxable"`
}

// Breakdown itemizes the computed tax components of one invoice.
type Breakdown struct {
	Regime        Regime  `json:"regime" gorm:"column:regime;type:text"`
	CGSTRate      float64 `json:"cgst_rate" gorm:"column:cgst_rate"`
	SGSTRate      float64 `json:"sgst_rate" gorm:"column:sgst_rate"`
	IGSTRate      float64 `json:"igst_rate" gorm:"column:igst_rate"`
	SurchargeRate float64 `json:"surcharge_rate" gorm:"column:surcharge_rate"`
	CGST          float64 `json:"cgst" gorm:"column:cgst"`
	SGST          float64 `json:"sgst" gorm:"column:sgst"`
	IGST          float64 `json:"igst" gorm:"column:igst"`
	Surcharge     float64 `json:"surcharge" gorm:"column:surcharge"`
	TotalTax      float64 `json:"total_tax" gorm:"column:total_tax"`
}

// Summary is the full output of one calculation pass.
//
// Invariant: GrossAmount == TotalBeforeTax + Breakdown.TotalTax +
// RoundingAdjustment, and GrossAmount is a whole currency unit.
type Summary struct {
	Items              []ResolvedLineItem `json:"items"`
	TotalBeforeTax     float64            `json:"total_before_tax"`
	TaxableAmount      float64            `json:"taxable_amount"`
	NonTaxableAmount   float64            `json:"non_taxable_amount"`
	Breakdown          Breakdown          `json:"tax_breakdown"`
	RoundingAdjustment float64            `json:"rounding_adjustment"`
	GrossAmount        float64            `json:"gross_amount"`
}
