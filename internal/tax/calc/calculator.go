// Package calc computes invoice totals, tax breakdowns, and the
// rounding-to-whole-rupee adjustment.
package calc

import (
	"math"

	"github.com/billforge/billforge/internal/money"
	taxdomain "github.com/billforge/billforge/internal/tax/domain"
)

// Calculate aggregates line items and applies the GST regime.
//
// This function is PURE and total:
// - No side effects, no DB access, fully deterministic
// - It never rejects input; missing numeric fields default to 0
//
// Callers are responsible for validating the regime and rates and for
// rejecting empty item lists before invoking it.
//
// Tax components are computed only against the taxable subset of the item
// totals, never against the full pre-tax total.
func Calculate(items []taxdomain.LineItem, regime taxdomain.Regime, rates taxdomain.Rates) taxdomain.Summary {
	resolved := make([]taxdomain.ResolvedLineItem, 0, len(items))

	var sum, taxableAmount, nonTaxableAmount float64
	for _, item := range items {
		total := resolveTotal(item)
		taxable := item.Taxable == nil || *item.Taxable

		resolved = append(resolved, taxdomain.ResolvedLineItem{
			Description: item.Description,
			HSNCode:     item.HSNCode,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Total:       total,
			Taxable:     taxable,
		})

		sum += total
		if taxable {
			taxableAmount += total
		} else {
			nonTaxableAmount += total
		}
	}

	totalBeforeTax := money.Round2(sum)
	taxableAmount = money.Round2(taxableAmount)
	nonTaxableAmount = money.Round2(nonTaxableAmount)

	breakdown := taxdomain.Breakdown{
		Regime:        regime,
		CGSTRate:      rates.CGST,
		SGSTRate:      rates.SGST,
		IGSTRate:      rates.IGST,
		SurchargeRate: rates.Surcharge,
	}

	switch regime {
	case taxdomain.RegimeCGSTSGST:
		breakdown.CGST = money.Round2(rates.CGST / 100 * taxableAmount)
		breakdown.SGST = money.Round2(rates.SGST / 100 * taxableAmount)
	case taxdomain.RegimeIGST:
		breakdown.IGST = money.Round2(rates.IGST / 100 * taxableAmount)
	case taxdomain.RegimeNone:
		// no GST components
	}

	if rates.Surcharge > 0 {
		breakdown.Surcharge = money.Round2(rates.Surcharge / 100 * taxableAmount)
	}

	breakdown.TotalTax = money.Round2(breakdown.CGST + breakdown.SGST + breakdown.IGST + breakdown.Surcharge)

	preRoundingTotal := money.Round2(totalBeforeTax + breakdown.TotalTax)

	// Round to the nearest whole rupee; a fraction of exactly .50 rounds up.
	// This tie-break rule affects settled amounts and must not change.
	frac := preRoundingTotal - math.Floor(preRoundingTotal)
	var adjustment float64
	if frac < 0.5 {
		adjustment = -frac
	} else {
		adjustment = 1 - frac
	}
	adjustment = money.Round2(adjustment)

	return taxdomain.Summary{
		Items:              resolved,
		TotalBeforeTax:     totalBeforeTax,
		TaxableAmount:      taxableAmount,
		NonTaxableAmount:   nonTaxableAmount,
		Breakdown:          breakdown,
		RoundingAdjustment: adjustment,
		GrossAmount:        money.Round2(preRoundingTotal + adjustment),
	}
}

// resolveTotal prefers a supplied total; otherwise it derives one from unit
// price and quantity, defaulting to 0 when neither is available.
func resolveTotal(item taxdomain.LineItem) float64 {
	if item.Total != nil {
		return *item.Total
	}
	if item.UnitPrice != nil && item.Quantity != nil {
		return money.Round2(*item.UnitPrice * *item.Quantity)
	}
	return 0
}
