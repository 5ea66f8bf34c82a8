package calc

import (
	"math"
	"testing"

	taxdomain "github.com/billforge/billforge/internal/tax/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }
func b(v bool) *bool       { return &v }

func TestCalculate_ResolvesItemTotals(t *testing.T) {
	items := []taxdomain.LineItem{
		{Description: "supplied", Total: f(100.00)},
		{Description: "derived", UnitPrice: f(12.50), Quantity: f(3)},
		{Description: "empty"},
	}

	out := Calculate(items, taxdomain.RegimeNone, taxdomain.Rates{})

	require.Len(t, out.Items, 3)
	assert.Equal(t, 100.00, out.Items[0].Total)
	assert.Equal(t, 37.50, out.Items[1].Total)
	assert.Equal(t, 0.00, out.Items[2].Total)
	assert.Equal(t, 137.50, out.TotalBeforeTax)
	assert.True(t, out.Items[2].Taxable, "taxable defaults to true")
}

func TestCalculate_TaxOnlyOnTaxableSubset(t *testing.T) {
	items := []taxdomain.LineItem{
		{Description: "freight", Total: f(100), Taxable: b(true)},
		{Description: "exempt", Total: f(50), Taxable: b(false)},
	}

	out := Calculate(items, taxdomain.RegimeIGST, taxdomain.Rates{IGST: 18})

	assert.Equal(t, 150.00, out.TotalBeforeTax)
	assert.Equal(t, 100.00, out.TaxableAmount)
	assert.Equal(t, 50.00, out.NonTaxableAmount)
	assert.Equal(t, 18.00, out.Breakdown.IGST)
	assert.Equal(t, 0.00, out.Breakdown.CGST)
	assert.Equal(t, 18.00, out.Breakdown.TotalTax)
	assert.Equal(t, 0.00, out.RoundingAdjustment)
	assert.Equal(t, 168.00, out.GrossAmount)
}

func TestCalculate_CGSTSGSTSymmetry(t *testing.T) {
	items := []taxdomain.LineItem{{Description: "work", Total: f(1000)}}

	out := Calculate(items, taxdomain.RegimeCGSTSGST, taxdomain.Rates{CGST: 9, SGST: 9})

	assert.Equal(t, 90.00, out.Breakdown.CGST)
	assert.Equal(t, 90.00, out.Breakdown.SGST)
	assert.Equal(t, 0.00, out.Breakdown.IGST)
	assert.Equal(t, 180.00, out.Breakdown.TotalTax)
	assert.Equal(t, 1180.00, out.GrossAmount)
}

func TestCalculate_SurchargeAppliesRegardlessOfRegime(t *testing.T) {
	items := []taxdomain.LineItem{{Description: "haulage", Total: f(200)}}

	out := Calculate(items, taxdomain.RegimeNone, taxdomain.Rates{Surcharge: 2.5})

	assert.Equal(t, 5.00, out.Breakdown.Surcharge)
	assert.Equal(t, 5.00, out.Breakdown.TotalTax)
	assert.Equal(t, 205.00, out.GrossAmount)
}

func TestCalculate_RoundingAdjustment(t *testing.T) {
	cases := []struct {
		name      string
		total     float64
		wantAdj   float64
		wantGross float64
	}{
		{"fraction below half rounds down", 100.49, -0.49, 100},
		{"fraction above half rounds up", 100.51, 0.49, 101},
		{"exact half rounds up", 100.50, 0.50, 101},
		{"already whole", 100.00, 0, 100},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := Calculate(
				[]taxdomain.LineItem{{Description: "x", Total: f(tc.total)}},
				taxdomain.RegimeNone,
				taxdomain.Rates{},
			)
			assert.InDelta(t, tc.wantAdj, out.RoundingAdjustment, 1e-9)
			assert.InDelta(t, tc.wantGross, out.GrossAmount, 1e-9)
		})
	}
}

func TestCalculate_GrossAmountInvariants(t *testing.T) {
	cases := [][]taxdomain.LineItem{
		{{Description: "a", Total: f(33.33)}, {Description: "b", Total: f(66.67)}},
		{{Description: "a", Total: f(999.99)}},
		{{Description: "a", Total: f(0.01)}, {Description: "b", Total: f(150), Taxable: b(false)}},
		{{Description: "a", UnitPrice: f(7.77), Quantity: f(13)}},
	}

	for _, items := range cases {
		out := Calculate(items, taxdomain.RegimeIGST, taxdomain.Rates{IGST: 18, Surcharge: 1})

		sum := out.TotalBeforeTax + out.Breakdown.TotalTax + out.RoundingAdjustment
		assert.InDelta(t, out.GrossAmount, sum, 1e-9,
			"gross must equal total before tax + tax + adjustment")

		_, frac := math.Modf(out.GrossAmount)
		assert.InDelta(t, 0, frac, 1e-9, "gross must be a whole rupee amount")

		assert.Less(t, math.Abs(out.RoundingAdjustment), 1.0)
	}
}

func TestCalculate_Deterministic(t *testing.T) {
	items := []taxdomain.LineItem{
		{Description: "a", UnitPrice: f(19.99), Quantity: f(7)},
		{Description: "b", Total: f(42), Taxable: b(false)},
	}
	rates := taxdomain.Rates{CGST: 6, SGST: 6, Surcharge: 0.5}

	first := Calculate(items, taxdomain.RegimeCGSTSGST, rates)
	second := Calculate(items, taxdomain.RegimeCGSTSGST, rates)

	assert.Equal(t, first, second)
}

func TestCalculate_EmptyItems(t *testing.T) {
	out := Calculate(nil, taxdomain.RegimeIGST, taxdomain.Rates{IGST: 18})

	assert.Empty(t, out.Items)
	assert.Equal(t, 0.00, out.TotalBeforeTax)
	assert.Equal(t, 0.00, out.GrossAmount)
}

func TestRatesValidate(t *testing.T) {
	assert.NoError(t, taxdomain.Rates{CGST: 9, SGST: 9}.Validate())
	assert.ErrorIs(t, taxdomain.Rates{IGST: -1}.Validate(), taxdomain.ErrInvalidTaxRate)
}

func TestRegimeValid(t *testing.T) {
	assert.True(t, taxdomain.RegimeNone.Valid())
	assert.True(t, taxdomain.RegimeCGSTSGST.Valid())
	assert.True(t, taxdomain.RegimeIGST.Valid())
	assert.False(t, taxdomain.Regime("GST").Valid())
}
