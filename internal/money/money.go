// Package money holds currency helpers shared by the tax calculator and the
// invoice service. All monetary values carry two decimal places.
package money

import "math"

// Round2 rounds to two decimals, half away from zero. Changing this rule
// changes settled invoice totals, so it must stay stable.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
