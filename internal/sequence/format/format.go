// Package format renders minted invoice numbers.
package format

import (
	"fmt"
)

// MinPadWidth is the smallest counter padding in a minted invoice number.
const MinPadWidth = 3

// FormatInvoiceNumber renders a minted number as PREFIX/YY-YY/NNN.
//
// This function is PURE:
// - No side effects
// - No DB access
// - Fully deterministic
func FormatInvoiceNumber(prefix, financialYear string, seq int64, padWidth int) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("invoice number prefix is empty")
	}
	if financialYear == "" {
		return "", fmt.Errorf("financial year label is empty")
	}
	if seq <= 0 {
		return "", fmt.Errorf("invalid invoice sequence: %d", seq)
	}
	if padWidth < MinPadWidth {
		padWidth = MinPadWidth
	}
	return fmt.Sprintf("%s/%s/%0*d", prefix, financialYear, padWidth, seq), nil
}
