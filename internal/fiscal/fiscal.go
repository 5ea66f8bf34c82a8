// Package fiscal maps calendar dates to financial-year labels.
//
// The financial year runs April through March. A date on or after April 1
// belongs to the year that starts that April; January through March belong to
// the year that started the previous April.
package fiscal

import (
	"fmt"
	"time"
)

const cutoverMonth = time.April

// YearLabel returns the two-digit year-pair label of the financial year
// containing t, e.g. 2024-06-15 -> "24-25" and 2024-02-01 -> "23-24".
//
// This function is PURE:
// - No side effects
// - Fully deterministic
func YearLabel(t time.Time) string {
	year := t.Year()
	if t.Month() >= cutoverMonth {
		return fmt.Sprintf("%02d-%02d", year%100, (year+1)%100)
	}
	return fmt.Sprintf("%02d-%02d", (year-1)%100, year%100)
}
