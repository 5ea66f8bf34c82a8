package fiscal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestYearLabel(t *testing.T) {
	cases := []struct {
		name string
		in   time.Time
		want string
	}{
		{"mid year", date(2024, time.June, 15), "24-25"},
		{"cutover day starts the new year", date(2024, time.April, 1), "24-25"},
		{"day before cutover belongs to the old year", date(2024, time.March, 31), "23-24"},
		{"january is still the previous financial year", date(2025, time.January, 10), "24-25"},
		{"december", date(2023, time.December, 31), "23-24"},
		{"century wrap", date(2099, time.May, 1), "99-00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, YearLabel(tc.in))
		})
	}
}
