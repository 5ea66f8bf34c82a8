package money

import (
	"math"
	"strings"
)

var onesWords = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tensWords = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// AmountInWords spells out an amount in the Indian numbering system
// (crore/lakh), e.g. 12345.50 -> "Rupees Twelve Thousand Three Hundred
// Forty Five and Paise Fifty Only".
func AmountInWords(v float64) string {
	if v < 0 {
		return "Minus " + AmountInWords(-v)
	}

	rupees := int64(math.Floor(v))
	paise := int64(math.Round((v - math.Floor(v)) * 100))
	if paise == 100 {
		rupees++
		paise = 0
	}

	var b strings.Builder
	b.WriteString("Rupees ")
	if rupees == 0 {
		b.WriteString("Zero")
	} else {
		b.WriteString(integerWords(rupees))
	}
	if paise > 0 {
		b.WriteString(" and Paise ")
		b.WriteString(integerWords(paise))
	}
	b.WriteString(" Only")
	return b.String()
}

// integerWords converts a positive integer to words using crore/lakh groups.
func integerWords(n int64) string {
	parts := make([]string, 0, 5)

	appendPart := func(value int64, unit string) {
		if value == 0 {
			return
		}
		part := belowThousand(value)
		if unit != "" {
			part += " " + unit
		}
		parts = append(parts, part)
	}

	appendPart(n/10000000, "Crore")
	n %= 10000000
	appendPart(n/100000, "Lakh")
	n %= 100000
	appendPart(n/1000, "Thousand")
	n %= 1000
	appendPart(n, "")

	return strings.Join(parts, " ")
}

func belowThousand(n int64) string {
	parts := make([]string, 0, 3)
	if n >= 100 {
		parts = append(parts, onesWords[n/100]+" Hundred")
		n %= 100
	}
	if n >= 20 {
		parts = append(parts, tensWords[n/10])
		n %= 10
	}
	if n > 0 {
		parts = append(parts, onesWords[n])
	}
	return strings.Join(parts, " ")
}
