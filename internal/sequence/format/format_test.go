package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatInvoiceNumber(t *testing.T) {
	got, err := FormatInvoiceNumber("INV", "23-24", 6, 3)
	require.NoError(t, err)
	assert.Equal(t, "INV/23-24/006", got)

	got, err = FormatInvoiceNumber("INV", "24-25", 1234, 3)
	require.NoError(t, err)
	assert.Equal(t, "INV/24-25/1234", got)

	// Padding below the minimum is widened, never narrowed.
	got, err = FormatInvoiceNumber("INV", "24-25", 7, 1)
	require.NoError(t, err)
	assert.Equal(t, "INV/24-25/007", got)

	got, err = FormatInvoiceNumber("EXP", "24-25", 42, 5)
	require.NoError(t, err)
	assert.Equal(t, "EXP/24-25/00042", got)
}

func TestFormatInvoiceNumber_Rejections(t *testing.T) {
	_, err := FormatInvoiceNumber("", "23-24", 1, 3)
	assert.Error(t, err)

	_, err = FormatInvoiceNumber("INV", "", 1, 3)
	assert.Error(t, err)

	_, err = FormatInvoiceNumber("INV", "23-24", 0, 3)
	assert.Error(t, err)
}
