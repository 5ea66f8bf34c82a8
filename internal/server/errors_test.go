package server

import (
	"errors"
	"net/http"
	"testing"

	invoicedomain "github.com/billforge/billforge/internal/invoice/domain"
	tenantdomain "github.com/billforge/billforge/internal/tenant/domain"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	status, payload := mapError(tenantdomain.ErrNotFound)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "not_found", payload.Type)

	status, payload = mapError(tenantdomain.ErrInactive)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "conflict", payload.Type)

	status, payload = mapError(invoicedomain.ErrItemsRequired)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "validation_error", payload.Type)

	// A post-allocation write failure is not a generic internal error: the
	// number is gone and callers need to know that.
	status, payload = mapError(invoicedomain.PersistFailure(errors.New("connection reset")))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "invoice_persist_failed", payload.Type)

	status, payload = mapError(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "internal_error", payload.Type)
}
