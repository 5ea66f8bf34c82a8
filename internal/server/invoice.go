package server

import (
	"net/http"
	"strings"
	"time"

	invoicedomain "github.com/billforge/billforge/internal/invoice/domain"
	"github.com/billforge/billforge/internal/tax/calc"
	taxdomain "github.com/billforge/billforge/internal/tax/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) ListInvoices(c *gin.Context) {
	req := invoicedomain.ListRequest{}
	if raw := strings.TrimSpace(c.Query("tenant_id")); raw != "" {
		req.TenantID = &raw
	}
	if raw := strings.TrimSpace(c.Query("client_id")); raw != "" {
		req.ClientID = &raw
	}
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		status := invoicedomain.InvoiceStatus(raw)
		req.Status = &status
	}
	if raw := strings.TrimSpace(c.Query("from")); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			AbortWithError(c, newValidationError("from", "invalid_date", "must be RFC 3339"))
			return
		}
		req.DateFrom = &from
	}
	if raw := strings.TrimSpace(c.Query("to")); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			AbortWithError(c, newValidationError("to", "invalid_date", "must be RFC 3339"))
			return
		}
		req.DateTo = &to
	}

	invoices, err := s.invoiceSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": invoices})
}

func (s *Server) CreateInvoice(c *gin.Context) {
	var req invoicedomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, newValidationError("request", "invalid_request", "invalid request"))
		return
	}

	invoice, err := s.invoiceSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": invoice})
}

// PreviewInvoice runs the calculation without minting a number or touching
// storage.
func (s *Server) PreviewInvoice(c *gin.Context) {
	var req struct {
		Items  []taxdomain.LineItem `json:"items"`
		Regime taxdomain.Regime     `json:"tax_regime"`
		Rates  taxdomain.Rates      `json:"rates"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, newValidationError("request", "invalid_request", "invalid request"))
		return
	}
	if !req.Regime.Valid() {
		AbortWithError(c, taxdomain.ErrInvalidRegime)
		return
	}
	if err := req.Rates.Validate(); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": calc.Calculate(req.Items, req.Regime, req.Rates)})
}

func (s *Server) GetInvoiceByID(c *gin.Context) {
	invoice, err := s.invoiceSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": invoice})
}

func (s *Server) ReplaceInvoiceItems(c *gin.Context) {
	var req invoicedomain.UpdateItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, newValidationError("request", "invalid_request", "invalid request"))
		return
	}
	req.ID = strings.TrimSpace(c.Param("id"))

	invoice, err := s.invoiceSvc.UpdateItems(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": invoice})
}

func (s *Server) UpdateInvoiceStatus(c *gin.Context) {
	var req struct {
		Status invoicedomain.InvoiceStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, newValidationError("request", "invalid_request", "invalid request"))
		return
	}

	invoice, err := s.invoiceSvc.UpdateStatus(c.Request.Context(), strings.TrimSpace(c.Param("id")), req.Status)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": invoice})
}
