package server

import (
	"net/http"
	"strconv"
	"strings"

	tenantdomain "github.com/billforge/billforge/internal/tenant/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
)

func (s *Server) ListTenants(c *gin.Context) {
	req := tenantdomain.ListRequest{}
	if raw := strings.TrimSpace(c.Query("active")); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			AbortWithError(c, newValidationError("active", "invalid_active", "must be true or false"))
			return
		}
		req.Active = &active
	}

	tenants, err := s.tenantSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": tenants})
}

func (s *Server) CreateTenant(c *gin.Context) {
	var req tenantdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, newValidationError("request", "invalid_request", "invalid request"))
		return
	}

	tenant, err := s.tenantSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": tenant})
}

func (s *Server) GetTenantByID(c *gin.Context) {
	tenant, err := s.tenantSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": tenant})
}

func (s *Server) DeactivateTenant(c *gin.Context) {
	tenant, err := s.tenantSvc.Deactivate(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": tenant})
}

// AllocateInvoiceNumber mints the next number for a tenant without creating
// an invoice. The number is consumed either way.
func (s *Server) AllocateInvoiceNumber(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	tenantID, err := snowflake.ParseString(id)
	if err != nil {
		AbortWithError(c, tenantdomain.ErrInvalidID)
		return
	}

	alloc, err := s.allocator.Allocate(c.Request.Context(), tenantID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": alloc})
}
