package service

import (
	"context"
	"errors"
	"strings"

	clientdomain "github.com/billforge/billforge/internal/client/domain"
	"github.com/billforge/billforge/internal/clock"
	"github.com/billforge/billforge/internal/config"
	invoicedomain "github.com/billforge/billforge/internal/invoice/domain"
	"github.com/billforge/billforge/internal/metrics"
	"github.com/billforge/billforge/internal/money"
	sequencedomain "github.com/billforge/billforge/internal/sequence/domain"
	"github.com/billforge/billforge/internal/tax/calc"
	taxdomain "github.com/billforge/billforge/internal/tax/domain"
	tenantdomain "github.com/billforge/billforge/internal/tenant/domain"
	"github.com/billforge/billforge/pkg/db/option"
	"github.com/billforge/billforge/pkg/repository"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Clock     clock.Clock
	Allocator sequencedomain.Allocator
	Invoicing *config.InvoicingConfigHolder
	Metrics   *metrics.Metrics
}

// Service assembles invoices: it validates the request, mints a number,
// runs the tax calculation, and persists the snapshot.
type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock

	allocator sequencedomain.Allocator
	invoicing *config.InvoicingConfigHolder
	metrics   *metrics.Metrics

	invoicerepo repository.Repository[invoicedomain.Invoice]
	tenantrepo  repository.Repository[tenantdomain.Tenant]
	clientrepo  repository.Repository[clientdomain.Client]
}

func NewService(p ServiceParam) invoicedomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("invoice.service"),
		genID: p.GenID,
		clock: p.Clock,

		allocator: p.Allocator,
		invoicing: p.Invoicing,
		metrics:   p.Metrics,

		invoicerepo: repository.ProvideStore[invoicedomain.Invoice](p.DB),
		tenantrepo:  repository.ProvideStore[tenantdomain.Tenant](p.DB),
		clientrepo:  repository.ProvideStore[clientdomain.Client](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req invoicedomain.CreateRequest) (*invoicedomain.Invoice, error) {
	tenantID, err := snowflake.ParseString(strings.TrimSpace(req.TenantID))
	if err != nil {
		return nil, tenantdomain.ErrInvalidID
	}
	if strings.TrimSpace(req.ClientID) == "" {
		return nil, invoicedomain.ErrClientRequired
	}
	clientID, err := snowflake.ParseString(strings.TrimSpace(req.ClientID))
	if err != nil {
		return nil, invoicedomain.ErrClientRequired
	}

	tenant, err := s.loadActiveTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if err := validateItems(req.Items, req.Regime, req.Rates, tenant.AllowManualItemTotals); err != nil {
		return nil, err
	}

	client, err := s.clientrepo.FindOne(ctx, &clientdomain.Client{ID: clientID})
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, clientdomain.ErrNotFound
	}
	if client.TenantID != tenant.ID {
		return nil, invoicedomain.ErrClientMismatch
	}

	// The number is consumed here. If anything after this point fails the
	// sequence keeps the gap; reusing the number would break uniqueness
	// under retries.
	alloc, err := s.allocator.Allocate(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if alloc.Counter == 1 {
		s.metrics.SequenceRollovers.Inc()
	}

	summary := calc.Calculate(req.Items, req.Regime, req.Rates)

	invoiceDate := s.clock.Now()
	if req.InvoiceDate != nil {
		invoiceDate = req.InvoiceDate.UTC()
	}

	declaration := req.Declaration
	if declaration == "" {
		declaration = s.invoicing.Get().Declaration
	}

	invoice := &invoicedomain.Invoice{
		ID:       s.genID.Generate(),
		TenantID: tenant.ID,
		ClientID: client.ID,

		InvoiceNumber: alloc.InvoiceNumber,
		FinancialYear: alloc.FinancialYear,
		InvoiceDate:   invoiceDate,
		Status:        invoicedomain.InvoiceStatusPending,

		Note:        req.Note,
		Declaration: declaration,
		Details:     datatypes.JSONMap(req.Details),
	}
	applySummary(invoice, summary)
	invoice.Items = s.buildItems(invoice.ID, summary.Items)

	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(invoice).Error
	}); err != nil {
		s.metrics.SequenceGaps.Inc()
		s.log.Error("invoice persist failed after number allocation",
			zap.String("tenant_id", tenant.ID.String()),
			zap.String("invoice_number", alloc.InvoiceNumber),
			zap.Error(err),
		)
		return nil, invoicedomain.PersistFailure(err)
	}

	s.metrics.InvoicesIssued.WithLabelValues(tenant.ID.String()).Inc()
	s.log.Info("invoice created",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.Float64("gross_amount", invoice.GrossAmount),
	)
	return invoice, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*invoicedomain.Invoice, error) {
	invoiceID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, invoicedomain.ErrInvalidID
	}

	var invoice invoicedomain.Invoice
	err = s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&invoice, "id = ?", invoiceID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, invoicedomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (s *Service) List(ctx context.Context, req invoicedomain.ListRequest) ([]invoicedomain.Invoice, error) {
	filter := &invoicedomain.Invoice{}
	if req.TenantID != nil {
		tenantID, err := snowflake.ParseString(strings.TrimSpace(*req.TenantID))
		if err != nil {
			return nil, tenantdomain.ErrInvalidID
		}
		filter.TenantID = tenantID
	}
	if req.ClientID != nil {
		clientID, err := snowflake.ParseString(strings.TrimSpace(*req.ClientID))
		if err != nil {
			return nil, clientdomain.ErrInvalidID
		}
		filter.ClientID = clientID
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, invoicedomain.ErrInvalidStatus
		}
		filter.Status = *req.Status
	}

	options := []option.QueryOption{
		option.WithSortBy(option.QuerySortBy{Allow: map[string]bool{"created_at": true}}),
	}
	if req.DateFrom != nil {
		options = append(options, option.ApplyOperator(option.Condition{
			Field:    "invoice_date",
			Operator: option.GTE,
			Value:    *req.DateFrom,
		}))
	}
	if req.DateTo != nil {
		options = append(options, option.ApplyOperator(option.Condition{
			Field:    "invoice_date",
			Operator: option.LTE,
			Value:    *req.DateTo,
		}))
	}
	if req.Limit > 0 {
		options = append(options, option.WithLimit(req.Limit))
	}

	items, err := s.invoicerepo.Find(ctx, filter, options...)
	if err != nil {
		return nil, err
	}

	invoices := make([]invoicedomain.Invoice, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		invoices = append(invoices, *item)
	}
	return invoices, nil
}

func (s *Service) UpdateItems(ctx context.Context, req invoicedomain.UpdateItemsRequest) (*invoicedomain.Invoice, error) {
	invoice, err := s.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	tenant, err := s.loadActiveTenant(ctx, invoice.TenantID)
	if err != nil {
		return nil, err
	}
	if err := validateItems(req.Items, req.Regime, req.Rates, tenant.AllowManualItemTotals); err != nil {
		return nil, err
	}

	// Superseding recalculation: the full calculator runs again over the
	// new item set. The invoice number and financial year are untouched.
	summary := calc.Calculate(req.Items, req.Regime, req.Rates)
	applySummary(invoice, summary)
	invoice.Items = s.buildItems(invoice.ID, summary.Items)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&invoicedomain.InvoiceItem{}).Error; err != nil {
			return err
		}
		if err := tx.Create(&invoice.Items).Error; err != nil {
			return err
		}
		return tx.Model(&invoicedomain.Invoice{}).
			Where("id = ?", invoice.ID).
			Updates(map[string]any{
				"total_before_tax":    invoice.TotalBeforeTax,
				"taxable_amount":      invoice.TaxableAmount,
				"non_taxable_amount":  invoice.NonTaxableAmount,
				"tax_regime":          invoice.Tax.Regime,
				"tax_cgst_rate":       invoice.Tax.CGSTRate,
				"tax_sgst_rate":       invoice.Tax.SGSTRate,
				"tax_igst_rate":       invoice.Tax.IGSTRate,
				"tax_surcharge_rate":  invoice.Tax.SurchargeRate,
				"tax_cgst":            invoice.Tax.CGST,
				"tax_sgst":            invoice.Tax.SGST,
				"tax_igst":            invoice.Tax.IGST,
				"tax_surcharge":       invoice.Tax.Surcharge,
				"tax_total_tax":       invoice.Tax.TotalTax,
				"rounding_adjustment": invoice.RoundingAdjustment,
				"gross_amount":        invoice.GrossAmount,
				"in_words":            invoice.InWords,
				"updated_at":          s.clock.Now(),
			}).Error
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("invoice recalculated",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.Float64("gross_amount", invoice.GrossAmount),
	)
	return invoice, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id string, status invoicedomain.InvoiceStatus) (*invoicedomain.Invoice, error) {
	if !status.Valid() {
		return nil, invoicedomain.ErrInvalidStatus
	}

	invoice, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.invoicerepo.Update(ctx, invoice.ID.String(), map[string]any{
		"status":     status,
		"updated_at": s.clock.Now(),
	}); err != nil {
		return nil, err
	}
	invoice.Status = status
	return invoice, nil
}

func (s *Service) loadActiveTenant(ctx context.Context, tenantID snowflake.ID) (*tenantdomain.Tenant, error) {
	tenant, err := s.tenantrepo.FindOne(ctx, &tenantdomain.Tenant{ID: tenantID})
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, tenantdomain.ErrNotFound
	}
	if !tenant.Active {
		return nil, tenantdomain.ErrInactive
	}
	return tenant, nil
}

func (s *Service) buildItems(invoiceID snowflake.ID, resolved []taxdomain.ResolvedLineItem) []invoicedomain.InvoiceItem {
	items := make([]invoicedomain.InvoiceItem, 0, len(resolved))
	for i, item := range resolved {
		items = append(items, invoicedomain.InvoiceItem{
			ID:          s.genID.Generate(),
			InvoiceID:   invoiceID,
			Position:    i + 1,
			Description: item.Description,
			HSNCode:     item.HSNCode,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Total:       item.Total,
			Taxable:     item.Taxable,
		})
	}
	return items
}

func applySummary(invoice *invoicedomain.Invoice, summary taxdomain.Summary) {
	invoice.TotalBeforeTax = summary.TotalBeforeTax
	invoice.TaxableAmount = summary.TaxableAmount
	invoice.NonTaxableAmount = summary.NonTaxableAmount
	invoice.Tax = summary.Breakdown
	invoice.RoundingAdjustment = summary.RoundingAdjustment
	invoice.GrossAmount = summary.GrossAmount
	invoice.InWords = money.AmountInWords(summary.GrossAmount)
}

func validateItems(items []taxdomain.LineItem, regime taxdomain.Regime, rates taxdomain.Rates, allowManualTotals bool) error {
	if len(items) == 0 {
		return invoicedomain.ErrItemsRequired
	}
	if !regime.Valid() {
		return taxdomain.ErrInvalidRegime
	}
	if err := rates.Validate(); err != nil {
		return err
	}
	if !allowManualTotals {
		for _, item := range items {
			if item.Total != nil {
				return invoicedomain.ErrManualTotalNotAllowed
			}
		}
	}
	return nil
}
