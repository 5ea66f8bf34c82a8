package service

import (
	"context"
	"strings"

	"github.com/billforge/billforge/internal/config"
	tenantdomain "github.com/billforge/billforge/internal/tenant/domain"
	pkgdb "github.com/billforge/billforge/pkg/db"
	"github.com/billforge/billforge/pkg/db/option"
	"github.com/billforge/billforge/pkg/repository"
	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Invoicing *config.InvoicingConfigHolder
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node

	invoicing  *config.InvoicingConfigHolder
	tenantrepo repository.Repository[tenantdomain.Tenant]
}

func NewService(p ServiceParam) tenantdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("tenant.service"),
		genID: p.GenID,

		invoicing:  p.Invoicing,
		tenantrepo: repository.ProvideStore[tenantdomain.Tenant](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req tenantdomain.CreateRequest) (*tenantdomain.Tenant, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, tenantdomain.ErrInvalidName
	}

	prefix := s.invoicing.Get().DefaultPrefix
	if req.InvoicePrefix != nil && strings.TrimSpace(*req.InvoicePrefix) != "" {
		prefix = strings.ToUpper(strings.TrimSpace(*req.InvoicePrefix))
	}

	tenant := &tenantdomain.Tenant{
		ID:                    s.genID.Generate(),
		Name:                  name,
		Slug:                  slug.Make(name),
		InvoicePrefix:         prefix,
		AllowManualItemTotals: req.AllowManualItemTotals,
		Active:                true,
	}

	if err := s.tenantrepo.Create(ctx, tenant); err != nil {
		if pkgdb.IsDuplicateKeyErr(err) {
			return nil, tenantdomain.ErrNameExists
		}
		return nil, err
	}

	s.log.Info("tenant created",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("slug", tenant.Slug),
	)
	return tenant, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*tenantdomain.Tenant, error) {
	tenantID, err := parseID(id)
	if err != nil {
		return nil, tenantdomain.ErrInvalidID
	}

	tenant, err := s.tenantrepo.FindOne(ctx, &tenantdomain.Tenant{ID: tenantID})
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, tenantdomain.ErrNotFound
	}
	return tenant, nil
}

func (s *Service) List(ctx context.Context, req tenantdomain.ListRequest) ([]tenantdomain.Tenant, error) {
	// Not a struct condition: gorm drops zero-value struct fields, which
	// would turn an active=false filter into no filter at all.
	var options []option.QueryOption
	if req.Active != nil {
		options = append(options, option.ApplyOperator(option.Condition{
			Field:    "active",
			Operator: option.EQ,
			Value:    *req.Active,
		}))
	}

	items, err := s.tenantrepo.Find(ctx, &tenantdomain.Tenant{}, options...)
	if err != nil {
		return nil, err
	}

	tenants := make([]tenantdomain.Tenant, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		tenants = append(tenants, *item)
	}
	return tenants, nil
}

func (s *Service) Deactivate(ctx context.Context, id string) (*tenantdomain.Tenant, error) {
	tenant, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !tenant.Active {
		return tenant, nil
	}

	if err := s.tenantrepo.Update(ctx, tenant.ID.String(), map[string]any{"active": false}); err != nil {
		return nil, err
	}
	tenant.Active = false

	s.log.Info("tenant deactivated", zap.String("tenant_id", tenant.ID.String()))
	return tenant, nil
}

func parseID(raw string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(raw))
}
