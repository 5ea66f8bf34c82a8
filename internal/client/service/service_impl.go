package service

import (
	"context"
	"strings"

	clientdomain "github.com/billforge/billforge/internal/client/domain"
	tenantdomain "github.com/billforge/billforge/internal/tenant/domain"
	"github.com/billforge/billforge/pkg/repository"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	TenantSvc tenantdomain.Service
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node

	tenantSvc  tenantdomain.Service
	clientrepo repository.Repository[clientdomain.Client]
}

func NewService(p ServiceParam) clientdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("client.service"),
		genID: p.GenID,

		tenantSvc:  p.TenantSvc,
		clientrepo: repository.ProvideStore[clientdomain.Client](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req clientdomain.CreateRequest) (*clientdomain.Client, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, clientdomain.ErrInvalidName
	}

	tenant, err := s.tenantSvc.GetByID(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}
	if !tenant.Active {
		return nil, tenantdomain.ErrInactive
	}

	client := &clientdomain.Client{
		ID:           s.genID.Generate(),
		TenantID:     tenant.ID,
		Name:         name,
		Email:        strings.TrimSpace(req.Email),
		GSTIN:        strings.ToUpper(strings.TrimSpace(req.GSTIN)),
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		PinCode:      req.PinCode,
	}

	if err := s.clientrepo.Create(ctx, client); err != nil {
		return nil, err
	}

	s.log.Info("client created",
		zap.String("client_id", client.ID.String()),
		zap.String("tenant_id", tenant.ID.String()),
	)
	return client, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*clientdomain.Client, error) {
	clientID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, clientdomain.ErrInvalidID
	}

	client, err := s.clientrepo.FindOne(ctx, &clientdomain.Client{ID: clientID})
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, clientdomain.ErrNotFound
	}
	return client, nil
}

func (s *Service) List(ctx context.Context, req clientdomain.ListRequest) ([]clientdomain.Client, error) {
	filter := &clientdomain.Client{}
	if req.TenantID != nil {
		tenantID, err := snowflake.ParseString(strings.TrimSpace(*req.TenantID))
		if err != nil {
			return nil, tenantdomain.ErrInvalidID
		}
		filter.TenantID = tenantID
	}

	items, err := s.clientrepo.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	clients := make([]clientdomain.Client, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		clients = append(clients, *item)
	}
	return clients, nil
}
