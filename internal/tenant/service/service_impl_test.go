package service

import (
	"context"
	"testing"

	"github.com/billforge/billforge/internal/config"
	tenantdomain "github.com/billforge/billforge/internal/tenant/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (tenantdomain.Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&tenantdomain.Tenant{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := NewService(ServiceParam{
		DB:        db,
		Log:       zap.NewNop(),
		GenID:     node,
		Invoicing: config.NewStaticInvoicingConfigHolder(config.DefaultInvoicingConfig()),
	})
	return svc, db
}

func TestCreate_DefaultsAndSlug(t *testing.T) {
	svc, _ := newTestService(t)

	got, err := svc.Create(context.Background(), tenantdomain.CreateRequest{Name: "Acme Transport Pvt Ltd"})
	require.NoError(t, err)
	assert.Equal(t, "acme-transport-pvt-ltd", got.Slug)
	assert.Equal(t, config.DefaultInvoicingConfig().DefaultPrefix, got.InvoicePrefix)
	assert.True(t, got.Active)
	assert.Zero(t, got.SequenceCounter)
	assert.Empty(t, got.SequenceEpoch)
}

func TestCreate_CustomPrefixUppercased(t *testing.T) {
	svc, _ := newTestService(t)

	prefix := "acm"
	got, err := svc.Create(context.Background(), tenantdomain.CreateRequest{
		Name: "Acme Transport", InvoicePrefix: &prefix,
	})
	require.NoError(t, err)
	assert.Equal(t, "ACM", got.InvoicePrefix)
}

func TestCreate_Validation(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), tenantdomain.CreateRequest{Name: "   "})
	assert.ErrorIs(t, err, tenantdomain.ErrInvalidName)

	_, err = svc.Create(context.Background(), tenantdomain.CreateRequest{Name: "Acme"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), tenantdomain.CreateRequest{Name: "Acme"})
	assert.ErrorIs(t, err, tenantdomain.ErrNameExists)
}

func TestGetByID(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create(context.Background(), tenantdomain.CreateRequest{Name: "Acme"})
	require.NoError(t, err)

	got, err := svc.GetByID(context.Background(), created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, created.Name, got.Name)

	_, err = svc.GetByID(context.Background(), "bogus")
	assert.ErrorIs(t, err, tenantdomain.ErrInvalidID)

	node, err := snowflake.NewNode(2)
	require.NoError(t, err)
	_, err = svc.GetByID(context.Background(), node.Generate().String())
	assert.ErrorIs(t, err, tenantdomain.ErrNotFound)
}

func TestList_FiltersByActive(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), tenantdomain.CreateRequest{Name: "Open Co"})
	require.NoError(t, err)
	closed, err := svc.Create(context.Background(), tenantdomain.CreateRequest{Name: "Closed Co"})
	require.NoError(t, err)
	_, err = svc.Deactivate(context.Background(), closed.ID.String())
	require.NoError(t, err)

	all, err := svc.List(context.Background(), tenantdomain.ListRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active := true
	got, err := svc.List(context.Background(), tenantdomain.ListRequest{Active: &active})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Open Co", got[0].Name)

	// false must filter too, not fall back to everything.
	inactive := false
	got, err = svc.List(context.Background(), tenantdomain.ListRequest{Active: &inactive})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Closed Co", got[0].Name)
}

func TestDeactivate(t *testing.T) {
	svc, db := newTestService(t)

	created, err := svc.Create(context.Background(), tenantdomain.CreateRequest{Name: "Acme"})
	require.NoError(t, err)

	got, err := svc.Deactivate(context.Background(), created.ID.String())
	require.NoError(t, err)
	assert.False(t, got.Active)

	var reread tenantdomain.Tenant
	require.NoError(t, db.First(&reread, "id = ?", created.ID).Error)
	assert.False(t, reread.Active)

	// Idempotent.
	got, err = svc.Deactivate(context.Background(), created.ID.String())
	require.NoError(t, err)
	assert.False(t, got.Active)
}
