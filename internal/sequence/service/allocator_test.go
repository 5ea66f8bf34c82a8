package service

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/billforge/billforge/internal/clock"
	"github.com/billforge/billforge/internal/config"
	tenantdomain "github.com/billforge/billforge/internal/tenant/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// A single connection keeps the in-memory database alive and serializes
	// concurrent transactions the way a row lock would.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&tenantdomain.Tenant{}))
	return db
}

func newTestAllocator(t *testing.T, db *gorm.DB, clk clock.Clock) *Allocator {
	t.Helper()
	return NewAllocator(AllocatorParam{
		DB:        db,
		Log:       zap.NewNop(),
		Clock:     clk,
		Invoicing: config.NewStaticInvoicingConfigHolder(config.DefaultInvoicingConfig()),
	}).(*Allocator)
}

func seedTenant(t *testing.T, db *gorm.DB, tenant tenantdomain.Tenant) tenantdomain.Tenant {
	t.Helper()
	if tenant.ID == 0 {
		node, err := snowflake.NewNode(1)
		require.NoError(t, err)
		tenant.ID = node.Generate()
	}
	require.NoError(t, db.Create(&tenant).Error)
	return tenant
}

func TestAllocate_IncrementsWithinFinancialYear(t *testing.T) {
	db := newTestDB(t)
	clk := clock.NewFakeClock(time.Date(2023, time.June, 15, 10, 0, 0, 0, time.UTC))
	alloc := newTestAllocator(t, db, clk)

	tenant := seedTenant(t, db, tenantdomain.Tenant{
		Name: "Acme Transport", Slug: "acme-transport",
		InvoicePrefix: "INV", SequenceCounter: 5, SequenceEpoch: "23-24", Active: true,
	})

	got, err := alloc.Allocate(context.Background(), tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(6), got.Counter)
	assert.Equal(t, "23-24", got.FinancialYear)
	assert.Equal(t, "INV/23-24/006", got.InvoiceNumber)
}

func TestAllocate_ResetsOnFinancialYearRollover(t *testing.T) {
	db := newTestDB(t)
	clk := clock.NewFakeClock(time.Date(2024, time.March, 31, 23, 0, 0, 0, time.UTC))
	alloc := newTestAllocator(t, db, clk)

	tenant := seedTenant(t, db, tenantdomain.Tenant{
		Name: "Acme Transport", Slug: "acme-transport",
		InvoicePrefix: "INV", SequenceCounter: 41, SequenceEpoch: "23-24", Active: true,
	})

	got, err := alloc.Allocate(context.Background(), tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, "INV/23-24/042", got.InvoiceNumber)

	clk.Set(time.Date(2024, time.April, 1, 0, 30, 0, 0, time.UTC))

	got, err = alloc.Allocate(context.Background(), tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Counter)
	assert.Equal(t, "24-25", got.FinancialYear)
	assert.Equal(t, "INV/24-25/001", got.InvoiceNumber)
}

func TestAllocate_UninitializedTenantStartsAtOne(t *testing.T) {
	db := newTestDB(t)
	clk := clock.NewFakeClock(time.Date(2024, time.July, 1, 9, 0, 0, 0, time.UTC))
	alloc := newTestAllocator(t, db, clk)

	tenant := seedTenant(t, db, tenantdomain.Tenant{
		Name: "Fresh Co", Slug: "fresh-co", InvoicePrefix: "FC", Active: true,
	})

	got, err := alloc.Allocate(context.Background(), tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, "FC/24-25/001", got.InvoiceNumber)
}

func TestAllocate_TenantNotFound(t *testing.T) {
	db := newTestDB(t)
	clk := clock.NewFakeClock(time.Date(2024, time.July, 1, 9, 0, 0, 0, time.UTC))
	alloc := newTestAllocator(t, db, clk)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	_, err = alloc.Allocate(context.Background(), node.Generate())
	assert.ErrorIs(t, err, tenantdomain.ErrNotFound)
}

func TestAllocate_InactiveTenantDoesNotAdvanceCounter(t *testing.T) {
	db := newTestDB(t)
	clk := clock.NewFakeClock(time.Date(2024, time.July, 1, 9, 0, 0, 0, time.UTC))
	alloc := newTestAllocator(t, db, clk)

	tenant := seedTenant(t, db, tenantdomain.Tenant{
		Name: "Closed Co", Slug: "closed-co",
		InvoicePrefix: "CC", SequenceCounter: 9, SequenceEpoch: "24-25", Active: false,
	})

	_, err := alloc.Allocate(context.Background(), tenant.ID)
	assert.ErrorIs(t, err, tenantdomain.ErrInactive)
	assert.NotErrorIs(t, err, tenantdomain.ErrNotFound)

	var reread tenantdomain.Tenant
	require.NoError(t, db.First(&reread, "id = ?", tenant.ID).Error)
	assert.Equal(t, int64(9), reread.SequenceCounter)
	assert.Equal(t, "24-25", reread.SequenceEpoch)
}

func TestAllocate_ConcurrentCallsYieldDistinctSequentialNumbers(t *testing.T) {
	db := newTestDB(t)
	clk := clock.NewFakeClock(time.Date(2024, time.September, 2, 11, 0, 0, 0, time.UTC))
	alloc := newTestAllocator(t, db, clk)

	tenant := seedTenant(t, db, tenantdomain.Tenant{
		Name: "Busy Co", Slug: "busy-co", InvoicePrefix: "BC", Active: true,
	})

	const workers = 20

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		counters []int64
		numbers  = map[string]bool{}
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := alloc.Allocate(context.Background(), tenant.ID)
			assert.NoError(t, err)

			mu.Lock()
			defer mu.Unlock()
			counters = append(counters, got.Counter)
			numbers[got.InvoiceNumber] = true
		}()
	}
	wg.Wait()

	require.Len(t, counters, workers)
	assert.Len(t, numbers, workers, "every minted number must be distinct")

	sort.Slice(counters, func(i, j int) bool { return counters[i] < counters[j] })
	for i, c := range counters {
		assert.Equal(t, int64(i+1), c, "counters must be gap-free 1..N")
	}
}

func TestAllocate_NumberPadsBeyondThreeDigits(t *testing.T) {
	db := newTestDB(t)
	clk := clock.NewFakeClock(time.Date(2024, time.July, 1, 9, 0, 0, 0, time.UTC))
	alloc := newTestAllocator(t, db, clk)

	tenant := seedTenant(t, db, tenantdomain.Tenant{
		Name: "Bulk Co", Slug: "bulk-co",
		InvoicePrefix: "BLK", SequenceCounter: 999, SequenceEpoch: "24-25", Active: true,
	})

	got, err := alloc.Allocate(context.Background(), tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, "BLK/24-25/1000", got.InvoiceNumber)
}
