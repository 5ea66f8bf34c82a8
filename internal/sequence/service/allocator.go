package service

import (
	"context"
	"errors"

	"github.com/billforge/billforge/internal/clock"
	"github.com/billforge/billforge/internal/config"
	"github.com/billforge/billforge/internal/fiscal"
	sequencedomain "github.com/billforge/billforge/internal/sequence/domain"
	"github.com/billforge/billforge/internal/sequence/format"
	tenantdomain "github.com/billforge/billforge/internal/tenant/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AllocatorParam struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	Clock     clock.Clock
	Invoicing *config.InvoicingConfigHolder
}

// Allocator implements sequencedomain.Allocator on top of a single
// conditional UPDATE. The read of (counter, epoch), the epoch comparison,
// the increment-or-reset, and the write-back all happen in one statement,
// so concurrent allocations for the same tenant serialize on the row lock
// and a lost-update race is impossible.
type Allocator struct {
	db        *gorm.DB
	log       *zap.Logger
	clock     clock.Clock
	invoicing *config.InvoicingConfigHolder
}

func NewAllocator(p AllocatorParam) sequencedomain.Allocator {
	return &Allocator{
		db:        p.DB,
		log:       p.Log.Named("sequence.allocator"),
		clock:     p.Clock,
		invoicing: p.Invoicing,
	}
}

func (a *Allocator) Allocate(ctx context.Context, tenantID snowflake.ID) (sequencedomain.Allocation, error) {
	var out sequencedomain.Allocation
	err := a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var txErr error
		out, txErr = a.AllocateTx(ctx, tx, tenantID)
		return txErr
	})
	if err != nil {
		return sequencedomain.Allocation{}, err
	}
	return out, nil
}

func (a *Allocator) AllocateTx(ctx context.Context, tx *gorm.DB, tenantID snowflake.ID) (sequencedomain.Allocation, error) {
	now := a.clock.Now()
	fy := fiscal.YearLabel(now)

	// sequence_counter must be assigned before sequence_epoch: MySQL applies
	// SET clauses left to right with updated values visible, so the CASE has
	// to compare against the stored epoch before it is overwritten.
	res := tx.WithContext(ctx).Exec(
		`UPDATE tenants
		 SET sequence_counter = CASE WHEN sequence_epoch = ? THEN sequence_counter + 1 ELSE 1 END,
		     sequence_epoch = ?,
		     updated_at = ?
		 WHERE id = ? AND active = ?`,
		fy, fy, now, tenantID, true,
	)
	if res.Error != nil {
		return sequencedomain.Allocation{}, res.Error
	}

	if res.RowsAffected == 0 {
		// No match: the tenant is either absent or inactive. Re-read to
		// tell the two apart; nothing was mutated either way.
		var probe tenantdomain.Tenant
		err := tx.WithContext(ctx).Select("id", "active").First(&probe, "id = ?", tenantID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return sequencedomain.Allocation{}, tenantdomain.ErrNotFound
		}
		if err != nil {
			return sequencedomain.Allocation{}, err
		}
		return sequencedomain.Allocation{}, tenantdomain.ErrInactive
	}

	// Still inside the transaction, so this read observes the row we just
	// updated while its lock is held.
	var tenant tenantdomain.Tenant
	if err := tx.WithContext(ctx).First(&tenant, "id = ?", tenantID).Error; err != nil {
		return sequencedomain.Allocation{}, err
	}

	number, err := format.FormatInvoiceNumber(
		tenant.InvoicePrefix,
		fy,
		tenant.SequenceCounter,
		a.invoicing.Get().SequencePadWidth,
	)
	if err != nil {
		return sequencedomain.Allocation{}, err
	}

	if tenant.SequenceCounter == 1 {
		a.log.Info("sequence reset for new financial year",
			zap.String("tenant_id", tenantID.String()),
			zap.String("financial_year", fy),
		)
	}

	return sequencedomain.Allocation{
		InvoiceNumber: number,
		FinancialYear: fy,
		Counter:       tenant.SequenceCounter,
	}, nil
}
