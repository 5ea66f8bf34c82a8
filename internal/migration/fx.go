package migration

import (
	clientdomain "github.com/billforge/billforge/internal/client/domain"
	"github.com/billforge/billforge/internal/config"
	invoicedomain "github.com/billforge/billforge/internal/invoice/domain"
	tenantdomain "github.com/billforge/billforge/internal/tenant/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, log *zap.Logger) error {
		if cfg.DBType != "postgres" {
			// The versioned migrations are written for postgres. Other
			// dialects are for local development; let gorm derive the schema.
			log.Info("skipping versioned migrations", zap.String("db_type", cfg.DBType))
			return conn.AutoMigrate(
				&tenantdomain.Tenant{},
				&clientdomain.Client{},
				&invoicedomain.Invoice{},
				&invoicedomain.InvoiceItem{},
			)
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return RunMigrations(sqlDB)
	}),
)
