// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/catalog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Migration handles database migrations
type Migration struct {
	db     *gorm.DB
	logger logrus.FieldLogger
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB, logger logrus.FieldLogger) *Migration {
	return &Migration{
		db:     db,
		logger: logger,
	}
}

// Models lists every table in dependency order
func Models() []interface{} {
	return []interface{}{
		&CategoryRow{},
		&ProductRow{},
		&AccountRow{},
		&OrderRow{},
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	m.logger.Info("🔄 Running database auto-migrations...")

	for _, model := range Models() {
		m.logger.Debugf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	m.logger.Info("✅ Database auto-migrations completed successfully")
	return nil
}

// indexes are created after auto-migration for the storefront's hot queries
var indexes = []string{
	"CREATE INDEX IF NOT EXISTS idx_products_category_added ON products(category_id, added_at DESC)",
	"CREATE INDEX IF NOT EXISTS idx_products_price ON products(price)",
	"CREATE INDEX IF NOT EXISTS idx_products_rating ON products(rating DESC)",
	"CREATE INDEX IF NOT EXISTS idx_categories_sort_order ON categories(sort_order)",
	"CREATE INDEX IF NOT EXISTS idx_orders_user_created ON orders(user_id, created_at DESC)",
	"CREATE INDEX IF NOT EXISTS idx_orders_status_created ON orders(status, created_at DESC)",
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	successCount := 0
	failCount := 0

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			m.logger.WithError(err).Warn("⚠️ Failed to create index")
			failCount++
		} else {
			successCount++
		}
	}

	m.logger.Infof("✅ Created %d indexes successfully (%d failed)", successCount, failCount)
	return nil
}

// SeedCatalog loads the catalog from src into empty tables. Existing rows are left alone.
func (m *Migration) SeedCatalog(ctx context.Context, src catalog.Source) error {
	var productCount int64
	if err := m.db.WithContext(ctx).Model(&ProductRow{}).Count(&productCount).Error; err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if productCount > 0 {
		m.logger.Info("⏭️ Catalog already seeded")
		return nil
	}

	seed, err := src.LoadCatalog(ctx)
	if err != nil {
		return fmt.Errorf("failed to load seed catalog: %w", err)
	}

	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, c := range seed.Categories {
			row := categoryToRow(c, i+1)
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
				return fmt.Errorf("failed to seed category %s: %w", c.Slug, err)
			}
		}
		for _, p := range seed.Products {
			row := productToRow(p)
			if err := tx.Omit("Category").Create(&row).Error; err != nil {
				return fmt.Errorf("failed to seed product %s: %w", p.ID, err)
			}
		}
		m.logger.WithFields(logrus.Fields{
			"categories": len(seed.Categories),
			"products":   len(seed.Products),
		}).Info("🌱 Catalog seeded")
		return nil
	})
}
