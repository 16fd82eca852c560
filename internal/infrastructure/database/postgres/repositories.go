// internal/infrastructure/database/postgres/repositories.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/your-org/storefront/internal/domain/account"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/order"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	_ catalog.Source = (*CatalogSource)(nil)
	_ order.Source   = (*OrderRepository)(nil)
	_ account.Store  = (*AccountRepository)(nil)
)

// CatalogSource loads the storefront catalog from the products and categories tables
type CatalogSource struct {
	db *gorm.DB
}

// NewCatalogSource creates a new catalog source
func NewCatalogSource(db *gorm.DB) *CatalogSource {
	return &CatalogSource{db: db}
}

// LoadCatalog reads every category and product, newest product first
func (s *CatalogSource) LoadCatalog(ctx context.Context) (*catalog.Seed, error) {
	var categoryRows []CategoryRow
	if err := s.db.WithContext(ctx).Order("sort_order ASC, id ASC").Find(&categoryRows).Error; err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	var productRows []ProductRow
	if err := s.db.WithContext(ctx).
		Preload("Category").
		Order("added_at DESC, id ASC").
		Find(&productRows).Error; err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	categories := make([]catalog.Category, len(categoryRows))
	for i, r := range categoryRows {
		categories[i] = categoryFromRow(r)
	}
	products := make([]catalog.Product, len(productRows))
	for i, r := range productRows {
		products[i] = productFromRow(r)
	}

	return catalog.NewSeed(products, categories), nil
}

// OrderRepository stores placed orders
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// ListOrders returns a shopper's orders, newest first
func (r *OrderRepository) ListOrders(ctx context.Context, userID string) ([]order.Order, error) {
	var rows []OrderRow
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	orders := make([]order.Order, len(rows))
	for i, row := range rows {
		orders[i] = orderFromRow(row)
	}
	return orders, nil
}

// SaveOrder inserts the order or overwrites the stored copy
func (r *OrderRepository) SaveOrder(ctx context.Context, o order.Order) error {
	row := orderToRow(o)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&row).Error; err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}
	return nil
}

// AccountRepository stores registered shoppers
type AccountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, a account.Account) error {
	row := accountToRow(a)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return account.ErrAccountExists
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (account.Account, error) {
	return r.first(ctx, "email = ?", account.NormalizeEmail(email))
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (account.Account, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *AccountRepository) first(ctx context.Context, query string, arg interface{}) (account.Account, error) {
	var row AccountRow
	if err := r.db.WithContext(ctx).Where(query, arg).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return account.Account{}, account.ErrAccountNotFound
		}
		return account.Account{}, fmt.Errorf("failed to find account: %w", err)
	}
	return accountFromRow(row), nil
}

func (r *AccountRepository) TouchLogin(ctx context.Context, id string, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&AccountRow{}).
		Where("id = ?", id).
		Update("last_login_at", at)
	if result.Error != nil {
		return fmt.Errorf("failed to record login: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return account.ErrAccountNotFound
	}
	return nil
}
