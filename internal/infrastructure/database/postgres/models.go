// internal/infrastructure/database/postgres/models.go
package postgres

import (
	"time"

	"github.com/your-org/storefront/internal/domain/account"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/domain/user"
)

// CategoryRow is the categories table
type CategoryRow struct {
	ID          string `gorm:"primaryKey;size:64"`
	Slug        string `gorm:"uniqueIndex;size:128;not null"`
	Name        string `gorm:"size:255;not null"`
	Icon        string `gorm:"size:32"`
	Description string `gorm:"type:text"`
	Image       string `gorm:"size:500"`
	SortOrder   int    `gorm:"default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (CategoryRow) TableName() string { return "categories" }

// ProductRow is the products table. List-valued columns are stored as JSON.
type ProductRow struct {
	ID            string                 `gorm:"primaryKey;size:64"`
	Name          string                 `gorm:"size:255;not null"`
	Description   string                 `gorm:"type:text"`
	Price         float64                `gorm:"type:numeric(10,2);not null"`
	OriginalPrice *float64               `gorm:"type:numeric(10,2)"`
	CategoryID    string                 `gorm:"size:64;index;not null"`
	Category      CategoryRow            `gorm:"foreignKey:CategoryID"`
	Image         string                 `gorm:"size:500"`
	Images        []string               `gorm:"serializer:json"`
	Rating        float64                `gorm:"type:numeric(2,1);default:0"`
	Reviews       int                    `gorm:"default:0"`
	InStock       bool                   `gorm:"default:true"`
	Discount      *float64               `gorm:"type:numeric(5,2)"`
	Tags          []string               `gorm:"serializer:json"`
	Features      []string               `gorm:"serializer:json"`
	Nutrition     *catalog.NutritionInfo `gorm:"serializer:json"`
	AddedAt       time.Time              `gorm:"index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (ProductRow) TableName() string { return "products" }

// OrderRow is the orders table. Line items and the address are snapshots stored as JSON.
type OrderRow struct {
	ID                string       `gorm:"primaryKey;size:64"`
	Number            string       `gorm:"uniqueIndex;size:64;not null"`
	UserID            string       `gorm:"size:64;index"`
	Items             []cart.Item  `gorm:"serializer:json"`
	Subtotal          float64      `gorm:"type:numeric(12,2)"`
	DiscountAmount    float64      `gorm:"type:numeric(12,2)"`
	TaxAmount         float64      `gorm:"type:numeric(12,2)"`
	ShippingCost      float64      `gorm:"type:numeric(12,2)"`
	TotalAmount       float64      `gorm:"type:numeric(12,2)"`
	Status            string       `gorm:"size:32;index;not null"`
	ShippingAddress   user.Address `gorm:"serializer:json"`
	PaymentMethod     string       `gorm:"size:64"`
	TrackingNumber    string       `gorm:"size:128"`
	EstimatedDelivery *time.Time
	CreatedAt         time.Time `gorm:"index"`
	UpdatedAt         time.Time
}

func (OrderRow) TableName() string { return "orders" }

// AccountRow is the accounts table
type AccountRow struct {
	ID           string `gorm:"primaryKey;size:64"`
	Email        string `gorm:"uniqueIndex;size:255;not null"`
	Name         string `gorm:"size:255"`
	Phone        string `gorm:"size:32"`
	Avatar       string `gorm:"size:500"`
	PasswordHash string `gorm:"size:255;not null"`
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}

func (AccountRow) TableName() string { return "accounts" }

func categoryFromRow(r CategoryRow) catalog.Category {
	return catalog.Category{
		ID:          r.ID,
		Slug:        r.Slug,
		Name:        r.Name,
		Icon:        r.Icon,
		Description: r.Description,
		Image:       r.Image,
	}
}

func categoryToRow(c catalog.Category, sortOrder int) CategoryRow {
	return CategoryRow{
		ID:          c.ID,
		Slug:        c.Slug,
		Name:        c.Name,
		Icon:        c.Icon,
		Description: c.Description,
		Image:       c.Image,
		SortOrder:   sortOrder,
	}
}

func productFromRow(r ProductRow) catalog.Product {
	return catalog.Product{
		ID:            r.ID,
		Name:          r.Name,
		Description:   r.Description,
		Price:         r.Price,
		OriginalPrice: r.OriginalPrice,
		Category:      categoryFromRow(r.Category),
		Image:         r.Image,
		Images:        r.Images,
		Rating:        r.Rating,
		Reviews:       r.Reviews,
		InStock:       r.InStock,
		Discount:      r.Discount,
		Tags:          r.Tags,
		Features:      r.Features,
		AddedAt:       r.AddedAt.UTC(),
		Nutrition:     r.Nutrition,
	}
}

func productToRow(p catalog.Product) ProductRow {
	return ProductRow{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		CategoryID:    p.Category.ID,
		Image:         p.Image,
		Images:        p.Images,
		Rating:        p.Rating,
		Reviews:       p.Reviews,
		InStock:       p.InStock,
		Discount:      p.Discount,
		Tags:          p.Tags,
		Features:      p.Features,
		Nutrition:     p.Nutrition,
		AddedAt:       p.AddedAt,
	}
}

func orderFromRow(r OrderRow) order.Order {
	return order.Order{
		ID:                r.ID,
		Number:            r.Number,
		UserID:            r.UserID,
		Items:             r.Items,
		Subtotal:          r.Subtotal,
		DiscountAmount:    r.DiscountAmount,
		TaxAmount:         r.TaxAmount,
		ShippingCost:      r.ShippingCost,
		TotalAmount:       r.TotalAmount,
		Status:            order.Status(r.Status),
		ShippingAddress:   r.ShippingAddress,
		PaymentMethod:     r.PaymentMethod,
		TrackingNumber:    r.TrackingNumber,
		EstimatedDelivery: r.EstimatedDelivery,
		CreatedAt:         r.CreatedAt.UTC(),
		UpdatedAt:         r.UpdatedAt.UTC(),
	}
}

func orderToRow(o order.Order) OrderRow {
	return OrderRow{
		ID:                o.ID,
		Number:            o.Number,
		UserID:            o.UserID,
		Items:             o.Items,
		Subtotal:          o.Subtotal,
		DiscountAmount:    o.DiscountAmount,
		TaxAmount:         o.TaxAmount,
		ShippingCost:      o.ShippingCost,
		TotalAmount:       o.TotalAmount,
		Status:            string(o.Status),
		ShippingAddress:   o.ShippingAddress,
		PaymentMethod:     o.PaymentMethod,
		TrackingNumber:    o.TrackingNumber,
		EstimatedDelivery: o.EstimatedDelivery,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
}

func accountFromRow(r AccountRow) account.Account {
	return account.Account{
		ID:           r.ID,
		Email:        r.Email,
		Name:         r.Name,
		Phone:        r.Phone,
		Avatar:       r.Avatar,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt.UTC(),
		LastLoginAt:  r.LastLoginAt,
	}
}

func accountToRow(a account.Account) AccountRow {
	return AccountRow{
		ID:           a.ID,
		Email:        account.NormalizeEmail(a.Email),
		Name:         a.Name,
		Phone:        a.Phone,
		Avatar:       a.Avatar,
		PasswordHash: a.PasswordHash,
		CreatedAt:    a.CreatedAt,
		LastLoginAt:  a.LastLoginAt,
	}
}
