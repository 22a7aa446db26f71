package repositories

import (
	"context"

	"kiosk/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetPage(ctx context.Context, offset, limit int) ([]models.Product, int64, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
	CountByCategoryID(ctx context.Context, categoryID string) (int64, error)
	CountBySupplierID(ctx context.Context, supplierID string) (int64, error)
}
