package repositories

import (
	"context"
	"fmt"

	"kiosk/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{db: db}
}

// GetPage returns one page of products ordered by name, plus the total count.
func (r *GORMProductRepository) GetPage(ctx context.Context, offset, limit int) ([]models.Product, int64, error) {
	db := r.db.WithContext(ctx)

	var total int64
	if err := db.Model(&models.Product{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	var products []models.Product
	if err := db.Order("name, id").Offset(offset).Limit(limit).Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get products: %w", err)
	}
	return products, total, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update overwrites every column of an existing product.
func (r *GORMProductRepository) Update(ctx context.Context, product *models.Product) error {
	res := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", product.ID).Select("*").Updates(product)
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	// Save would insert a missing row, so the existence check has to be explicit.
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %s not updated: %w", product.ID, ErrNotFound)
	}
	return nil
}

func (r *GORMProductRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %s not deleted: %w", id, ErrNotFound)
	}
	return nil
}

func (r *GORMProductRepository) CountByCategoryID(ctx context.Context, categoryID string) (int64, error) {
	return r.count(ctx, "category_id = ?", categoryID)
}

func (r *GORMProductRepository) CountBySupplierID(ctx context.Context, supplierID string) (int64, error) {
	return r.count(ctx, "supplier_id = ?", supplierID)
}

func (r *GORMProductRepository) count(ctx context.Context, query string, arg string) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Where(query, arg).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return n, nil
}
