package repositories

import (
	"context"
	"fmt"

	"kiosk/internal/models"

	"gorm.io/gorm"
)

// OrderItemRepository gives direct access to order lines.
type OrderItemRepository interface {
	GetAll(ctx context.Context) ([]models.OrderItem, error)
	GetByID(ctx context.Context, id string) (*models.OrderItem, error)
	Delete(ctx context.Context, id string) error
	CountByProductID(ctx context.Context, productID string) (int64, error)
}

// GORMOrderItemRepository is a GORM implementation of OrderItemRepository.
type GORMOrderItemRepository struct {
	db *gorm.DB
}

func NewGORMOrderItemRepository(db *gorm.DB) *GORMOrderItemRepository {
	return &GORMOrderItemRepository{db: db}
}

func (r *GORMOrderItemRepository) GetAll(ctx context.Context) ([]models.OrderItem, error) {
	var items []models.OrderItem
	if err := r.db.WithContext(ctx).Order("order_id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to get all order items: %w", err)
	}
	return items, nil
}

func (r *GORMOrderItemRepository) GetByID(ctx context.Context, id string) (*models.OrderItem, error) {
	var item models.OrderItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("order item with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order item by ID %s: %w", id, err)
	}
	return &item, nil
}

func (r *GORMOrderItemRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.OrderItem{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete order item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order item with ID %s not deleted: %w", id, ErrNotFound)
	}
	return nil
}

func (r *GORMOrderItemRepository) CountByProductID(ctx context.Context, productID string) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.OrderItem{}).Where("product_id = ?", productID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count order items for product %s: %w", productID, err)
	}
	return n, nil
}
