package repositories

import (
	"context"
	"fmt"

	"kiosk/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{db: db}
}

// GetAll returns all orders, newest first.
func (r *GORMOrderRepository) GetAll(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.WithContext(ctx).Preload("Items").Order("order_date DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get all orders: %w", err)
	}
	return orders, nil
}

func (r *GORMOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("order with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	return &order, nil
}

// Create inserts the order and its items.
func (r *GORMOrderRepository) Create(ctx context.Context, order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	assignItemIDs(order.ID, order.Items)
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// Update saves the order header. Items and the ledger link are untouched.
func (r *GORMOrderRepository) Update(ctx context.Context, order *models.Order) error {
	res := r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", order.ID).Updates(map[string]any{
		"user_id":      order.UserID,
		"total_amount": order.TotalAmount,
		"status":       order.Status,
	})
	if res.Error != nil {
		return fmt.Errorf("failed to update order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order with ID %s not updated: %w", order.ID, ErrNotFound)
	}
	return nil
}

// ReplaceItems deletes every item of the order and inserts items instead.
func (r *GORMOrderRepository) ReplaceItems(ctx context.Context, orderID string, items []models.OrderItem) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error; err != nil {
		return fmt.Errorf("failed to remove items of order %s: %w", orderID, err)
	}
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].ID = ""
	}
	assignItemIDs(orderID, items)
	if err := db.Create(&items).Error; err != nil {
		return fmt.Errorf("failed to insert items of order %s: %w", orderID, err)
	}
	return nil
}

func (r *GORMOrderRepository) LinkTransaction(ctx context.Context, orderID, transactionID string) error {
	res := r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", orderID).
		Update("customer_transaction_id", transactionID)
	if res.Error != nil {
		return fmt.Errorf("failed to link transaction to order %s: %w", orderID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order with ID %s not linked: %w", orderID, ErrNotFound)
	}
	return nil
}

// Delete removes the order and its items. Ledger rows are left alone.
func (r *GORMOrderRepository) Delete(ctx context.Context, id string) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
		return fmt.Errorf("failed to delete items of order %s: %w", id, err)
	}
	res := db.Delete(&models.Order{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order with ID %s not deleted: %w", id, ErrNotFound)
	}
	return nil
}

func (r *GORMOrderRepository) CountByUserID(ctx context.Context, userID string) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Order{}).Where("user_id = ?", userID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count orders for user %s: %w", userID, err)
	}
	return n, nil
}

func assignItemIDs(orderID string, items []models.OrderItem) {
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = uuid.New().String()
		}
		items[i].OrderID = orderID
	}
}
