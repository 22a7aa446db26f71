package repositories

import (
	"context"

	"kiosk/internal/models"
)

// OrderRepository defines the interface for order data access. Orders are
// always returned with their items.
type OrderRepository interface {
	GetAll(ctx context.Context) ([]models.Order, error)
	GetByID(ctx context.Context, id string) (*models.Order, error)
	Create(ctx context.Context, order *models.Order) error
	Update(ctx context.Context, order *models.Order) error
	ReplaceItems(ctx context.Context, orderID string, items []models.OrderItem) error
	LinkTransaction(ctx context.Context, orderID, transactionID string) error
	Delete(ctx context.Context, id string) error
	CountByUserID(ctx context.Context, userID string) (int64, error)
}
