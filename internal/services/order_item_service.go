package services

import (
	"context"

	"kiosk/internal/models"
	"kiosk/internal/repositories"
)

// OrderItemService gives read and delete access to single order lines.
// Lines are created only as part of an order.
type OrderItemService struct {
	store repositories.Store
}

func NewOrderItemService(store repositories.Store) *OrderItemService {
	return &OrderItemService{store: store}
}

func (s *OrderItemService) GetAll(ctx context.Context) ([]models.OrderItem, error) {
	return s.store.OrderItems().GetAll(ctx)
}

func (s *OrderItemService) GetByID(ctx context.Context, id string) (*models.OrderItem, error) {
	return s.store.OrderItems().GetByID(ctx, id)
}

// Delete removes one line. The order total is left as settled.
func (s *OrderItemService) Delete(ctx context.Context, id string) error {
	return s.store.OrderItems().Delete(ctx, id)
}
