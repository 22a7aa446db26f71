package services

import (
	"context"

	"kiosk/internal/models"
	"kiosk/internal/repositories"
)

// SupplierService manages suppliers.
type SupplierService struct {
	store repositories.Store
}

func NewSupplierService(store repositories.Store) *SupplierService {
	return &SupplierService{store: store}
}

func (s *SupplierService) GetAll(ctx context.Context) ([]models.Supplier, error) {
	return s.store.Suppliers().GetAll(ctx)
}

func (s *SupplierService) GetByID(ctx context.Context, id string) (*models.Supplier, error) {
	return s.store.Suppliers().GetByID(ctx, id)
}

func (s *SupplierService) Create(ctx context.Context, in models.Supplier) (*models.Supplier, error) {
	supplier := &models.Supplier{Name: in.Name, Surname: in.Surname, Email: in.Email}
	if err := s.store.Suppliers().Create(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func (s *SupplierService) Update(ctx context.Context, id string, in models.Supplier) (*models.Supplier, error) {
	if in.ID != "" && in.ID != id {
		return nil, conflictError("supplier id %s does not match path id %s", in.ID, id)
	}
	supplier := &models.Supplier{ID: id, Name: in.Name, Surname: in.Surname, Email: in.Email}
	if err := s.store.Suppliers().Update(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// Delete removes a supplier no product refers to.
func (s *SupplierService) Delete(ctx context.Context, id string) error {
	if _, err := s.store.Suppliers().GetByID(ctx, id); err != nil {
		return err
	}
	n, err := s.store.Products().CountBySupplierID(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return conflictError("supplier %s still supplies %d products", id, n)
	}
	return s.store.Suppliers().Delete(ctx, id)
}
