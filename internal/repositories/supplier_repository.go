package repositories

import (
	"context"
	"fmt"

	"kiosk/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SupplierRepository defines the interface for supplier data access.
type SupplierRepository interface {
	GetAll(ctx context.Context) ([]models.Supplier, error)
	GetByID(ctx context.Context, id string) (*models.Supplier, error)
	Create(ctx context.Context, supplier *models.Supplier) error
	Update(ctx context.Context, supplier *models.Supplier) error
	Delete(ctx context.Context, id string) error
}

// GORMSupplierRepository is a GORM implementation of SupplierRepository.
type GORMSupplierRepository struct {
	db *gorm.DB
}

func NewGORMSupplierRepository(db *gorm.DB) *GORMSupplierRepository {
	return &GORMSupplierRepository{db: db}
}

func (r *GORMSupplierRepository) GetAll(ctx context.Context) ([]models.Supplier, error) {
	var suppliers []models.Supplier
	if err := r.db.WithContext(ctx).Order("surname, name").Find(&suppliers).Error; err != nil {
		return nil, fmt.Errorf("failed to get all suppliers: %w", err)
	}
	return suppliers, nil
}

func (r *GORMSupplierRepository) GetByID(ctx context.Context, id string) (*models.Supplier, error) {
	var supplier models.Supplier
	if err := r.db.WithContext(ctx).First(&supplier, "id = ?", id).Error; err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("supplier with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get supplier by ID %s: %w", id, err)
	}
	return &supplier, nil
}

func (r *GORMSupplierRepository) Create(ctx context.Context, supplier *models.Supplier) error {
	if supplier.ID == "" {
		supplier.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(supplier).Error; err != nil {
		return fmt.Errorf("failed to create supplier: %w", err)
	}
	return nil
}

func (r *GORMSupplierRepository) Update(ctx context.Context, supplier *models.Supplier) error {
	res := r.db.WithContext(ctx).Model(&models.Supplier{}).Where("id = ?", supplier.ID).Updates(map[string]any{
		"name":    supplier.Name,
		"surname": supplier.Surname,
		"email":   supplier.Email,
	})
	if res.Error != nil {
		return fmt.Errorf("failed to update supplier: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("supplier with ID %s not updated: %w", supplier.ID, ErrNotFound)
	}
	return nil
}

func (r *GORMSupplierRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Supplier{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete supplier: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("supplier with ID %s not deleted: %w", id, ErrNotFound)
	}
	return nil
}
