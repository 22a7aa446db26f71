package repositories

import (
	"context"
	"fmt"
	"time"

	"kiosk/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMWalletRepository is a GORM implementation of WalletRepository.
type GORMWalletRepository struct {
	db *gorm.DB
}

// NewGORMWalletRepository creates a new instance of GORMWalletRepository.
func NewGORMWalletRepository(db *gorm.DB) *GORMWalletRepository {
	return &GORMWalletRepository{db: db}
}

func (r *GORMWalletRepository) Create(ctx context.Context, wallet *models.Wallet) error {
	if wallet.ID == "" {
		wallet.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(wallet).Error; err != nil {
		return fmt.Errorf("failed to create wallet: %w", err)
	}
	return nil
}

func (r *GORMWalletRepository) GetAll(ctx context.Context) ([]models.Wallet, error) {
	var wallets []models.Wallet
	if err := r.db.WithContext(ctx).Order("created_at").Find(&wallets).Error; err != nil {
		return nil, fmt.Errorf("failed to get all wallets: %w", err)
	}
	return wallets, nil
}

func (r *GORMWalletRepository) GetByID(ctx context.Context, id string) (*models.Wallet, error) {
	return r.first(r.db.WithContext(ctx), "id = ?", id, "wallet with ID "+id)
}

func (r *GORMWalletRepository) GetByUserID(ctx context.Context, userID string) (*models.Wallet, error) {
	return r.first(r.db.WithContext(ctx), "user_id = ?", userID, "wallet for user "+userID)
}

func (r *GORMWalletRepository) GetByIDForUpdate(ctx context.Context, id string) (*models.Wallet, error) {
	return r.first(r.locking(ctx), "id = ?", id, "wallet with ID "+id)
}

func (r *GORMWalletRepository) GetByUserIDForUpdate(ctx context.Context, userID string) (*models.Wallet, error) {
	return r.first(r.locking(ctx), "user_id = ?", userID, "wallet for user "+userID)
}

// UpdateBalance overwrites the stored balance of one wallet.
func (r *GORMWalletRepository) UpdateBalance(ctx context.Context, id string, balance decimal.Decimal) error {
	res := r.db.WithContext(ctx).Model(&models.Wallet{}).Where("id = ?", id).Updates(map[string]any{
		"balance":    balance,
		"updated_at": time.Now(),
	})
	if res.Error != nil {
		return fmt.Errorf("failed to update wallet balance: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("wallet with ID %s not updated: %w", id, ErrNotFound)
	}
	return nil
}

func (r *GORMWalletRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Wallet{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete wallet: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("wallet with ID %s not deleted: %w", id, ErrNotFound)
	}
	return nil
}

// locking adds SELECT ... FOR UPDATE. The sqlite dialector drops the clause.
func (r *GORMWalletRepository) locking(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"})
}

func (r *GORMWalletRepository) first(db *gorm.DB, query string, arg string, what string) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := db.First(&wallet, query, arg).Error; err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("%s: %w", what, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get %s: %w", what, err)
	}
	return &wallet, nil
}
