package repositories

import (
	"context"
	"fmt"

	"kiosk/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMTransactionRepository is a GORM implementation of TransactionRepository.
type GORMTransactionRepository struct {
	db *gorm.DB
}

// NewGORMTransactionRepository creates a new instance of GORMTransactionRepository.
func NewGORMTransactionRepository(db *gorm.DB) *GORMTransactionRepository {
	return &GORMTransactionRepository{db: db}
}

func (r *GORMTransactionRepository) Create(ctx context.Context, txn *models.CustomerTransaction) error {
	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(txn).Error; err != nil {
		return fmt.Errorf("failed to record transaction: %w", err)
	}
	return nil
}

func (r *GORMTransactionRepository) GetAll(ctx context.Context) ([]models.CustomerTransaction, error) {
	var txns []models.CustomerTransaction
	if err := r.db.WithContext(ctx).Order("date DESC").Find(&txns).Error; err != nil {
		return nil, fmt.Errorf("failed to get all transactions: %w", err)
	}
	return txns, nil
}

func (r *GORMTransactionRepository) GetByID(ctx context.Context, id string) (*models.CustomerTransaction, error) {
	var txn models.CustomerTransaction
	if err := r.db.WithContext(ctx).First(&txn, "id = ?", id).Error; err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("transaction with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get transaction by ID %s: %w", id, err)
	}
	return &txn, nil
}

// GetByWalletID returns the wallet's ledger, newest first.
func (r *GORMTransactionRepository) GetByWalletID(ctx context.Context, walletID string) ([]models.CustomerTransaction, error) {
	var txns []models.CustomerTransaction
	if err := r.db.WithContext(ctx).Where("wallet_id = ?", walletID).Order("date DESC").Find(&txns).Error; err != nil {
		return nil, fmt.Errorf("failed to get transactions for wallet %s: %w", walletID, err)
	}
	return txns, nil
}

func (r *GORMTransactionRepository) CountByWalletID(ctx context.Context, walletID string) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.CustomerTransaction{}).Where("wallet_id = ?", walletID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count transactions for wallet %s: %w", walletID, err)
	}
	return n, nil
}
