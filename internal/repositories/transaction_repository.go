package repositories

import (
	"context"

	"kiosk/internal/models"
)

// TransactionRepository defines the interface for ledger access. There is no
// update or delete: ledger rows are append-only.
type TransactionRepository interface {
	Create(ctx context.Context, txn *models.CustomerTransaction) error
	GetAll(ctx context.Context) ([]models.CustomerTransaction, error)
	GetByID(ctx context.Context, id string) (*models.CustomerTransaction, error)
	GetByWalletID(ctx context.Context, walletID string) ([]models.CustomerTransaction, error)
	CountByWalletID(ctx context.Context, walletID string) (int64, error)
}
