package repositories

import (
	"context"

	"kiosk/internal/models"

	"github.com/shopspring/decimal"
)

// WalletRepository defines the interface for wallet data access.
// The ForUpdate variants lock the row until the surrounding transaction ends
// on engines that support row locks.
type WalletRepository interface {
	Create(ctx context.Context, wallet *models.Wallet) error
	GetAll(ctx context.Context) ([]models.Wallet, error)
	GetByID(ctx context.Context, id string) (*models.Wallet, error)
	GetByUserID(ctx context.Context, userID string) (*models.Wallet, error)
	GetByIDForUpdate(ctx context.Context, id string) (*models.Wallet, error)
	GetByUserIDForUpdate(ctx context.Context, userID string) (*models.Wallet, error)
	UpdateBalance(ctx context.Context, id string, balance decimal.Decimal) error
	Delete(ctx context.Context, id string) error
}
