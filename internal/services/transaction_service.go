package services

import (
	"context"

	"kiosk/internal/models"
	"kiosk/internal/repositories"

	"github.com/shopspring/decimal"
)

// TransactionService exposes the ledger. Rows are written only by
// WalletService.TopUp and OrderService.CreateOrder.
type TransactionService struct {
	store   repositories.Store
	wallets *WalletService
}

func NewTransactionService(store repositories.Store, wallets *WalletService) *TransactionService {
	return &TransactionService{store: store, wallets: wallets}
}

// CreateTransactionInput describes a ledger entry requested directly.
type CreateTransactionInput struct {
	WalletID string
	Amount   decimal.Decimal
	Type     string
}

func (s *TransactionService) GetAll(ctx context.Context) ([]models.CustomerTransaction, error) {
	return s.store.Transactions().GetAll(ctx)
}

func (s *TransactionService) GetByID(ctx context.Context, id string) (*models.CustomerTransaction, error) {
	return s.store.Transactions().GetByID(ctx, id)
}

// GetByWalletID lists the ledger of one wallet, newest first.
func (s *TransactionService) GetByWalletID(ctx context.Context, walletID string) ([]models.CustomerTransaction, error) {
	if _, err := s.store.Wallets().GetByID(ctx, walletID); err != nil {
		return nil, err
	}
	return s.store.Transactions().GetByWalletID(ctx, walletID)
}

// GetByUserID lists the ledger of the user's wallet, newest first.
func (s *TransactionService) GetByUserID(ctx context.Context, userID string) ([]models.CustomerTransaction, error) {
	wallet, err := s.store.Wallets().GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.store.Transactions().GetByWalletID(ctx, wallet.ID)
}

// Create accepts only TopUp entries and applies them through the wallet, so
// the balance and the ledger cannot drift apart. Order entries are created
// by settlement.
func (s *TransactionService) Create(ctx context.Context, in CreateTransactionInput) (*models.CustomerTransaction, error) {
	if in.Type != models.TransactionTypeTopUp {
		return nil, validationError("only %s transactions can be created directly", models.TransactionTypeTopUp)
	}
	res, err := s.wallets.TopUp(ctx, in.WalletID, in.Amount)
	if err != nil {
		return nil, err
	}
	return res.Transaction, nil
}
