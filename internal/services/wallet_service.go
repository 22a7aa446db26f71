package services

import (
	"context"
	"errors"
	"time"

	"kiosk/internal/events"
	"kiosk/internal/logger"
	"kiosk/internal/models"
	"kiosk/internal/repositories"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// WalletService owns wallet lookups and top-ups. Balances only change
// through TopUp and OrderService.CreateOrder, each with a ledger row.
type WalletService struct {
	store     repositories.Store
	publisher events.Publisher
}

func NewWalletService(store repositories.Store, publisher events.Publisher) *WalletService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &WalletService{store: store, publisher: publisher}
}

// TopUpResult is the outcome of a successful top-up.
type TopUpResult struct {
	Wallet      *models.Wallet
	Transaction *models.CustomerTransaction
}

func (s *WalletService) GetAll(ctx context.Context) ([]models.Wallet, error) {
	return s.store.Wallets().GetAll(ctx)
}

func (s *WalletService) GetByID(ctx context.Context, id string) (*models.Wallet, error) {
	return s.store.Wallets().GetByID(ctx, id)
}

func (s *WalletService) GetByUserID(ctx context.Context, userID string) (*models.Wallet, error) {
	return s.store.Wallets().GetByUserID(ctx, userID)
}

// GetByOwnerName finds the wallet of the user with the given name and surname.
func (s *WalletService) GetByOwnerName(ctx context.Context, name, surname string) (*models.Wallet, error) {
	if name == "" || surname == "" {
		return nil, validationError("name and surname are required")
	}
	user, err := s.store.Users().GetByName(ctx, name, surname)
	if err != nil {
		return nil, err
	}
	return s.store.Wallets().GetByUserID(ctx, user.ID)
}

// Create opens an empty wallet for a user that has none.
func (s *WalletService) Create(ctx context.Context, userID string) (*models.Wallet, error) {
	if userID == "" {
		return nil, validationError("userId is required")
	}
	wallet := &models.Wallet{UserID: userID, Balance: decimal.Zero}
	err := s.store.WithinTransaction(ctx, func(tx repositories.Store) error {
		if _, err := tx.Users().GetByID(ctx, userID); err != nil {
			return err
		}
		_, err := tx.Wallets().GetByUserID(ctx, userID)
		if err == nil {
			return conflictError("user %s already has a wallet", userID)
		}
		if !errors.Is(err, repositories.ErrNotFound) {
			return err
		}
		return tx.Wallets().Create(ctx, wallet)
	})
	if err != nil {
		return nil, err
	}
	return wallet, nil
}

// TopUp adds amount to the wallet and appends a TopUp ledger row in the same
// transaction. There is no idempotency key; every call credits again.
func (s *WalletService) TopUp(ctx context.Context, walletID string, amount decimal.Decimal) (res *TopUpResult, err error) {
	ctx, span := tracer.Start(ctx, "WalletService.TopUp")
	defer func() { finishSpan(span, err) }()
	span.SetAttributes(attribute.String("wallet.id", walletID))

	if !amount.IsPositive() {
		return nil, validationError("amount must be greater than zero")
	}
	if !amount.Equal(amount.Round(2)) {
		return nil, validationError("amount must have at most two decimal places")
	}

	res = &TopUpResult{}
	err = s.store.WithinTransaction(ctx, func(tx repositories.Store) error {
		wallet, err := tx.Wallets().GetByIDForUpdate(ctx, walletID)
		if err != nil {
			return err
		}
		wallet.Balance = wallet.Balance.Add(amount)
		if err := tx.Wallets().UpdateBalance(ctx, wallet.ID, wallet.Balance); err != nil {
			return err
		}

		txn := &models.CustomerTransaction{
			WalletID: wallet.ID,
			Amount:   amount,
			Type:     models.TransactionTypeTopUp,
			Date:     time.Now(),
			Status:   models.TransactionStatusCompleted,
		}
		if err := tx.Transactions().Create(ctx, txn); err != nil {
			return err
		}
		res.Wallet = wallet
		res.Transaction = txn
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.WithContext(ctx).Info("wallet topped up",
		zap.String("wallet_id", walletID),
		zap.String("amount", amount.StringFixed(2)),
		zap.String("balance", res.Wallet.Balance.StringFixed(2)))
	publish(ctx, s.publisher, events.WalletToppedUp, walletID, events.WalletToppedUpPayload{
		WalletID:      walletID,
		TransactionID: res.Transaction.ID,
		Amount:        amount,
		NewBalance:    res.Wallet.Balance,
	})
	return res, nil
}

// Delete removes a wallet that has never moved money.
func (s *WalletService) Delete(ctx context.Context, id string) error {
	return s.store.WithinTransaction(ctx, func(tx repositories.Store) error {
		if _, err := tx.Wallets().GetByID(ctx, id); err != nil {
			return err
		}
		n, err := tx.Transactions().CountByWalletID(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return conflictError("wallet %s has %d ledger rows", id, n)
		}
		return tx.Wallets().Delete(ctx, id)
	})
}
