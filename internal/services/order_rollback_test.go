package services_test

import (
	"context"
	"errors"
	"testing"

	"kiosk/internal/models"
	"kiosk/internal/repositories"
	"kiosk/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errInjected = errors.New("injected failure")

// faultyStore wraps a Store and hands out failing repositories for the steps
// that run after the wallet has been debited.
type faultyStore struct {
	repositories.Store
	failLedger bool
	failLink   bool
}

func (s faultyStore) Transactions() repositories.TransactionRepository {
	if s.failLedger {
		return failingLedger{s.Store.Transactions()}
	}
	return s.Store.Transactions()
}

func (s faultyStore) Orders() repositories.OrderRepository {
	if s.failLink {
		return failingLink{s.Store.Orders()}
	}
	return s.Store.Orders()
}

func (s faultyStore) WithinTransaction(ctx context.Context, fn func(tx repositories.Store) error) error {
	return s.Store.WithinTransaction(ctx, func(tx repositories.Store) error {
		return fn(faultyStore{Store: tx, failLedger: s.failLedger, failLink: s.failLink})
	})
}

type failingLedger struct{ repositories.TransactionRepository }

func (failingLedger) Create(context.Context, *models.CustomerTransaction) error {
	return errInjected
}

type failingLink struct{ repositories.OrderRepository }

func (failingLink) LinkTransaction(context.Context, string, string) error {
	return errInjected
}

func TestCreateOrder_LateFailureRollsBackEverything(t *testing.T) {
	tests := []struct {
		name  string
		store func(repositories.Store) repositories.Store
	}{
		{"ledger row insert fails", func(s repositories.Store) repositories.Store {
			return faultyStore{Store: s, failLedger: true}
		}},
		{"transaction link fails", func(s repositories.Store) repositories.Store {
			return faultyStore{Store: s, failLink: true}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, db := newTestStore(t)
			pub := &recordingPublisher{}
			svc := services.NewOrderService(tt.store(store), pub)

			user, wallet := seedUser(t, store, "100.00")
			chips := seedProduct(t, store, "Chips", "10.00")

			_, err := svc.CreateOrder(context.Background(), services.OrderInput{
				UserID:      user.ID,
				TotalAmount: money("30.00"),
				Items:       []services.OrderItemInput{{ProductID: chips.ID, Quantity: 3}},
			})
			require.ErrorIs(t, err, errInjected)

			assert.True(t, balanceOf(t, store, wallet.ID).Equal(money("100.00")))
			assert.Zero(t, countRows(t, db, &models.Order{}))
			assert.Zero(t, countRows(t, db, &models.OrderItem{}))
			assert.Zero(t, countRows(t, db, &models.CustomerTransaction{}))
			assert.Empty(t, pub.types())
		})
	}
}
