package services_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"kiosk/internal/config"
	"kiosk/internal/database"
	"kiosk/internal/events"
	"kiosk/internal/models"
	"kiosk/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestStore returns a Store over a fresh in-memory SQLite database.
func newTestStore(t *testing.T) (*repositories.GORMStore, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.Open(config.DatabaseConfig{Driver: "sqlite", DSN: dsn})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return repositories.NewGORMStore(db), db
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// seedUser creates a user and a wallet holding balance.
func seedUser(t *testing.T, store repositories.Store, balance string) (*models.User, *models.Wallet) {
	t.Helper()
	ctx := context.Background()
	user := &models.User{
		UserName: "kiosk-user",
		Name:     "Ana",
		Surname:  uuid.NewString()[:8],
		Email:    uuid.NewString() + "@singular.com",
		Password: "x",
		RoleID:   models.RoleUser,
		IsActive: true,
	}
	require.NoError(t, store.Users().Create(ctx, user))
	wallet := &models.Wallet{UserID: user.ID, Balance: money(balance)}
	require.NoError(t, store.Wallets().Create(ctx, wallet))
	return user, wallet
}

func seedProduct(t *testing.T, store repositories.Store, name, price string) *models.Product {
	t.Helper()
	ctx := context.Background()
	category := &models.Category{Name: "Snacks"}
	require.NoError(t, store.Categories().Create(ctx, category))
	product := &models.Product{
		CategoryID:  category.ID,
		Name:        name,
		Description: name + " description",
		Price:       money(price),
		Quantity:    10,
		IsAvailable: true,
	}
	require.NoError(t, store.Products().Create(ctx, product))
	return product
}

func balanceOf(t *testing.T, store repositories.Store, walletID string) decimal.Decimal {
	t.Helper()
	w, err := store.Wallets().GetByID(context.Background(), walletID)
	require.NoError(t, err)
	return w.Balance
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

// recordingPublisher keeps every published envelope and can be told to fail.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Envelope
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, env events.Envelope) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, env)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType)
	}
	return out
}
