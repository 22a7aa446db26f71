package repositories

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is wrapped by every repository lookup that matches no row.
var ErrNotFound = errors.New("not found")

// Store hands out repositories bound to a single database handle. The Store
// passed to a WithinTransaction callback is bound to that transaction, so
// every repository obtained from it reads and writes inside it.
type Store interface {
	Users() UserRepository
	Wallets() WalletRepository
	Transactions() TransactionRepository
	Orders() OrderRepository
	OrderItems() OrderItemRepository
	Products() ProductRepository
	Categories() CategoryRepository
	Suppliers() SupplierRepository

	// WithinTransaction runs fn in one serializable transaction. It commits
	// when fn returns nil and rolls back otherwise.
	WithinTransaction(ctx context.Context, fn func(tx Store) error) error
}

// GORMStore is the gorm implementation of Store.
type GORMStore struct {
	db *gorm.DB
}

// NewGORMStore creates a Store over db.
func NewGORMStore(db *gorm.DB) *GORMStore {
	return &GORMStore{db: db}
}

func (s *GORMStore) Users() UserRepository               { return NewGORMUserRepository(s.db) }
func (s *GORMStore) Wallets() WalletRepository           { return NewGORMWalletRepository(s.db) }
func (s *GORMStore) Transactions() TransactionRepository { return NewGORMTransactionRepository(s.db) }
func (s *GORMStore) Orders() OrderRepository             { return NewGORMOrderRepository(s.db) }
func (s *GORMStore) OrderItems() OrderItemRepository     { return NewGORMOrderItemRepository(s.db) }
func (s *GORMStore) Products() ProductRepository         { return NewGORMProductRepository(s.db) }
func (s *GORMStore) Categories() CategoryRepository      { return NewGORMCategoryRepository(s.db) }
func (s *GORMStore) Suppliers() SupplierRepository       { return NewGORMSupplierRepository(s.db) }

// WithinTransaction runs fn inside a serializable gorm transaction.
func (s *GORMStore) WithinTransaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GORMStore{db: tx})
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})
}

func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
