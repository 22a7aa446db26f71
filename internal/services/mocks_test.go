package services_test

import (
	"context"

	"kiosk/internal/models"
	"kiosk/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockStore hands out the mock repositories it holds. WithinTransaction runs
// the callback against the same mocks.
type MockStore struct {
	users      *MockUserRepository
	wallets    *MockWalletRepository
	products   *MockProductRepository
	categories *MockCategoryRepository
	orderItems *MockOrderItemRepository
}

func newMockStore() *MockStore {
	return &MockStore{
		users:      new(MockUserRepository),
		wallets:    new(MockWalletRepository),
		products:   new(MockProductRepository),
		categories: new(MockCategoryRepository),
		orderItems: new(MockOrderItemRepository),
	}
}

func (m *MockStore) Users() repositories.UserRepository               { return m.users }
func (m *MockStore) Wallets() repositories.WalletRepository           { return m.wallets }
func (m *MockStore) Transactions() repositories.TransactionRepository { return nil }
func (m *MockStore) Orders() repositories.OrderRepository             { return nil }
func (m *MockStore) OrderItems() repositories.OrderItemRepository     { return m.orderItems }
func (m *MockStore) Products() repositories.ProductRepository         { return m.products }
func (m *MockStore) Categories() repositories.CategoryRepository      { return m.categories }
func (m *MockStore) Suppliers() repositories.SupplierRepository       { return nil }

func (m *MockStore) WithinTransaction(ctx context.Context, fn func(tx repositories.Store) error) error {
	return fn(m)
}

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByName(ctx context.Context, name, surname string) (*models.User, error) {
	args := m.Called(ctx, name, surname)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockWalletRepository is a mock implementation of repositories.WalletRepository
type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) Create(ctx context.Context, wallet *models.Wallet) error {
	args := m.Called(ctx, wallet)
	return args.Error(0)
}

func (m *MockWalletRepository) GetAll(ctx context.Context) ([]models.Wallet, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Wallet), args.Error(1)
}

func (m *MockWalletRepository) wallet(args mock.Arguments) (*models.Wallet, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Wallet), args.Error(1)
}

func (m *MockWalletRepository) GetByID(ctx context.Context, id string) (*models.Wallet, error) {
	return m.wallet(m.Called(ctx, id))
}

func (m *MockWalletRepository) GetByUserID(ctx context.Context, userID string) (*models.Wallet, error) {
	return m.wallet(m.Called(ctx, userID))
}

func (m *MockWalletRepository) GetByIDForUpdate(ctx context.Context, id string) (*models.Wallet, error) {
	return m.wallet(m.Called(ctx, id))
}

func (m *MockWalletRepository) GetByUserIDForUpdate(ctx context.Context, userID string) (*models.Wallet, error) {
	return m.wallet(m.Called(ctx, userID))
}

func (m *MockWalletRepository) UpdateBalance(ctx context.Context, id string, balance decimal.Decimal) error {
	args := m.Called(ctx, id, balance)
	return args.Error(0)
}

func (m *MockWalletRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetPage(ctx context.Context, offset, limit int) ([]models.Product, int64, error) {
	args := m.Called(ctx, offset, limit)
	return args.Get(0).([]models.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) CountByCategoryID(ctx context.Context, categoryID string) (int64, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) CountBySupplierID(ctx context.Context, supplierID string) (int64, error) {
	args := m.Called(ctx, supplierID)
	return args.Get(0).(int64), args.Error(1)
}

// MockCategoryRepository is a mock implementation of repositories.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *models.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockOrderItemRepository is a mock implementation of repositories.OrderItemRepository
type MockOrderItemRepository struct {
	mock.Mock
}

func (m *MockOrderItemRepository) GetAll(ctx context.Context) ([]models.OrderItem, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.OrderItem), args.Error(1)
}

func (m *MockOrderItemRepository) GetByID(ctx context.Context, id string) (*models.OrderItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OrderItem), args.Error(1)
}

func (m *MockOrderItemRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockOrderItemRepository) CountByProductID(ctx context.Context, productID string) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}
