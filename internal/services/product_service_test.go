package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"kiosk/internal/models"
	"kiosk/internal/repositories"
	"kiosk/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// memoryCache is an in-process cache.Cache for tests.
type memoryCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string]string{}}
}

func (c *memoryCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *memoryCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func validProductInput() services.ProductInput {
	return services.ProductInput{
		CategoryID:  "cat-1",
		Name:        "Chips",
		Description: "Salted potato chips",
		Price:       money("1.99"),
		Quantity:    5,
	}
}

func TestProductService_GetProducts_Paging(t *testing.T) {
	store := newMockStore()
	service := services.NewProductService(store, nil, time.Minute)
	ctx := context.Background()

	tests := []struct {
		name               string
		page, size         int
		wantOffset, wantSz int
	}{
		{"defaults", 0, 0, 0, services.DefaultPageSize},
		{"third page", 3, 20, 40, 20},
		{"size capped", 1, 1000, 0, services.MaxPageSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store.products.On("GetPage", ctx, tt.wantOffset, tt.wantSz).
				Return([]models.Product{{ID: "1"}}, int64(41), nil).Once()

			page, err := service.GetProducts(ctx, tt.page, tt.size)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSz, page.Size)
			assert.Equal(t, int64(41), page.Total)
		})
	}
	store.products.AssertExpectations(t)
}

func TestProductService_GetProductByID_UsesCache(t *testing.T) {
	store := newMockStore()
	service := services.NewProductService(store, newMemoryCache(), time.Minute)
	ctx := context.Background()

	expected := &models.Product{ID: "1", Name: "Product A", Price: money("10.00"), Quantity: 100}
	store.products.On("GetByID", ctx, "1").Return(expected, nil).Once()

	first, err := service.GetProductByID(ctx, "1")
	require.NoError(t, err)
	second, err := service.GetProductByID(ctx, "1")
	require.NoError(t, err)

	assert.Equal(t, expected.Name, second.Name)
	assert.True(t, first.Price.Equal(second.Price))
	store.products.AssertExpectations(t)

	store.products.On("GetByID", ctx, "99").Return(nil, repositories.ErrNotFound).Once()
	_, err = service.GetProductByID(ctx, "99")
	assert.True(t, errors.Is(err, services.ErrNotFound))
}

func TestProductService_CreateProduct(t *testing.T) {
	store := newMockStore()
	service := services.NewProductService(store, nil, time.Minute)
	ctx := context.Background()

	store.categories.On("GetByID", ctx, "cat-1").Return(&models.Category{ID: "cat-1"}, nil).Once()
	store.products.On("Create", ctx, mock.MatchedBy(func(p *models.Product) bool {
		return p.IsAvailable && p.Name == "Chips" && !p.LastUpdated.IsZero()
	})).Return(nil).Once()

	_, err := service.CreateProduct(ctx, validProductInput())
	require.NoError(t, err)
	store.products.AssertExpectations(t)

	store.categories.On("GetByID", ctx, "cat-x").Return(nil, repositories.ErrNotFound).Once()
	in := validProductInput()
	in.CategoryID = "cat-x"
	_, err = service.CreateProduct(ctx, in)
	assert.True(t, errors.Is(err, services.ErrValidation))
}

func TestProductService_CreateProduct_Validation(t *testing.T) {
	service := services.NewProductService(newMockStore(), nil, time.Minute)

	long := make([]byte, 101)
	for i := range long {
		long[i] = 'a'
	}

	tests := []struct {
		name   string
		mutate func(*services.ProductInput)
	}{
		{"empty name", func(in *services.ProductInput) { in.Name = " " }},
		{"long name", func(in *services.ProductInput) { in.Name = string(long) }},
		{"empty description", func(in *services.ProductInput) { in.Description = "" }},
		{"zero price", func(in *services.ProductInput) { in.Price = money("0") }},
		{"negative price", func(in *services.ProductInput) { in.Price = money("-1") }},
		{"sub-cent price", func(in *services.ProductInput) { in.Price = money("3.333") }},
		{"negative quantity", func(in *services.ProductInput) { in.Quantity = -1 }},
		{"no category", func(in *services.ProductInput) { in.CategoryID = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validProductInput()
			tt.mutate(&in)
			_, err := service.CreateProduct(context.Background(), in)
			assert.True(t, errors.Is(err, services.ErrValidation))
		})
	}
}

func TestProductService_UpdateProduct(t *testing.T) {
	store := newMockStore()
	c := newMemoryCache()
	service := services.NewProductService(store, c, time.Minute)
	ctx := context.Background()

	in := validProductInput()
	in.ID = "other"
	_, err := service.UpdateProduct(ctx, "1", in)
	assert.True(t, errors.Is(err, services.ErrConflict))

	require.NoError(t, c.Set(ctx, "kiosk:product:1", `{"productId":"1"}`, time.Minute))
	store.products.On("GetByID", ctx, "1").Return(&models.Product{ID: "1", IsAvailable: true}, nil).Once()
	store.categories.On("GetByID", ctx, "cat-1").Return(&models.Category{ID: "cat-1"}, nil).Once()
	store.products.On("Update", ctx, mock.MatchedBy(func(p *models.Product) bool {
		return p.ID == "1" && !p.IsAvailable
	})).Return(nil).Once()

	in = validProductInput()
	in.Quantity = 0
	updated, err := service.UpdateProduct(ctx, "1", in)
	require.NoError(t, err)
	assert.False(t, updated.IsAvailable)

	_, cached, _ := c.Get(ctx, "kiosk:product:1")
	assert.False(t, cached)
	store.products.AssertExpectations(t)
}

func TestProductService_DeleteProduct(t *testing.T) {
	store := newMockStore()
	service := services.NewProductService(store, nil, time.Minute)
	ctx := context.Background()

	store.products.On("GetByID", ctx, "1").Return(&models.Product{ID: "1"}, nil).Twice()
	store.orderItems.On("CountByProductID", ctx, "1").Return(int64(2), nil).Once()
	err := service.DeleteProduct(ctx, "1")
	assert.True(t, errors.Is(err, services.ErrConflict))

	store.orderItems.On("CountByProductID", ctx, "1").Return(int64(0), nil).Once()
	store.products.On("Delete", ctx, "1").Return(nil).Once()
	assert.NoError(t, service.DeleteProduct(ctx, "1"))

	store.products.AssertExpectations(t)
	store.orderItems.AssertExpectations(t)
}
