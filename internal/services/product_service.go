package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"kiosk/internal/cache"
	"kiosk/internal/logger"
	"kiosk/internal/models"
	"kiosk/internal/repositories"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Paging limits for product listings.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ProductService handles business logic related to products.
type ProductService struct {
	store    repositories.Store
	cache    cache.Cache
	cacheTTL time.Duration
}

// NewProductService creates a new ProductService. Single products are cached
// for cacheTTL; pass cache.Nop{} to disable caching.
func NewProductService(store repositories.Store, c cache.Cache, cacheTTL time.Duration) *ProductService {
	if c == nil {
		c = cache.Nop{}
	}
	return &ProductService{store: store, cache: c, cacheTTL: cacheTTL}
}

// ProductInput holds the writable fields of a product.
type ProductInput struct {
	ID          string
	CategoryID  string
	SupplierID  *string
	Name        string
	Description string
	Price       decimal.Decimal
	Quantity    int
	ImageURL    string
}

// ProductPage is one page of a product listing.
type ProductPage struct {
	Items []models.Product `json:"items"`
	Page  int              `json:"page"`
	Size  int              `json:"size"`
	Total int64            `json:"total"`
}

// GetProducts returns one page of products. Out-of-range paging values fall
// back to the defaults and size is capped at MaxPageSize.
func (s *ProductService) GetProducts(ctx context.Context, page, size int) (*ProductPage, error) {
	if page < 1 {
		page = DefaultPage
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	items, total, err := s.store.Products().GetPage(ctx, (page-1)*size, size)
	if err != nil {
		return nil, err
	}
	return &ProductPage{Items: items, Page: page, Size: size, Total: total}, nil
}

// GetProductByID retrieves a single product, from the cache when possible.
func (s *ProductService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	key := cache.Key("product", id)
	log := logger.WithContext(ctx)

	if raw, ok, err := s.cache.Get(ctx, key); err != nil {
		log.Warn("product cache read failed", zap.String("key", key), zap.Error(err))
	} else if ok {
		var p models.Product
		if err := json.Unmarshal([]byte(raw), &p); err == nil {
			return &p, nil
		}
		log.Warn("discarding undecodable cache entry", zap.String("key", key))
	}

	product, err := s.store.Products().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(product); err == nil {
		if err := s.cache.Set(ctx, key, string(raw), s.cacheTTL); err != nil {
			log.Warn("product cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return product, nil
}

// CreateProduct validates and stores a new product.
func (s *ProductService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	if err := validateProduct(in); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, in); err != nil {
		return nil, err
	}
	product := &models.Product{}
	applyProductInput(product, in)
	if err := s.store.Products().Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct overwrites an existing product and evicts its cache entry.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, in ProductInput) (*models.Product, error) {
	if in.ID != "" && in.ID != id {
		return nil, conflictError("product id %s does not match path id %s", in.ID, id)
	}
	if err := validateProduct(in); err != nil {
		return nil, err
	}
	product, err := s.store.Products().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, in); err != nil {
		return nil, err
	}
	applyProductInput(product, in)
	if err := s.store.Products().Update(ctx, product); err != nil {
		return nil, err
	}
	s.evict(ctx, id)
	return product, nil
}

// DeleteProduct deletes a product that no order line refers to.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	if _, err := s.store.Products().GetByID(ctx, id); err != nil {
		return err
	}
	n, err := s.store.OrderItems().CountByProductID(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return conflictError("product %s is referenced by %d order items", id, n)
	}
	if err := s.store.Products().Delete(ctx, id); err != nil {
		return err
	}
	s.evict(ctx, id)
	return nil
}

func (s *ProductService) evict(ctx context.Context, id string) {
	key := cache.Key("product", id)
	if err := s.cache.Delete(ctx, key); err != nil {
		logger.WithContext(ctx).Warn("product cache eviction failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *ProductService) checkReferences(ctx context.Context, in ProductInput) error {
	if _, err := s.store.Categories().GetByID(ctx, in.CategoryID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return validationError("category %s does not exist", in.CategoryID)
		}
		return err
	}
	if in.SupplierID != nil && *in.SupplierID != "" {
		if _, err := s.store.Suppliers().GetByID(ctx, *in.SupplierID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return validationError("supplier %s does not exist", *in.SupplierID)
			}
			return err
		}
	}
	return nil
}

func validateProduct(in ProductInput) error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return validationError("productName is required")
	case utf8.RuneCountInString(in.Name) > 100:
		return validationError("productName must be at most 100 characters")
	case strings.TrimSpace(in.Description) == "":
		return validationError("description is required")
	case utf8.RuneCountInString(in.Description) > 500:
		return validationError("description must be at most 500 characters")
	case !in.Price.IsPositive():
		return validationError("price must be greater than zero")
	case !in.Price.Equal(in.Price.Round(2)):
		return validationError("price must have at most two decimal places")
	case in.Quantity < 0:
		return validationError("quantity must not be negative")
	case in.CategoryID == "":
		return validationError("categoryId is required")
	}
	return nil
}

// applyProductInput copies in onto p. Availability follows the quantity.
func applyProductInput(p *models.Product, in ProductInput) {
	p.CategoryID = in.CategoryID
	p.SupplierID = in.SupplierID
	if p.SupplierID != nil && *p.SupplierID == "" {
		p.SupplierID = nil
	}
	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price
	p.Quantity = in.Quantity
	p.IsAvailable = in.Quantity > 0
	p.ImageURL = in.ImageURL
	p.LastUpdated = time.Now()
}
