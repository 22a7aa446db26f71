package handlers

import (
	"kiosk/internal/middleware"
	"kiosk/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{service: service, validate: newValidator()}
}

// RegisterRoutes registers the product routes. Mutations need the admin role.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", middleware.AdminOnly(), h.HandleCreateProduct)
	productRoutes.Put("/:id", middleware.AdminOnly(), h.HandleUpdateProduct)
	productRoutes.Delete("/:id", middleware.AdminOnly(), h.HandleDeleteProduct)
}

// ProductRequest is the body of product create and update.
type ProductRequest struct {
	ID          string          `json:"productId"`
	CategoryID  string          `json:"categoryId" validate:"required"`
	SupplierID  *string         `json:"supplierId"`
	Name        string          `json:"productName" validate:"required,max=100"`
	Description string          `json:"description" validate:"required,max=500"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity" validate:"gte=0"`
	ImageURL    string          `json:"imageUrl" validate:"omitempty,max=255"`
}

func (r ProductRequest) input() services.ProductInput {
	return services.ProductInput{
		ID:          r.ID,
		CategoryID:  r.CategoryID,
		SupplierID:  r.SupplierID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Quantity:    r.Quantity,
		ImageURL:    r.ImageURL,
	}
}

// HandleGetProducts serves GET /products?page=&size=.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	page, err := h.service.GetProducts(c.UserContext(),
		c.QueryInt("page", services.DefaultPage),
		c.QueryInt("size", services.DefaultPageSize))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}

func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req ProductRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}
	product, err := h.service.CreateProduct(c.UserContext(), req.input())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var req ProductRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}
	product, err := h.service.UpdateProduct(c.UserContext(), c.Params("id"), req.input())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	if err := h.service.DeleteProduct(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
