package handlers

import (
	"kiosk/internal/middleware"
	"kiosk/internal/models"
	"kiosk/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	service  *services.CategoryService
	validate *validator.Validate
}

func NewCategoryHandler(service *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service, validate: newValidator()}
}

func (h *CategoryHandler) RegisterRoutes(router fiber.Router) {
	categoryRoutes := router.Group("/categories")
	categoryRoutes.Get("/", h.HandleGetCategories)
	categoryRoutes.Get("/:id", h.HandleGetCategoryByID)
	categoryRoutes.Post("/", middleware.AdminOnly(), h.HandleCreateCategory)
	categoryRoutes.Put("/:id", middleware.AdminOnly(), h.HandleUpdateCategory)
	categoryRoutes.Delete("/:id", middleware.AdminOnly(), h.HandleDeleteCategory)
}

type CategoryRequest struct {
	ID   string `json:"categoryId"`
	Name string `json:"categoryName" validate:"required,max=50"`
}

func (h *CategoryHandler) HandleGetCategories(c *fiber.Ctx) error {
	categories, err := h.service.GetAll(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(categories)
}

func (h *CategoryHandler) HandleGetCategoryByID(c *fiber.Ctx) error {
	category, err := h.service.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(category)
}

func (h *CategoryHandler) HandleCreateCategory(c *fiber.Ctx) error {
	var req CategoryRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}
	category, err := h.service.Create(c.UserContext(), req.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

func (h *CategoryHandler) HandleUpdateCategory(c *fiber.Ctx) error {
	var req CategoryRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}
	category, err := h.service.Update(c.UserContext(), c.Params("id"), models.Category{ID: req.ID, Name: req.Name})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(category)
}

func (h *CategoryHandler) HandleDeleteCategory(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
