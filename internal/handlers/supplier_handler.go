package handlers

import (
	"kiosk/internal/middleware"
	"kiosk/internal/models"
	"kiosk/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// SupplierHandler handles HTTP requests for suppliers.
type SupplierHandler struct {
	service  *services.SupplierService
	validate *validator.Validate
}

func NewSupplierHandler(service *services.SupplierService) *SupplierHandler {
	return &SupplierHandler{service: service, validate: newValidator()}
}

func (h *SupplierHandler) RegisterRoutes(router fiber.Router) {
	supplierRoutes := router.Group("/suppliers")
	supplierRoutes.Get("/", h.HandleGetSuppliers)
	supplierRoutes.Get("/:id", h.HandleGetSupplierByID)
	supplierRoutes.Post("/", middleware.AdminOnly(), h.HandleCreateSupplier)
	supplierRoutes.Put("/:id", middleware.AdminOnly(), h.HandleUpdateSupplier)
	supplierRoutes.Delete("/:id", middleware.AdminOnly(), h.HandleDeleteSupplier)
}

type SupplierRequest struct {
	ID      string `json:"supplierId"`
	Name    string `json:"name" validate:"max=100"`
	Surname string `json:"surname" validate:"max=100"`
	Email   string `json:"email" validate:"omitempty,email"`
}

func (r SupplierRequest) model() models.Supplier {
	return models.Supplier{ID: r.ID, Name: r.Name, Surname: r.Surname, Email: r.Email}
}

func (h *SupplierHandler) HandleGetSuppliers(c *fiber.Ctx) error {
	suppliers, err := h.service.GetAll(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(suppliers)
}

func (h *SupplierHandler) HandleGetSupplierByID(c *fiber.Ctx) error {
	supplier, err := h.service.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(supplier)
}

func (h *SupplierHandler) HandleCreateSupplier(c *fiber.Ctx) error {
	var req SupplierRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}
	supplier, err := h.service.Create(c.UserContext(), req.model())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(supplier)
}

func (h *SupplierHandler) HandleUpdateSupplier(c *fiber.Ctx) error {
	var req SupplierRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}
	supplier, err := h.service.Update(c.UserContext(), c.Params("id"), req.model())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(supplier)
}

func (h *SupplierHandler) HandleDeleteSupplier(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
