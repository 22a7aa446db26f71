package handlers

import (
	"kiosk/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderItemHandler exposes single order lines.
type OrderItemHandler struct {
	service *services.OrderItemService
}

func NewOrderItemHandler(service *services.OrderItemService) *OrderItemHandler {
	return &OrderItemHandler{service: service}
}

func (h *OrderItemHandler) RegisterRoutes(router fiber.Router) {
	itemRoutes := router.Group("/orderitems")
	itemRoutes.Get("/", h.HandleGetOrderItems)
	itemRoutes.Get("/:id", h.HandleGetOrderItemByID)
	itemRoutes.Delete("/:id", h.HandleDeleteOrderItem)
}

func (h *OrderItemHandler) HandleGetOrderItems(c *fiber.Ctx) error {
	items, err := h.service.GetAll(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}

func (h *OrderItemHandler) HandleGetOrderItemByID(c *fiber.Ctx) error {
	item, err := h.service.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

func (h *OrderItemHandler) HandleDeleteOrderItem(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
