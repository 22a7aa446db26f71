package handlers

import (
	"kiosk/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Post("/", h.HandleCreateOrder)
	orderRoutes.Put("/:id", h.HandleUpdateOrder)
	orderRoutes.Delete("/:id", h.HandleDeleteOrder)
}

// OrderItemRequest is one requested line. Subtotal is accepted for
// compatibility and recomputed by the server.
type OrderItemRequest struct {
	ProductID string          `json:"productId" validate:"required"`
	Quantity  int             `json:"quantity" validate:"gt=0"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderRequest is the body of POST /orders and PUT /orders/:id.
type OrderRequest struct {
	ID          string             `json:"orderId"`
	UserID      string             `json:"userId" validate:"required"`
	TotalAmount decimal.Decimal    `json:"orderTotalAmount"`
	Status      bool               `json:"orderStatus"`
	Items       []OrderItemRequest `json:"orderItems" validate:"required,min=1,dive"`
}

func (r OrderRequest) input() services.OrderInput {
	items := make([]services.OrderItemInput, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, services.OrderItemInput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Subtotal:  it.Subtotal,
		})
	}
	return services.OrderInput{
		ID:          r.ID,
		UserID:      r.UserID,
		TotalAmount: r.TotalAmount,
		Status:      r.Status,
		Items:       items,
	}
}

// HandleGetOrders retrieves all orders.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetAllOrders(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order by its ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	order, err := h.service.GetOrderByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// HandleCreateOrder settles a new order against the user's wallet.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req OrderRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}
	if err := authorizeUser(c, req.UserID); err != nil {
		return respondError(c, err)
	}

	res, err := h.service.CreateOrder(c.UserContext(), req.input())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res.Order)
}

func (h *OrderHandler) HandleUpdateOrder(c *fiber.Ctx) error {
	var req OrderRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}
	if err := h.authorizeOrder(c, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	if err := authorizeUser(c, req.UserID); err != nil {
		return respondError(c, err)
	}

	order, err := h.service.UpdateOrder(c.UserContext(), c.Params("id"), req.input())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// HandleDeleteOrder removes an order. The wallet is not refunded.
func (h *OrderHandler) HandleDeleteOrder(c *fiber.Ctx) error {
	if err := h.authorizeOrder(c, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	if err := h.service.DeleteOrder(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// authorizeOrder lets the caller touch the order only if it is theirs or
// they are an admin.
func (h *OrderHandler) authorizeOrder(c *fiber.Ctx, id string) error {
	order, err := h.service.GetOrderByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return authorizeUser(c, order.UserID)
}
