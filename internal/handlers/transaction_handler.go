package handlers

import (
	"kiosk/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// TransactionHandler exposes the ledger.
type TransactionHandler struct {
	service  *services.TransactionService
	validate *validator.Validate
}

func NewTransactionHandler(service *services.TransactionService) *TransactionHandler {
	return &TransactionHandler{service: service, validate: newValidator()}
}

func (h *TransactionHandler) RegisterRoutes(router fiber.Router) {
	txRoutes := router.Group("/transactions")
	txRoutes.Get("/", h.HandleGetTransactions)
	txRoutes.Get("/user/:userId", h.HandleGetTransactionsByUser)
	txRoutes.Get("/wallet/:walletId", h.HandleGetTransactionsByWallet)
	txRoutes.Get("/:id", h.HandleGetTransactionByID)
	txRoutes.Post("/", h.HandleCreateTransaction)
}

// CreateTransactionRequest is the body of POST /transactions. Only TopUp is
// accepted.
type CreateTransactionRequest struct {
	WalletID string          `json:"walletId" validate:"required"`
	Amount   decimal.Decimal `json:"amount"`
	Type     string          `json:"type" validate:"required"`
}

func (h *TransactionHandler) HandleGetTransactions(c *fiber.Ctx) error {
	txns, err := h.service.GetAll(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(txns)
}

func (h *TransactionHandler) HandleGetTransactionByID(c *fiber.Ctx) error {
	txn, err := h.service.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(txn)
}

func (h *TransactionHandler) HandleGetTransactionsByUser(c *fiber.Ctx) error {
	userID := c.Params("userId")
	if err := authorizeUser(c, userID); err != nil {
		return respondError(c, err)
	}
	txns, err := h.service.GetByUserID(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(txns)
}

func (h *TransactionHandler) HandleGetTransactionsByWallet(c *fiber.Ctx) error {
	txns, err := h.service.GetByWalletID(c.UserContext(), c.Params("walletId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(txns)
}

func (h *TransactionHandler) HandleCreateTransaction(c *fiber.Ctx) error {
	var req CreateTransactionRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}
	txn, err := h.service.Create(c.UserContext(), services.CreateTransactionInput{
		WalletID: req.WalletID,
		Amount:   req.Amount,
		Type:     req.Type,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(txn)
}
