package handlers

import (
	"kiosk/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// WalletHandler handles HTTP requests for wallets.
type WalletHandler struct {
	service  *services.WalletService
	validate *validator.Validate
}

func NewWalletHandler(service *services.WalletService) *WalletHandler {
	return &WalletHandler{service: service, validate: newValidator()}
}

// RegisterRoutes registers the wallet routes. /user/name is registered
// before /user/:userId so it is not captured as an id.
func (h *WalletHandler) RegisterRoutes(router fiber.Router) {
	walletRoutes := router.Group("/wallet")
	walletRoutes.Get("/", h.HandleGetWallets)
	walletRoutes.Get("/user/name", h.HandleGetWalletByOwnerName)
	walletRoutes.Get("/user/:userId", h.HandleGetWalletByUserID)
	walletRoutes.Get("/:id", h.HandleGetWalletByID)
	walletRoutes.Post("/", h.HandleCreateWallet)
	walletRoutes.Post("/:id/addfunds", h.HandleAddFunds)
	walletRoutes.Delete("/:id", h.HandleDeleteWallet)
}

type CreateWalletRequest struct {
	UserID string `json:"userId" validate:"required"`
}

type AddFundsRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func (h *WalletHandler) HandleGetWallets(c *fiber.Ctx) error {
	wallets, err := h.service.GetAll(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(wallets)
}

func (h *WalletHandler) HandleGetWalletByID(c *fiber.Ctx) error {
	wallet, err := h.service.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(wallet)
}

func (h *WalletHandler) HandleGetWalletByUserID(c *fiber.Ctx) error {
	wallet, err := h.service.GetByUserID(c.UserContext(), c.Params("userId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(wallet)
}

// HandleGetWalletByOwnerName serves GET /wallet/user/name?name=&surname=.
func (h *WalletHandler) HandleGetWalletByOwnerName(c *fiber.Ctx) error {
	wallet, err := h.service.GetByOwnerName(c.UserContext(), c.Query("name"), c.Query("surname"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(wallet)
}

func (h *WalletHandler) HandleCreateWallet(c *fiber.Ctx) error {
	var req CreateWalletRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}
	if err := authorizeUser(c, req.UserID); err != nil {
		return respondError(c, err)
	}
	wallet, err := h.service.Create(c.UserContext(), req.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(wallet)
}

// HandleAddFunds tops up a wallet. Only its owner or an admin may do so.
func (h *WalletHandler) HandleAddFunds(c *fiber.Ctx) error {
	var req AddFundsRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}
	wallet, err := h.service.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if err := authorizeUser(c, wallet.UserID); err != nil {
		return respondError(c, err)
	}
	res, err := h.service.TopUp(c.UserContext(), wallet.ID, req.Amount)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":       "Funds added successfully",
		"newBalance":    res.Wallet.Balance,
		"transactionId": res.Transaction.ID,
	})
}

func (h *WalletHandler) HandleDeleteWallet(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
