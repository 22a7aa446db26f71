package handlers

import (
	"time"

	"kiosk/internal/middleware"
	"kiosk/internal/services"

	"github.com/gofiber/fiber/v2"
)

// Services bundles everything the HTTP layer calls into.
type Services struct {
	Auth         *services.AuthService
	Users        *services.UserService
	Wallets      *services.WalletService
	Transactions *services.TransactionService
	Orders       *services.OrderService
	OrderItems   *services.OrderItemService
	Products     *services.ProductService
	Categories   *services.CategoryService
	Suppliers    *services.SupplierService
}

// Mount registers every route on router. Public routes come first: the
// authenticated group installs its middleware on the whole prefix, so
// anything registered after it requires a token.
func Mount(router fiber.Router, s Services) {
	router.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	NewAuthHandler(s.Auth).RegisterRoutes(router)

	protected := router.Group("", middleware.AuthRequired(s.Auth))
	NewUserHandler(s.Users).RegisterRoutes(protected)
	NewWalletHandler(s.Wallets).RegisterRoutes(protected)
	NewTransactionHandler(s.Transactions).RegisterRoutes(protected)
	NewOrderHandler(s.Orders).RegisterRoutes(protected)
	NewOrderItemHandler(s.OrderItems).RegisterRoutes(protected)
	NewProductHandler(s.Products).RegisterRoutes(protected)
	NewCategoryHandler(s.Categories).RegisterRoutes(protected)
	NewSupplierHandler(s.Suppliers).RegisterRoutes(protected)
}
