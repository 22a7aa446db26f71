package handlers

import (
	"kiosk/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for registration and login.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    newValidator(),
	}
}

// RegisterRoutes registers the public account routes. It must be called
// before the authenticated group is mounted.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/users", h.HandleRegister)
	router.Post("/users/login", h.HandleLogin)
}

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	UserName string `json:"userName" validate:"omitempty,max=100"`
	Name     string `json:"name" validate:"required,max=100"`
	Surname  string `json:"surname" validate:"required,max=100"`
	Email    string `json:"userEmail" validate:"required,email"`
	Password string `json:"password" validate:"required,strongpassword"`
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"userEmail" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleRegister creates an account and its empty wallet.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}

	user, wallet, err := h.authService.Register(c.UserContext(), services.RegisterInput{
		UserName: req.UserName,
		Name:     req.Name,
		Surname:  req.Surname,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "User registered successfully",
		"user":     user,
		"walletId": wallet.ID,
	})
}

// HandleLogin handles user login and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}

	res, err := h.authService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   res.Token,
		"user": fiber.Map{
			"id":       res.User.ID,
			"name":     res.User.Name,
			"role":     res.User.RoleName(),
			"walletId": res.WalletID,
		},
	})
}
