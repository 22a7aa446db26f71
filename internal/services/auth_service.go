package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"kiosk/internal/logger"
	"kiosk/internal/models"
	"kiosk/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration, login and token validation.
type AuthService struct {
	store     repositories.Store
	policy    *RolePolicy
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(store repositories.Store, policy *RolePolicy, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		store:     store,
		policy:    policy,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

// RegisterInput is the data needed to open an account.
type RegisterInput struct {
	UserName string
	Name     string
	Surname  string
	Email    string
	Password string
}

// Claims are the values carried by an access token.
type Claims struct {
	UserID string
	Role   string
}

// LoginResult is returned on successful login.
type LoginResult struct {
	Token    string
	User     *models.User
	WalletID string
}

// Register creates the user and an empty wallet in one transaction. The
// role is decided here and never recomputed.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, *models.Wallet, error) {
	email := normalizeEmail(in.Email)
	if err := s.policy.ValidateEmail(email); err != nil {
		return nil, nil, err
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, nil, err
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Surname) == "" {
		return nil, nil, validationError("name and surname are required")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	userName := in.UserName
	if userName == "" {
		userName = email
	}
	user := &models.User{
		UserName: userName,
		Name:     in.Name,
		Surname:  in.Surname,
		Email:    email,
		Password: string(hashed),
		RoleID:   s.policy.AssignRole(email),
		IsActive: true,
	}
	wallet := &models.Wallet{Balance: decimal.Zero}

	err = s.store.WithinTransaction(ctx, func(tx repositories.Store) error {
		existing, err := tx.Users().GetByEmail(ctx, email)
		if err == nil && existing != nil {
			return conflictError("email '%s' already registered", email)
		}
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return err
		}
		if err := tx.Users().Create(ctx, user); err != nil {
			return err
		}
		wallet.UserID = user.ID
		return tx.Wallets().Create(ctx, wallet)
	})
	if err != nil {
		return nil, nil, err
	}

	logger.WithContext(ctx).Info("user registered",
		zap.String("user_id", user.ID),
		zap.String("role", user.RoleName()))
	return user, wallet, nil
}

// Login checks the credentials and issues a signed token. The role claim
// comes from the stored role id.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.store.Users().GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	var walletID string
	wallet, err := s.store.Wallets().GetByUserID(ctx, user.ID)
	switch {
	case err == nil:
		walletID = wallet.ID
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, err
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.RoleName(),
		"iat":     now.Unix(),
		"exp":     now.Add(s.tokenTTL).Unix(),
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginResult{Token: signed, User: user, WalletID: walletID}, nil
}

// ValidateToken parses and validates a token, checking the signing method,
// signature and expiry.
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: invalid token: %v", ErrUnauthorized, err)
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token", ErrUnauthorized)
	}
	userID, _ := mc["user_id"].(string)
	role, _ := mc["role"].(string)
	if userID == "" || role == "" {
		return nil, fmt.Errorf("%w: token is missing claims", ErrUnauthorized)
	}
	return &Claims{UserID: userID, Role: role}, nil
}
