package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"kiosk/internal/models"
	"kiosk/internal/repositories"
	"kiosk/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test_jwt_secret"

func newAuthService(store repositories.Store) *services.AuthService {
	policy := services.NewRolePolicy("singular.com", []string{"admin@singular.com"})
	return services.NewAuthService(store, policy, testJWTSecret, time.Hour)
}

func TestAuthService_Register(t *testing.T) {
	store := newMockStore()
	authService := newAuthService(store)
	ctx := context.Background()

	store.users.On("GetByEmail", ctx, "admin@singular.com").Return(nil, repositories.ErrNotFound).Once()
	store.users.On("Create", ctx, mock.MatchedBy(func(u *models.User) bool {
		return u.RoleID == models.RoleAdmin && u.Password != "Kiosk#2024"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.User).ID = "user-1"
	}).Return(nil).Once()
	store.wallets.On("Create", ctx, mock.MatchedBy(func(w *models.Wallet) bool {
		return w.UserID == "user-1" && w.Balance.IsZero()
	})).Return(nil).Once()

	user, wallet, err := authService.Register(ctx, services.RegisterInput{
		Name: "Ada", Surname: "Admin", Email: "Admin@Singular.com", Password: "Kiosk#2024",
	})
	require.NoError(t, err)
	assert.Equal(t, "admin@singular.com", user.Email)
	assert.Equal(t, models.RoleAdmin, user.RoleID)
	assert.Equal(t, "user-1", wallet.UserID)
	store.users.AssertExpectations(t)
	store.wallets.AssertExpectations(t)
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	store := newMockStore()
	authService := newAuthService(store)
	ctx := context.Background()

	store.users.On("GetByEmail", ctx, "ana@singular.com").Return(&models.User{ID: "1"}, nil).Once()

	_, _, err := authService.Register(ctx, services.RegisterInput{
		Name: "Ana", Surname: "Perez", Email: "ana@singular.com", Password: "Kiosk#2024",
	})
	assert.True(t, errors.Is(err, services.ErrConflict))
	assert.Contains(t, err.Error(), "email 'ana@singular.com' already registered")
	store.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Register_Rejected(t *testing.T) {
	store := newMockStore()
	authService := newAuthService(store)

	tests := []struct {
		name string
		in   services.RegisterInput
	}{
		{"foreign domain", services.RegisterInput{Name: "A", Surname: "B", Email: "a@gmail.com", Password: "Kiosk#2024"}},
		{"weak password", services.RegisterInput{Name: "A", Surname: "B", Email: "a@singular.com", Password: "password"}},
		{"missing surname", services.RegisterInput{Name: "A", Email: "a@singular.com", Password: "Kiosk#2024"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := authService.Register(context.Background(), tt.in)
			assert.True(t, errors.Is(err, services.ErrValidation))
		})
	}
	store.users.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
}

func TestAuthService_Login(t *testing.T) {
	store := newMockStore()
	authService := newAuthService(store)
	ctx := context.Background()

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("Kiosk#2024"), bcrypt.MinCost)
	// Stored as a regular user even though the address is on the admin list:
	// the role comes from the database, not from the email.
	user := &models.User{
		ID:       "user-123",
		Email:    "admin@singular.com",
		Password: string(hashedPassword),
		RoleID:   models.RoleUser,
	}

	store.users.On("GetByEmail", ctx, "admin@singular.com").Return(user, nil)
	store.wallets.On("GetByUserID", ctx, "user-123").Return(&models.Wallet{ID: "wallet-9"}, nil).Once()

	res, err := authService.Login(ctx, "admin@singular.com", "Kiosk#2024")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "wallet-9", res.WalletID)

	claims, err := authService.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, models.RoleNameUser, claims.Role)

	_, err = authService.Login(ctx, "admin@singular.com", "wrong")
	assert.True(t, errors.Is(err, services.ErrUnauthorized))

	store.users.On("GetByEmail", ctx, "ghost@singular.com").Return(nil, repositories.ErrNotFound).Once()
	_, err = authService.Login(ctx, "ghost@singular.com", "Kiosk#2024")
	assert.True(t, errors.Is(err, services.ErrUnauthorized))
}

func TestAuthService_ValidateToken(t *testing.T) {
	authService := newAuthService(newMockStore())

	sign := func(method jwt.SigningMethod, key interface{}, claims jwt.MapClaims) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}

	t.Run("expired", func(t *testing.T) {
		token := sign(jwt.SigningMethodHS256, []byte(testJWTSecret), jwt.MapClaims{
			"user_id": "u", "role": "user", "exp": time.Now().Add(-time.Minute).Unix(),
		})
		_, err := authService.ValidateToken(token)
		assert.True(t, errors.Is(err, services.ErrUnauthorized))
	})

	t.Run("wrong secret", func(t *testing.T) {
		token := sign(jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{
			"user_id": "u", "role": "user", "exp": time.Now().Add(time.Minute).Unix(),
		})
		_, err := authService.ValidateToken(token)
		assert.True(t, errors.Is(err, services.ErrUnauthorized))
	})

	t.Run("unsigned", func(t *testing.T) {
		token := sign(jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, jwt.MapClaims{
			"user_id": "u", "role": "admin",
		})
		_, err := authService.ValidateToken(token)
		assert.True(t, errors.Is(err, services.ErrUnauthorized))
	})

	t.Run("missing role", func(t *testing.T) {
		token := sign(jwt.SigningMethodHS256, []byte(testJWTSecret), jwt.MapClaims{"user_id": "u"})
		_, err := authService.ValidateToken(token)
		assert.True(t, errors.Is(err, services.ErrUnauthorized))
	})
}
