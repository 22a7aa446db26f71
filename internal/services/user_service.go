package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"kiosk/internal/models"
	"kiosk/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

// UserService manages existing accounts. Accounts are created by
// AuthService.Register.
type UserService struct {
	store  repositories.Store
	policy *RolePolicy
}

func NewUserService(store repositories.Store, policy *RolePolicy) *UserService {
	return &UserService{store: store, policy: policy}
}

// UpdateUserInput holds the editable fields of a user. An empty Password
// keeps the current one.
type UpdateUserInput struct {
	ID       string
	UserName string
	Name     string
	Surname  string
	Email    string
	Password string
}

func (s *UserService) GetAll(ctx context.Context) ([]models.User, error) {
	return s.store.Users().GetAll(ctx)
}

func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.store.Users().GetByID(ctx, id)
}

// Update changes profile fields and optionally the password. The role is
// never changed here.
func (s *UserService) Update(ctx context.Context, id string, in UpdateUserInput) (*models.User, error) {
	if in.ID != "" && in.ID != id {
		return nil, conflictError("user id %s does not match path id %s", in.ID, id)
	}
	email := normalizeEmail(in.Email)
	if err := s.policy.ValidateEmail(email); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Surname) == "" {
		return nil, validationError("name and surname are required")
	}

	var hashed string
	if in.Password != "" {
		if err := validatePassword(in.Password); err != nil {
			return nil, err
		}
		h, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		hashed = string(h)
	}

	var updated *models.User
	err := s.store.WithinTransaction(ctx, func(tx repositories.Store) error {
		user, err := tx.Users().GetByID(ctx, id)
		if err != nil {
			return err
		}
		other, err := tx.Users().GetByEmail(ctx, email)
		if err == nil && other.ID != id {
			return conflictError("email '%s' already registered", email)
		}
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return err
		}

		if in.UserName != "" {
			user.UserName = in.UserName
		}
		user.Name = in.Name
		user.Surname = in.Surname
		user.Email = email
		if hashed != "" {
			user.Password = hashed
		}
		user.UpdatedAt = time.Now()
		if err := tx.Users().Update(ctx, user); err != nil {
			return err
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a user and their wallet. Users with orders or ledger
// history are kept.
func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.store.WithinTransaction(ctx, func(tx repositories.Store) error {
		if _, err := tx.Users().GetByID(ctx, id); err != nil {
			return err
		}
		orders, err := tx.Orders().CountByUserID(ctx, id)
		if err != nil {
			return err
		}
		if orders > 0 {
			return conflictError("user %s has %d orders", id, orders)
		}

		wallet, err := tx.Wallets().GetByUserID(ctx, id)
		switch {
		case err == nil:
			n, err := tx.Transactions().CountByWalletID(ctx, wallet.ID)
			if err != nil {
				return err
			}
			if n > 0 {
				return conflictError("wallet of user %s has ledger history", id)
			}
			if err := tx.Wallets().Delete(ctx, wallet.ID); err != nil {
				return err
			}
		case !errors.Is(err, repositories.ErrNotFound):
			return err
		}

		return tx.Users().Delete(ctx, id)
	})
}
