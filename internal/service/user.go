package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"habitat-portal-backend/internal/domain"
	"habitat-portal-backend/internal/logger"
	"habitat-portal-backend/internal/repository"
)

// passwordCharset omits lookalike characters (0/O, 1/l/I) because the
// generated password is read to the resident over the phone.
const (
	passwordCharset = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789!@#$%&*"
	passwordLength  = 10
)

type userService struct {
	users repository.UserRepository
	auth  AuthProvider
}

func NewUserService(users repository.UserRepository, auth AuthProvider) UserService {
	return &userService{users: users, auth: auth}
}

// Create provisions the login on the identity platform first, then writes
// the profile record carrying the provider uid. The generated password is
// returned once and never stored here.
func (s *userService) Create(ctx context.Context, u *domain.User) (string, error) {
	password, err := generatePassword(passwordLength)
	if err != nil {
		return "", fmt.Errorf("generate password: %w", err)
	}

	uid, err := s.auth.CreateAccount(ctx, u.Email, password, u.Name)
	if err != nil {
		return "", fmt.Errorf("create account for %s: %w", u.Email, err)
	}

	u.AuthUID = uid
	u.Active = true
	if u.Role == "" {
		u.Role = domain.RoleResident
	}

	err = withRetry(ctx, "users.Create", func() error {
		return s.users.Create(ctx, u)
	})
	if err != nil {
		// The login exists without a profile; disable it so the identity
		// resolver's fail-closed path is never reachable for it.
		if derr := s.auth.SetDisabled(ctx, uid, true); derr != nil {
			logger.Error("Failed to disable orphaned account", "uid", uid, "error", derr)
		}
		return "", err
	}

	logger.Info("User created", "id", u.ID, "building_id", u.BuildingID, "role", u.Role)
	return password, nil
}

func (s *userService) Update(ctx context.Context, u *domain.User) error {
	return withRetry(ctx, "users.Update", func() error {
		return s.users.Update(ctx, u)
	})
}

// SetActive toggles the active flag and mirrors it to the login. Users are
// never hard-deleted.
func (s *userService) SetActive(ctx context.Context, id string, active bool) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.users.SetActive(ctx, id, active); err != nil {
		return err
	}
	if user.AuthUID != "" {
		if err := s.auth.SetDisabled(ctx, user.AuthUID, !active); err != nil {
			return fmt.Errorf("mirror active flag to login: %w", err)
		}
		if !active {
			if err := s.auth.SignOut(ctx, user.AuthUID); err != nil {
				logger.Warn("Failed to revoke sessions for deactivated user", "id", id, "error", err)
			}
		}
	}
	return nil
}

func (s *userService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *userService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, strings.TrimSpace(id))
}

func generatePassword(length int) (string, error) {
	var b strings.Builder
	max := big.NewInt(int64(len(passwordCharset)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(passwordCharset[n.Int64()])
	}
	return b.String(), nil
}
