package service

import (
	"context"

	"habitat-portal-backend/internal/domain"
	"habitat-portal-backend/internal/logger"
	"habitat-portal-backend/internal/repository"
)

type identityService struct {
	users repository.UserRepository
	auth  AuthProvider
}

func NewIdentityService(users repository.UserRepository, auth AuthProvider) IdentityService {
	return &identityService{users: users, auth: auth}
}

// Resolve looks the principal up by the provider uid stored as a profile
// field. Authentication without a matching active profile is not a valid
// session: the principal is signed out and the request rejected.
func (s *identityService) Resolve(ctx context.Context, authUID string) (*domain.Profile, error) {
	var user *domain.User
	err := withRetry(ctx, "identity.Resolve", func() error {
		var err error
		user, err = s.users.GetByAuthUID(ctx, authUID)
		return err
	})
	if err != nil {
		if domain.IsNotFound(err) {
			s.signOut(ctx, authUID, "no profile record")
			return nil, domain.ErrNoProfile
		}
		return nil, err
	}

	if !user.Active {
		s.signOut(ctx, authUID, "deactivated profile")
		return nil, domain.ErrNoProfile
	}

	return &domain.Profile{
		UserID:     user.ID,
		AuthUID:    user.AuthUID,
		Name:       user.Name,
		Email:      user.Email,
		Phone:      user.Phone,
		Role:       user.Role,
		BuildingID: user.BuildingID,
		Unit:       user.Unit,
	}, nil
}

func (s *identityService) signOut(ctx context.Context, authUID, reason string) {
	logger.Warn("Signing out principal without valid profile", "uid", authUID, "reason", reason)
	if err := s.auth.SignOut(ctx, authUID); err != nil {
		// The request is rejected either way; the revocation is best effort.
		logger.Error("Failed to revoke sessions", "uid", authUID, "error", err)
	}
}
