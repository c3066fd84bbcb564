package service

import (
	"context"
	"fmt"

	fbauth "firebase.google.com/go/v4/auth"

	"habitat-portal-backend/internal/logger"
)

// firebaseAuthProvider adapts the platform's admin auth client to the
// AuthProvider slice the services depend on.
type firebaseAuthProvider struct {
	client *fbauth.Client
}

func NewFirebaseAuthProvider(client *fbauth.Client) AuthProvider {
	return &firebaseAuthProvider{client: client}
}

func (p *firebaseAuthProvider) CreateAccount(ctx context.Context, email, password, displayName string) (string, error) {
	logger.ExternalServiceCall("auth", "create_user", "email", email)
	params := (&fbauth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName)
	record, err := p.client.CreateUser(ctx, params)
	logger.ExternalServiceResult("auth", "create_user", err, "email", email)
	if err != nil {
		return "", fmt.Errorf("create auth user: %w", err)
	}
	return record.UID, nil
}

func (p *firebaseAuthProvider) SetDisabled(ctx context.Context, uid string, disabled bool) error {
	params := (&fbauth.UserToUpdate{}).Disabled(disabled)
	_, err := p.client.UpdateUser(ctx, uid, params)
	if err != nil {
		return fmt.Errorf("update auth user %s: %w", uid, err)
	}
	return nil
}

func (p *firebaseAuthProvider) SignOut(ctx context.Context, uid string) error {
	if err := p.client.RevokeRefreshTokens(ctx, uid); err != nil {
		return fmt.Errorf("revoke refresh tokens for %s: %w", uid, err)
	}
	return nil
}
