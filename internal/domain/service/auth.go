package service

import (
	"context"
	"errors"
	"time"

	"github.com/openclub/lendhub/internal/domain/common/errorz"
	"github.com/openclub/lendhub/internal/domain/dto"
	"github.com/openclub/lendhub/internal/domain/entity"
	"github.com/openclub/lendhub/pkg/generator"
)

// SessionStorage keeps bearer tokens mapped to user ids.
type SessionStorage interface {
	Set(ctx context.Context, token, userID string, ttl time.Duration) error
	Get(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, token string) error
}

// AuthService upserts users from identity-provider callbacks and resolves
// bearer tokens back to users. Identity verification itself happens upstream.
type AuthService struct {
	users    UserStorage
	sessions SessionStorage
	ttl      time.Duration
}

func NewAuthService(users UserStorage, sessions SessionStorage, ttl time.Duration) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		ttl:      ttl,
	}
}

// Login upserts the user by provider id and issues a session token.
func (s *AuthService) Login(ctx context.Context, identity dto.ProviderIdentity) (string, *entity.User, error) {
	user, err := s.users.GetByProviderID(ctx, identity.ProviderID)
	switch {
	case err == nil:
		user.Email = identity.Email
		user.Name = identity.Name
		user.Picture = identity.Picture
		if user, err = s.users.Update(ctx, user); err != nil {
			return "", nil, err
		}
	case errors.Is(err, errorz.ErrUserNotFound):
		user, err = s.users.Create(ctx, &entity.User{
			Email:      identity.Email,
			Name:       identity.Name,
			Provider:   identity.Provider,
			ProviderID: identity.ProviderID,
			Picture:    identity.Picture,
			GlobalRole: entity.GlobalRoleUser,
		})
		if err != nil {
			return "", nil, err
		}
	default:
		return "", nil, err
	}

	token, err := generator.Token()
	if err != nil {
		return "", nil, err
	}
	if err = s.sessions.Set(ctx, token, user.ID, s.ttl); err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Resolve maps a bearer token to the user it was issued for.
func (s *AuthService) Resolve(ctx context.Context, token string) (*entity.User, error) {
	userID, err := s.sessions.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, errorz.ErrUserNotFound) {
			return nil, errorz.ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}
