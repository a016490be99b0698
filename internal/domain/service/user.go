package service

import (
	"context"

	"github.com/openclub/lendhub/internal/domain/dto"
	"github.com/openclub/lendhub/internal/domain/entity"
)

type UserStorage interface {
	Create(ctx context.Context, user *entity.User) (*entity.User, error)
	Get(ctx context.Context, id string) (*entity.User, error)
	GetByProviderID(ctx context.Context, providerID string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) (*entity.User, error)
	Count(ctx context.Context) (int64, error)
	GetWithPagination(ctx context.Context, offset, limit int, order string) ([]entity.User, error)
}

type UserService struct {
	storage     UserStorage
	memberships MembershipStorage
}

func NewUserService(storage UserStorage, memberships MembershipStorage) *UserService {
	return &UserService{
		storage:     storage,
		memberships: memberships,
	}
}

func (s *UserService) Get(ctx context.Context, id string) (*entity.User, error) {
	return s.storage.Get(ctx, id)
}

func (s *UserService) Update(ctx context.Context, user *entity.User) (*entity.User, error) {
	return s.storage.Update(ctx, user)
}

func (s *UserService) Count(ctx context.Context) (int64, error) {
	return s.storage.Count(ctx)
}

func (s *UserService) GetWithPagination(ctx context.Context, offset, limit int, order string) ([]entity.User, error) {
	return s.storage.GetWithPagination(ctx, offset, limit, order)
}

// Clubs lists the clubs the user belongs to along with their role there.
func (s *UserService) Clubs(ctx context.Context, userID string) ([]dto.UserClub, error) {
	memberships, err := s.memberships.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	clubs := make([]dto.UserClub, 0, len(memberships))
	for _, m := range memberships {
		clubs = append(clubs, dto.NewUserClub(m))
	}
	return clubs, nil
}
