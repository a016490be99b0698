package service

import (
	"context"

	"github.com/openclub/lendhub/internal/domain/common/errorz"
	"github.com/openclub/lendhub/internal/domain/entity"
	"github.com/openclub/lendhub/internal/domain/utils/validator"
)

type ClubStorage interface {
	Create(ctx context.Context, club *entity.Club) (*entity.Club, error)
	Get(ctx context.Context, id string) (*entity.Club, error)
	Update(ctx context.Context, club *entity.Club) (*entity.Club, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	GetWithPagination(ctx context.Context, offset, limit int, order string) ([]entity.Club, error)
}

type ClubService struct {
	storage ClubStorage
}

func NewClubService(storage ClubStorage) *ClubService {
	return &ClubService{
		storage: storage,
	}
}

func (s *ClubService) Create(ctx context.Context, club *entity.Club) (*entity.Club, error) {
	if !validator.ClubName(club.Name) || !validator.Description(club.Description) {
		return nil, errorz.ErrInvalidName
	}
	return s.storage.Create(ctx, club)
}

func (s *ClubService) Get(ctx context.Context, id string) (*entity.Club, error) {
	return s.storage.Get(ctx, id)
}

func (s *ClubService) Update(ctx context.Context, club *entity.Club) (*entity.Club, error) {
	if !validator.ClubName(club.Name) || !validator.Description(club.Description) {
		return nil, errorz.ErrInvalidName
	}
	return s.storage.Update(ctx, club)
}

// Delete removes a club. Items owned by the club survive with their club
// reference cleared; memberships go with the club.
func (s *ClubService) Delete(ctx context.Context, id string) error {
	return s.storage.Delete(ctx, id)
}

func (s *ClubService) Count(ctx context.Context) (int64, error) {
	return s.storage.Count(ctx)
}

func (s *ClubService) GetWithPagination(ctx context.Context, offset, limit int, order string) ([]entity.Club, error) {
	return s.storage.GetWithPagination(ctx, offset, limit, order)
}
