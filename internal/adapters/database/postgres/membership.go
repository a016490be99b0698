package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/openclub/lendhub/internal/domain/common/errorz"
	"github.com/openclub/lendhub/internal/domain/entity"
)

type MembershipStorage struct {
	db *gorm.DB
}

func NewMembershipStorage(db *gorm.DB) *MembershipStorage {
	return &MembershipStorage{
		db: db,
	}
}

func (s *MembershipStorage) Create(ctx context.Context, membership *entity.Membership) (*entity.Membership, error) {
	err := s.db.WithContext(ctx).Create(&membership).Error
	return membership, err
}

func (s *MembershipStorage) Get(ctx context.Context, userID, clubID string) (*entity.Membership, error) {
	var membership entity.Membership
	err := s.db.WithContext(ctx).Where("user_id = ? AND club_id = ?", userID, clubID).First(&membership).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errorz.ErrMembershipNotFound
	}
	return &membership, err
}

func (s *MembershipStorage) Update(ctx context.Context, membership *entity.Membership) (*entity.Membership, error) {
	err := s.db.WithContext(ctx).Save(&membership).Error
	return membership, err
}

func (s *MembershipStorage) Delete(ctx context.Context, userID, clubID string) error {
	return s.db.WithContext(ctx).Where("user_id = ? AND club_id = ?", userID, clubID).Delete(&entity.Membership{}).Error
}

func (s *MembershipStorage) ListByClub(ctx context.Context, clubID string, role *entity.ClubRole) ([]entity.Membership, error) {
	q := s.db.WithContext(ctx).Where("club_id = ?", clubID)
	if role != nil {
		q = q.Where("role = ?", *role)
	}
	var memberships []entity.Membership
	err := q.Preload("User").Find(&memberships).Error
	return memberships, err
}

func (s *MembershipStorage) ListByUser(ctx context.Context, userID string) ([]entity.Membership, error) {
	var memberships []entity.Membership
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Preload("Club").Find(&memberships).Error
	return memberships, err
}
