package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/openclub/lendhub/internal/domain/common/errorz"
	"github.com/openclub/lendhub/internal/domain/entity"
)

type ClubStorage struct {
	db *gorm.DB
}

func NewClubStorage(db *gorm.DB) *ClubStorage {
	return &ClubStorage{
		db: db,
	}
}

func (s *ClubStorage) Create(ctx context.Context, club *entity.Club) (*entity.Club, error) {
	err := s.db.WithContext(ctx).Create(&club).Error
	return club, err
}

func (s *ClubStorage) Get(ctx context.Context, id string) (*entity.Club, error) {
	var club entity.Club
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&club).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errorz.ErrClubNotFound
	}
	return &club, err
}

func (s *ClubStorage) Update(ctx context.Context, club *entity.Club) (*entity.Club, error) {
	err := s.db.WithContext(ctx).Save(&club).Error
	return club, err
}

// Delete removes a club. Item ownership references are cleared rather than
// cascaded: items outlive their club.
func (s *ClubStorage) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&entity.Item{}).Where("club_id = ?", id).Update("club_id", nil).Error
		if err != nil {
			return err
		}
		err = tx.Where("club_id = ?", id).Delete(&entity.Membership{}).Error
		if err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entity.Club{}).Error
	})
}

func (s *ClubStorage) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.Club{}).Count(&count).Error
	return count, err
}

func (s *ClubStorage) GetWithPagination(ctx context.Context, offset, limit int, order string) ([]entity.Club, error) {
	var clubs []entity.Club
	err := s.db.WithContext(ctx).Order(order).Offset(offset).Limit(limit).Find(&clubs).Error
	return clubs, err
}
