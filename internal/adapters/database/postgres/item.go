package postgres

import (
	"context"
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/openclub/lendhub/internal/domain/common/errorz"
	"github.com/openclub/lendhub/internal/domain/entity"
)

type ItemStorage struct {
	db *gorm.DB
}

func NewItemStorage(db *gorm.DB) *ItemStorage {
	return &ItemStorage{
		db: db,
	}
}

func (s *ItemStorage) Create(ctx context.Context, item *entity.Item) (*entity.Item, error) {
	err := s.db.WithContext(ctx).Create(&item).Error
	return item, err
}

func (s *ItemStorage) Get(ctx context.Context, id string) (*entity.Item, error) {
	var item entity.Item
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errorz.ErrItemNotFound
	}
	return &item, err
}

func (s *ItemStorage) GetByQRCode(ctx context.Context, qrCode string) (*entity.Item, error) {
	var item entity.Item
	err := s.db.WithContext(ctx).Where("qr_code = ?", qrCode).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errorz.ErrItemNotFound
	}
	return &item, err
}

func (s *ItemStorage) Update(ctx context.Context, item *entity.Item) (*entity.Item, error) {
	err := s.db.WithContext(ctx).Save(&item).Error
	return item, err
}

func (s *ItemStorage) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Item{}).Error
}

func (s *ItemStorage) ListByClub(ctx context.Context, clubID string, tags []string) ([]entity.Item, error) {
	q := s.db.WithContext(ctx).Where("club_id = ?", clubID)
	if len(tags) > 0 {
		q = q.Where("tags && ?", pq.StringArray(tags))
	}
	var items []entity.Item
	err := q.Order("created_at DESC").Find(&items).Error
	return items, err
}
