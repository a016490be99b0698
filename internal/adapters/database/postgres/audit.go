package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/openclub/lendhub/internal/domain/entity"
)

type AuditStorage struct {
	db *gorm.DB
}

func NewAuditStorage(db *gorm.DB) *AuditStorage {
	return &AuditStorage{
		db: db,
	}
}

func (s *AuditStorage) Create(ctx context.Context, log *entity.AuditLog) error {
	return s.db.WithContext(ctx).Create(&log).Error
}
