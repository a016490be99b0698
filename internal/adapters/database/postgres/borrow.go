package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/openclub/lendhub/internal/domain/common/errorz"
	"github.com/openclub/lendhub/internal/domain/entity"
	"github.com/openclub/lendhub/internal/domain/service"
)

// BorrowStorage is the unit of work behind the borrow workflow engine. All
// reads and writes issued through the storage passed to a Transaction callback
// share one database transaction, so FOR UPDATE locks hold until commit.
type BorrowStorage struct {
	db *gorm.DB
}

func NewBorrowStorage(db *gorm.DB) *BorrowStorage {
	return &BorrowStorage{
		db: db,
	}
}

func (s *BorrowStorage) Transaction(ctx context.Context, fn func(tx service.BorrowStorage) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewBorrowStorage(tx))
	})
}

// LockItemByQRCode resolves an item by scan code under an exclusive row lock.
func (s *BorrowStorage) LockItemByQRCode(ctx context.Context, qrCode string) (*entity.Item, error) {
	var item entity.Item
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("qr_code = ?", qrCode).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errorz.ErrItemNotFound
	}
	return &item, err
}

func (s *BorrowStorage) LockItem(ctx context.Context, id string) (*entity.Item, error) {
	var item entity.Item
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errorz.ErrItemNotFound
	}
	return &item, err
}

func (s *BorrowStorage) UpdateItemStatus(ctx context.Context, itemID string, status entity.ItemStatus) error {
	return s.db.WithContext(ctx).
		Model(&entity.Item{}).
		Where("id = ?", itemID).
		Update("status", status).Error
}

func (s *BorrowStorage) CreateRequest(ctx context.Context, request *entity.BorrowingRequest) (*entity.BorrowingRequest, error) {
	err := s.db.WithContext(ctx).Create(&request).Error
	return request, err
}

func (s *BorrowStorage) CreateTransaction(ctx context.Context, transaction *entity.BorrowingTransaction) (*entity.BorrowingTransaction, error) {
	err := s.db.WithContext(ctx).Create(&transaction).Error
	return transaction, err
}

func (s *BorrowStorage) GetTransaction(ctx context.Context, id uint) (*entity.BorrowingTransaction, error) {
	var transaction entity.BorrowingTransaction
	err := s.db.WithContext(ctx).
		Preload("Request").
		Preload("Request.Item").
		Where("id = ?", id).
		First(&transaction).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errorz.ErrTransactionNotFound
	}
	return &transaction, err
}

// LatestTransactionByItem returns the newest transaction across all requests
// ever opened for the item.
func (s *BorrowStorage) LatestTransactionByItem(ctx context.Context, itemID string) (*entity.BorrowingTransaction, error) {
	var transaction entity.BorrowingTransaction
	err := s.db.WithContext(ctx).
		Joins("JOIN item_borrowing_requests ON item_borrowing_requests.id = item_borrowing_transactions.request_id").
		Where("item_borrowing_requests.item_id = ?", itemID).
		Order("item_borrowing_transactions.id DESC").
		Preload("Request").
		First(&transaction).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errorz.ErrTransactionNotFound
	}
	return &transaction, err
}

func (s *BorrowStorage) LatestTransactionByRequest(ctx context.Context, requestID string) (*entity.BorrowingTransaction, error) {
	var transaction entity.BorrowingTransaction
	err := s.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Order("id DESC").
		First(&transaction).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errorz.ErrTransactionNotFound
	}
	return &transaction, err
}

func (s *BorrowStorage) TransactionsByBorrower(ctx context.Context, borrowerID string) ([]entity.BorrowingTransaction, error) {
	var transactions []entity.BorrowingTransaction
	err := s.db.WithContext(ctx).
		Joins("JOIN item_borrowing_requests ON item_borrowing_requests.id = item_borrowing_transactions.request_id").
		Where("item_borrowing_requests.borrower_id = ?", borrowerID).
		Order("item_borrowing_transactions.id DESC").
		Preload("Request").
		Preload("Request.Item").
		Find(&transactions).Error
	return transactions, err
}

// PendingTransactionsByClub returns the latest transaction of each request
// for the club's items, keeping only those still awaiting a decision.
func (s *BorrowStorage) PendingTransactionsByClub(ctx context.Context, clubID string, offset, limit int) ([]entity.BorrowingTransaction, error) {
	latest := s.db.
		Model(&entity.BorrowingTransaction{}).
		Select("MAX(id)").
		Group("request_id")

	var transactions []entity.BorrowingTransaction
	err := s.db.WithContext(ctx).
		Joins("JOIN item_borrowing_requests ON item_borrowing_requests.id = item_borrowing_transactions.request_id").
		Joins("JOIN items ON items.id = item_borrowing_requests.item_id").
		Where("item_borrowing_transactions.id IN (?)", latest).
		Where("item_borrowing_transactions.status IN ?", []entity.BorrowStatus{
			entity.BorrowStatusPendingApproval,
			entity.BorrowStatusPendingConditionCheck,
		}).
		Where("items.club_id = ?", clubID).
		Order("item_borrowing_transactions.id DESC").
		Offset(offset).
		Limit(limit).
		Preload("Request").
		Preload("Request.Item").
		Preload("Request.Borrower").
		Find(&transactions).Error
	return transactions, err
}
