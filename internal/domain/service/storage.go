package service

import (
	"context"

	"github.com/openclub/lendhub/internal/domain/entity"
)

// BorrowStorage is the unit-of-work boundary of the borrow workflow. Every
// engine operation runs inside one Transaction call; the storage passed to the
// callback shares that transaction, so row locks taken through it are held
// until commit or rollback.
type BorrowStorage interface {
	Transaction(ctx context.Context, fn func(tx BorrowStorage) error) error

	LockItemByQRCode(ctx context.Context, qrCode string) (*entity.Item, error)
	LockItem(ctx context.Context, id string) (*entity.Item, error)
	UpdateItemStatus(ctx context.Context, itemID string, status entity.ItemStatus) error

	CreateRequest(ctx context.Context, request *entity.BorrowingRequest) (*entity.BorrowingRequest, error)
	CreateTransaction(ctx context.Context, transaction *entity.BorrowingTransaction) (*entity.BorrowingTransaction, error)
	GetTransaction(ctx context.Context, id uint) (*entity.BorrowingTransaction, error)
	LatestTransactionByItem(ctx context.Context, itemID string) (*entity.BorrowingTransaction, error)
	LatestTransactionByRequest(ctx context.Context, requestID string) (*entity.BorrowingTransaction, error)

	TransactionsByBorrower(ctx context.Context, borrowerID string) ([]entity.BorrowingTransaction, error)
	PendingTransactionsByClub(ctx context.Context, clubID string, offset, limit int) ([]entity.BorrowingTransaction, error)
}

type MembershipStorage interface {
	Create(ctx context.Context, membership *entity.Membership) (*entity.Membership, error)
	Get(ctx context.Context, userID, clubID string) (*entity.Membership, error)
	Update(ctx context.Context, membership *entity.Membership) (*entity.Membership, error)
	Delete(ctx context.Context, userID, clubID string) error
	ListByClub(ctx context.Context, clubID string, role *entity.ClubRole) ([]entity.Membership, error)
	ListByUser(ctx context.Context, userID string) ([]entity.Membership, error)
}
