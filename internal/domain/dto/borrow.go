package dto

import (
	"time"

	"github.com/openclub/lendhub/internal/domain/entity"
)

// BorrowResult is returned by borrow, return and approval operations.
type BorrowResult struct {
	Message       string
	ItemName      string
	Status        entity.BorrowStatus
	RequestID     string
	TransactionID uint
}

// PendingApproval is one row of a club's approval queue: the latest
// transaction of a request that still awaits a decision.
type PendingApproval struct {
	TransactionID uint
	ItemID        string
	ItemName      string
	BorrowerName  string
	Status        entity.BorrowStatus
	RequestedAt   time.Time
	Message       string
}

// HistoryRecord is one row of a user's borrowing history.
type HistoryRecord struct {
	TransactionID uint
	ItemName      string
	Status        entity.BorrowStatus
	BorrowDate    time.Time
	ReturnDate    time.Time
}

func NewHistoryRecord(t entity.BorrowingTransaction) HistoryRecord {
	return HistoryRecord{
		TransactionID: t.ID,
		ItemName:      t.Request.Item.Name,
		Status:        t.Status,
		BorrowDate:    t.Request.CreatedAt,
		ReturnDate:    t.Request.ReturnDate,
	}
}
