package service

import (
	"context"

	"github.com/openclub/lendhub/internal/domain/common/errorz"
	"github.com/openclub/lendhub/internal/domain/dto"
	"github.com/openclub/lendhub/internal/domain/entity"
)

// HistoryService is the read side of the borrow workflow. It only sees
// committed state; nothing here mutates.
type HistoryService struct {
	storage BorrowStorage
	guard   *ApprovalGuard
}

func NewHistoryService(storage BorrowStorage, guard *ApprovalGuard) *HistoryService {
	return &HistoryService{
		storage: storage,
		guard:   guard,
	}
}

// UserHistory returns every transaction across requests the user borrowed,
// newest first.
func (s *HistoryService) UserHistory(ctx context.Context, userID string) ([]dto.HistoryRecord, error) {
	transactions, err := s.storage.TransactionsByBorrower(ctx, userID)
	if err != nil {
		return nil, err
	}

	records := make([]dto.HistoryRecord, 0, len(transactions))
	for _, t := range transactions {
		records = append(records, dto.NewHistoryRecord(t))
	}
	return records, nil
}

// PendingApprovals returns the club's approval queue: the latest transaction
// of each request still awaiting a decision, newest first. Only users the
// approval guard accepts may read it.
func (s *HistoryService) PendingApprovals(ctx context.Context, clubID string, actor *entity.User, offset, limit int) ([]dto.PendingApproval, error) {
	allowed, err := s.guard.CanApprove(ctx, actor, &clubID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, errorz.ErrForbidden
	}

	transactions, err := s.storage.PendingTransactionsByClub(ctx, clubID, offset, limit)
	if err != nil {
		return nil, err
	}

	queue := make([]dto.PendingApproval, 0, len(transactions))
	for _, t := range transactions {
		queue = append(queue, dto.PendingApproval{
			TransactionID: t.ID,
			ItemID:        t.Request.ItemID,
			ItemName:      t.Request.Item.Name,
			BorrowerName:  t.Request.Borrower.Name,
			Status:        t.Status,
			RequestedAt:   t.ProcessedAt,
			Message:       t.Remarks,
		})
	}
	return queue, nil
}
