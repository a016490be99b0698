package service

import (
	"context"
	"errors"
	"time"

	"github.com/openclub/lendhub/internal/domain/common/errorz"
	"github.com/openclub/lendhub/internal/domain/dto"
	"github.com/openclub/lendhub/internal/domain/entity"
	"github.com/openclub/lendhub/pkg/logger"
)

// ApprovalAction is a decision on a pending transaction.
type ApprovalAction string

const (
	ActionApprove ApprovalAction = "approve"
	ActionReject  ApprovalAction = "reject"
)

// ApprovalNotifier tells a club's approvers that a transaction awaits them.
// Implementations must be safe to call from a goroutine.
type ApprovalNotifier interface {
	SendApprovalRequest(to []string, itemName, borrowerName string)
}

// AuditRecorder persists a change record after a successful operation.
// Recording is best-effort; failures must be swallowed by the implementation.
type AuditRecorder interface {
	Record(ctx context.Context, table, operation string, actorID *string, oldValue, newValue interface{})
}

// BorrowService is the state machine driving a borrowing request's lifecycle.
// Every operation runs inside one storage transaction; on failure nothing is
// persisted, including item status flips. Audit records and notifications are
// emitted only after commit.
type BorrowService struct {
	storage      BorrowStorage
	memberships  MembershipStorage
	availability *AvailabilityStore
	guard        *ApprovalGuard
	audit        AuditRecorder
	notifier     ApprovalNotifier
	loanPeriod   time.Duration
	logger       *logger.Logger
}

func NewBorrowService(
	storage BorrowStorage,
	memberships MembershipStorage,
	guard *ApprovalGuard,
	audit AuditRecorder,
	notifier ApprovalNotifier,
	loanPeriod time.Duration,
	log *logger.Logger,
) *BorrowService {
	return &BorrowService{
		storage:      storage,
		memberships:  memberships,
		availability: NewAvailabilityStore(),
		guard:        guard,
		audit:        audit,
		notifier:     notifier,
		loanPeriod:   loanPeriod,
		logger:       log,
	}
}

const (
	borrowTable      = "item_borrowing_requests"
	transactionTable = "item_borrowing_transactions"
)

// InitiateBorrow starts a lending episode: it reserves the item under a row
// lock and opens the request's transaction chain. High-risk items start at
// PENDING_APPROVAL, everything else is approved on the spot.
func (s *BorrowService) InitiateBorrow(ctx context.Context, clubID, qrCode string, actor *entity.User, returnDate *time.Time) (*dto.BorrowResult, error) {
	if err := s.requireMember(ctx, actor, clubID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if returnDate != nil && !returnDate.After(now) {
		return nil, errorz.ErrInvalidDeadline
	}
	deadline := now.Add(s.loanPeriod)
	if returnDate != nil {
		deadline = *returnDate
	}

	var (
		item        *entity.Item
		transaction *entity.BorrowingTransaction
	)
	err := s.storage.Transaction(ctx, func(tx BorrowStorage) error {
		var txErr error
		item, txErr = s.availability.TryReserve(ctx, tx, clubID, qrCode)
		if txErr != nil {
			return txErr
		}

		request, txErr := tx.CreateRequest(ctx, &entity.BorrowingRequest{
			ItemID:     item.ID,
			BorrowerID: actor.ID,
			ReturnDate: deadline,
		})
		if txErr != nil {
			return txErr
		}

		status := entity.BorrowStatusApproved
		remarks := "Item borrowed"
		if item.HighRisk {
			status = entity.BorrowStatusPendingApproval
			remarks = "High-risk item, awaiting approval"
		}
		transaction, txErr = tx.CreateTransaction(ctx, &entity.BorrowingTransaction{
			RequestID:   request.ID,
			ProcessedAt: now,
			OperatorID:  nil,
			Status:      status,
			Remarks:     remarks,
		})
		return txErr
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, borrowTable, "INSERT", &actor.ID, nil, transaction)
	if transaction.Status == entity.BorrowStatusPendingApproval {
		go s.notifyApprovers(clubID, item.Name, actor.Name)
	}

	message := "Item successfully borrowed"
	if item.HighRisk {
		message = "Borrow request created, awaiting approval"
	}
	return &dto.BorrowResult{
		Message:       message,
		ItemName:      item.Name,
		Status:        transaction.Status,
		RequestID:     transaction.RequestID,
		TransactionID: transaction.ID,
	}, nil
}

// InitiateReturn hands a borrowed item back. Only the original borrower may
// return it; high-risk items go to PENDING_CONDITION_CHECK and stay reserved
// until an approver signs off on their condition.
func (s *BorrowService) InitiateReturn(ctx context.Context, clubID, qrCode string, actor *entity.User) (*dto.BorrowResult, error) {
	var (
		item        *entity.Item
		transaction *entity.BorrowingTransaction
	)
	err := s.storage.Transaction(ctx, func(tx BorrowStorage) error {
		var txErr error
		item, txErr = tx.LockItemByQRCode(ctx, qrCode)
		if txErr != nil {
			return txErr
		}
		if !item.OwnedBy(clubID) {
			return errorz.ErrClubMismatch
		}
		if item.Status != entity.ItemStatusUnavailable {
			return errorz.ErrItemNotBorrowed
		}
		if txErr = s.requireMember(ctx, actor, clubID); txErr != nil {
			return txErr
		}

		latest, txErr := tx.LatestTransactionByItem(ctx, item.ID)
		if txErr != nil {
			return txErr
		}
		if latest.Status != entity.BorrowStatusApproved {
			return errorz.ErrNotApproved
		}
		if latest.Request.BorrowerID != actor.ID {
			return errorz.ErrForbidden
		}

		status := entity.BorrowStatusCompleted
		remarks := "Item returned by user"
		if item.HighRisk {
			status = entity.BorrowStatusPendingConditionCheck
			remarks = "Item returned, pending condition check"
		} else if txErr = s.availability.Release(ctx, tx, item); txErr != nil {
			return txErr
		}

		transaction, txErr = tx.CreateTransaction(ctx, &entity.BorrowingTransaction{
			RequestID:   latest.RequestID,
			ProcessedAt: time.Now().UTC(),
			OperatorID:  nil,
			Status:      status,
			Remarks:     remarks,
		})
		return txErr
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, transactionTable, "INSERT", &actor.ID, nil, transaction)
	if transaction.Status == entity.BorrowStatusPendingConditionCheck {
		go s.notifyApprovers(clubID, item.Name, actor.Name)
	}

	message := "Item successfully returned"
	if item.HighRisk {
		message = "Item returned, pending condition check"
	}
	return &dto.BorrowResult{
		Message:       message,
		ItemName:      item.Name,
		Status:        transaction.Status,
		RequestID:     transaction.RequestID,
		TransactionID: transaction.ID,
	}, nil
}

// ProcessApproval applies an approver's decision to the latest pending
// transaction of a request and appends the resulting state node, stamped with
// the operator.
func (s *BorrowService) ProcessApproval(ctx context.Context, transactionID uint, actor *entity.User, action ApprovalAction) (*dto.BorrowResult, error) {
	if action != ActionApprove && action != ActionReject {
		return nil, errorz.ErrInvalidAction
	}

	var (
		item        *entity.Item
		transaction *entity.BorrowingTransaction
	)
	err := s.storage.Transaction(ctx, func(tx BorrowStorage) error {
		pending, txErr := tx.GetTransaction(ctx, transactionID)
		if txErr != nil {
			return txErr
		}

		// Lock the item row so the decision serializes with concurrent
		// borrows and returns of the same item.
		item, txErr = tx.LockItem(ctx, pending.Request.ItemID)
		if txErr != nil {
			return txErr
		}

		allowed, txErr := s.guard.CanApprove(ctx, actor, item.ClubID)
		if txErr != nil {
			return txErr
		}
		if !allowed {
			return errorz.ErrForbidden
		}

		latest, txErr := tx.LatestTransactionByRequest(ctx, pending.RequestID)
		if txErr != nil {
			return txErr
		}
		if latest.ID != pending.ID || !latest.Status.Actionable() {
			return errorz.ErrInvalidState
		}

		next, remarks, release := s.transition(latest.Status, action)
		if release {
			if txErr = s.availability.Release(ctx, tx, item); txErr != nil {
				return txErr
			}
		}

		transaction, txErr = tx.CreateTransaction(ctx, &entity.BorrowingTransaction{
			RequestID:   latest.RequestID,
			ProcessedAt: time.Now().UTC(),
			OperatorID:  &actor.ID,
			Status:      next,
			Remarks:     remarks,
		})
		return txErr
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, transactionTable, "INSERT", &actor.ID, nil, transaction)

	return &dto.BorrowResult{
		Message:       transaction.Remarks,
		ItemName:      item.Name,
		Status:        transaction.Status,
		RequestID:     transaction.RequestID,
		TransactionID: transaction.ID,
	}, nil
}

// transition maps an actionable status and a decision to the next chain node.
// The release flag tells the caller whether the item goes back to AVAILABLE.
func (s *BorrowService) transition(current entity.BorrowStatus, action ApprovalAction) (entity.BorrowStatus, string, bool) {
	if current == entity.BorrowStatusPendingApproval {
		if action == ActionApprove {
			return entity.BorrowStatusApproved, "Borrow request approved", false
		}
		return entity.BorrowStatusRejected, "Borrow request rejected", s.guard.Policy().ReleaseOnReject
	}
	// PENDING_CONDITION_CHECK, guaranteed by the Actionable check above.
	if action == ActionApprove {
		return entity.BorrowStatusCompleted, "Condition check passed, item returned", true
	}
	return entity.BorrowStatusRejected, "Condition check failed", false
}

func (s *BorrowService) requireMember(ctx context.Context, actor *entity.User, clubID string) error {
	if actor.IsSuperuser() {
		return nil
	}
	_, err := s.memberships.Get(ctx, actor.ID, clubID)
	if err != nil {
		if errors.Is(err, errorz.ErrMembershipNotFound) {
			return errorz.ErrForbidden
		}
		return err
	}
	return nil
}

func (s *BorrowService) notifyApprovers(clubID, itemName, borrowerName string) {
	if s.notifier == nil {
		return
	}

	role := s.guard.Policy().ApproverRole
	memberships, err := s.memberships.ListByClub(context.Background(), clubID, &role)
	if err != nil {
		s.logger.Errorf("failed to list approvers for club %s: %v", clubID, err)
		return
	}

	emails := make([]string, 0, len(memberships))
	for _, m := range memberships {
		if m.User.Email != "" {
			emails = append(emails, m.User.Email)
		}
	}
	if len(emails) == 0 {
		return
	}
	s.notifier.SendApprovalRequest(emails, itemName, borrowerName)
}
