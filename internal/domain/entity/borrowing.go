package entity

import "time"

type BorrowStatus string

const (
	BorrowStatusPendingApproval       BorrowStatus = "PENDING_APPROVAL"
	BorrowStatusApproved              BorrowStatus = "APPROVED"
	BorrowStatusPendingConditionCheck BorrowStatus = "PENDING_CONDITION_CHECK"
	BorrowStatusCompleted             BorrowStatus = "COMPLETED"
	BorrowStatusRejected              BorrowStatus = "REJECTED"
)

// Terminal reports whether the status closes a request. No transaction may be
// appended to a request once its latest transaction is terminal.
func (s BorrowStatus) Terminal() bool {
	return s == BorrowStatusCompleted || s == BorrowStatusRejected
}

// Actionable reports whether the status awaits an approver's decision.
func (s BorrowStatus) Actionable() bool {
	return s == BorrowStatusPendingApproval || s == BorrowStatusPendingConditionCheck
}

// BorrowingRequest is one lending episode: one item, one borrower. The request
// itself is immutable; its lifecycle advances through child transactions.
type BorrowingRequest struct {
	ID         string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt  time.Time
	ItemID     string `gorm:"not null;type:uuid"`
	Item       Item   `gorm:"constraint:OnDelete:CASCADE"`
	BorrowerID string `gorm:"not null;type:uuid"`
	Borrower   User   `gorm:"foreignKey:BorrowerID"`
	ReturnDate time.Time `gorm:"not null"`
}

// BorrowingTransaction is a state node in a request's chain. The serial id
// gives the chain its order: the request's current status is the status of the
// transaction with the highest id. OperatorID is nil for borrower-initiated
// nodes and set when a human approver acted.
type BorrowingTransaction struct {
	ID          uint `gorm:"primaryKey"`
	RequestID   string           `gorm:"not null;type:uuid;index"`
	Request     BorrowingRequest `gorm:"foreignKey:RequestID;constraint:OnDelete:CASCADE"`
	ProcessedAt time.Time        `gorm:"not null"`
	OperatorID  *string          `gorm:"type:uuid"`
	Status      BorrowStatus     `gorm:"not null"`
	Remarks     string
}

func (BorrowingRequest) TableName() string { return "item_borrowing_requests" }

func (BorrowingTransaction) TableName() string { return "item_borrowing_transactions" }
