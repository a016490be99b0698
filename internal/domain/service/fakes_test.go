package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/openclub/lendhub/internal/domain/common/errorz"
	"github.com/openclub/lendhub/internal/domain/entity"
	"github.com/openclub/lendhub/pkg/logger"
)

func testLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// fakeBorrowStorage is an in-memory BorrowStorage. Its mutex serializes
// Transaction calls the way the database row lock serializes real ones, and a
// snapshot taken at transaction start restores state when the callback fails.
type fakeBorrowStorage struct {
	mu           sync.Mutex
	items        map[string]*entity.Item
	requests     map[string]*entity.BorrowingRequest
	transactions []*entity.BorrowingTransaction
	users        map[string]*entity.User
	nextReqID    int
	nextTxID     uint
}

func newFakeBorrowStorage() *fakeBorrowStorage {
	return &fakeBorrowStorage{
		items:    make(map[string]*entity.Item),
		requests: make(map[string]*entity.BorrowingRequest),
		users:    make(map[string]*entity.User),
	}
}

func (f *fakeBorrowStorage) addItem(item entity.Item) {
	f.items[item.ID] = &item
}

func (f *fakeBorrowStorage) addUser(user entity.User) {
	f.users[user.ID] = &user
}

func (f *fakeBorrowStorage) snapshot() *fakeBorrowStorage {
	s := newFakeBorrowStorage()
	for id, item := range f.items {
		cp := *item
		s.items[id] = &cp
	}
	for id, req := range f.requests {
		cp := *req
		s.requests[id] = &cp
	}
	for _, t := range f.transactions {
		cp := *t
		s.transactions = append(s.transactions, &cp)
	}
	s.nextReqID = f.nextReqID
	s.nextTxID = f.nextTxID
	return s
}

func (f *fakeBorrowStorage) restore(s *fakeBorrowStorage) {
	f.items = s.items
	f.requests = s.requests
	f.transactions = s.transactions
	f.nextReqID = s.nextReqID
	f.nextTxID = s.nextTxID
}

func (f *fakeBorrowStorage) Transaction(_ context.Context, fn func(tx BorrowStorage) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	before := f.snapshot()
	if err := fn(f); err != nil {
		f.restore(before)
		return err
	}
	return nil
}

func (f *fakeBorrowStorage) LockItemByQRCode(_ context.Context, qrCode string) (*entity.Item, error) {
	for _, item := range f.items {
		if item.QRCode == qrCode {
			cp := *item
			return &cp, nil
		}
	}
	return nil, errorz.ErrItemNotFound
}

func (f *fakeBorrowStorage) LockItem(_ context.Context, id string) (*entity.Item, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, errorz.ErrItemNotFound
	}
	cp := *item
	return &cp, nil
}

func (f *fakeBorrowStorage) UpdateItemStatus(_ context.Context, itemID string, status entity.ItemStatus) error {
	item, ok := f.items[itemID]
	if !ok {
		return errorz.ErrItemNotFound
	}
	item.Status = status
	return nil
}

func (f *fakeBorrowStorage) CreateRequest(_ context.Context, request *entity.BorrowingRequest) (*entity.BorrowingRequest, error) {
	f.nextReqID++
	request.ID = fmt.Sprintf("request-%d", f.nextReqID)
	request.CreatedAt = time.Now().UTC()
	cp := *request
	f.requests[request.ID] = &cp
	return request, nil
}

func (f *fakeBorrowStorage) CreateTransaction(_ context.Context, transaction *entity.BorrowingTransaction) (*entity.BorrowingTransaction, error) {
	f.nextTxID++
	transaction.ID = f.nextTxID
	cp := *transaction
	f.transactions = append(f.transactions, &cp)
	return transaction, nil
}

func (f *fakeBorrowStorage) GetTransaction(_ context.Context, id uint) (*entity.BorrowingTransaction, error) {
	for _, t := range f.transactions {
		if t.ID == id {
			cp := *t
			f.preload(&cp)
			return &cp, nil
		}
	}
	return nil, errorz.ErrTransactionNotFound
}

func (f *fakeBorrowStorage) LatestTransactionByItem(_ context.Context, itemID string) (*entity.BorrowingTransaction, error) {
	var latest *entity.BorrowingTransaction
	for _, t := range f.transactions {
		req, ok := f.requests[t.RequestID]
		if !ok || req.ItemID != itemID {
			continue
		}
		if latest == nil || t.ID > latest.ID {
			latest = t
		}
	}
	if latest == nil {
		return nil, errorz.ErrTransactionNotFound
	}
	cp := *latest
	f.preload(&cp)
	return &cp, nil
}

func (f *fakeBorrowStorage) LatestTransactionByRequest(_ context.Context, requestID string) (*entity.BorrowingTransaction, error) {
	var latest *entity.BorrowingTransaction
	for _, t := range f.transactions {
		if t.RequestID != requestID {
			continue
		}
		if latest == nil || t.ID > latest.ID {
			latest = t
		}
	}
	if latest == nil {
		return nil, errorz.ErrTransactionNotFound
	}
	cp := *latest
	f.preload(&cp)
	return &cp, nil
}

func (f *fakeBorrowStorage) TransactionsByBorrower(_ context.Context, borrowerID string) ([]entity.BorrowingTransaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []entity.BorrowingTransaction
	for i := len(f.transactions) - 1; i >= 0; i-- {
		t := f.transactions[i]
		req, ok := f.requests[t.RequestID]
		if !ok || req.BorrowerID != borrowerID {
			continue
		}
		cp := *t
		f.preload(&cp)
		result = append(result, cp)
	}
	return result, nil
}

func (f *fakeBorrowStorage) PendingTransactionsByClub(_ context.Context, clubID string, offset, limit int) ([]entity.BorrowingTransaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	latestPerRequest := make(map[string]*entity.BorrowingTransaction)
	for _, t := range f.transactions {
		if cur, ok := latestPerRequest[t.RequestID]; !ok || t.ID > cur.ID {
			latestPerRequest[t.RequestID] = t
		}
	}

	var pending []entity.BorrowingTransaction
	for id := f.nextTxID; id >= 1; id-- {
		for _, t := range latestPerRequest {
			if t.ID != id || !t.Status.Actionable() {
				continue
			}
			req := f.requests[t.RequestID]
			item := f.items[req.ItemID]
			if item == nil || !item.OwnedBy(clubID) {
				continue
			}
			cp := *t
			f.preload(&cp)
			pending = append(pending, cp)
		}
	}

	if offset >= len(pending) {
		return nil, nil
	}
	end := offset + limit
	if end > len(pending) {
		end = len(pending)
	}
	return pending[offset:end], nil
}

func (f *fakeBorrowStorage) preload(t *entity.BorrowingTransaction) {
	if req, ok := f.requests[t.RequestID]; ok {
		t.Request = *req
		if item, ok := f.items[req.ItemID]; ok {
			t.Request.Item = *item
		}
		if borrower, ok := f.users[req.BorrowerID]; ok {
			t.Request.Borrower = *borrower
		}
	}
}

// openRequests counts requests whose latest transaction is not terminal.
func (f *fakeBorrowStorage) openRequests(itemID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	latestPerRequest := make(map[string]*entity.BorrowingTransaction)
	for _, t := range f.transactions {
		if cur, ok := latestPerRequest[t.RequestID]; !ok || t.ID > cur.ID {
			latestPerRequest[t.RequestID] = t
		}
	}

	open := 0
	for requestID, t := range latestPerRequest {
		if f.requests[requestID].ItemID == itemID && !t.Status.Terminal() {
			open++
		}
	}
	return open
}

func (f *fakeBorrowStorage) itemStatus(itemID string) entity.ItemStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.items[itemID].Status
}

type fakeMembershipStorage struct {
	mu          sync.Mutex
	memberships map[string]*entity.Membership
}

func newFakeMembershipStorage() *fakeMembershipStorage {
	return &fakeMembershipStorage{
		memberships: make(map[string]*entity.Membership),
	}
}

func membershipKey(userID, clubID string) string {
	return userID + "|" + clubID
}

func (f *fakeMembershipStorage) add(user entity.User, clubID string, role entity.ClubRole) {
	f.memberships[membershipKey(user.ID, clubID)] = &entity.Membership{
		UserID: user.ID,
		ClubID: clubID,
		Role:   role,
		User:   user,
	}
}

func (f *fakeMembershipStorage) Create(_ context.Context, membership *entity.Membership) (*entity.Membership, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *membership
	f.memberships[membershipKey(membership.UserID, membership.ClubID)] = &cp
	return membership, nil
}

func (f *fakeMembershipStorage) Get(_ context.Context, userID, clubID string) (*entity.Membership, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.memberships[membershipKey(userID, clubID)]
	if !ok {
		return nil, errorz.ErrMembershipNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMembershipStorage) Update(_ context.Context, membership *entity.Membership) (*entity.Membership, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *membership
	f.memberships[membershipKey(membership.UserID, membership.ClubID)] = &cp
	return membership, nil
}

func (f *fakeMembershipStorage) Delete(_ context.Context, userID, clubID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.memberships, membershipKey(userID, clubID))
	return nil
}

func (f *fakeMembershipStorage) ListByClub(_ context.Context, clubID string, role *entity.ClubRole) ([]entity.Membership, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []entity.Membership
	for _, m := range f.memberships {
		if m.ClubID != clubID {
			continue
		}
		if role != nil && m.Role != *role {
			continue
		}
		result = append(result, *m)
	}
	return result, nil
}

func (f *fakeMembershipStorage) ListByUser(_ context.Context, userID string) ([]entity.Membership, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []entity.Membership
	for _, m := range f.memberships {
		if m.UserID == userID {
			result = append(result, *m)
		}
	}
	return result, nil
}

type fakeAuditRecorder struct {
	mu      sync.Mutex
	records []string
}

func (f *fakeAuditRecorder) Record(_ context.Context, table, operation string, _ *string, _, _ interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, operation+" "+table)
}

func (f *fakeAuditRecorder) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

type fakeNotifier struct {
	calls chan []string
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{calls: make(chan []string, 8)}
}

func (f *fakeNotifier) SendApprovalRequest(to []string, _, _ string) {
	f.calls <- to
}
