package service

import (
	"context"

	"github.com/openclub/lendhub/internal/domain/common/errorz"
	"github.com/openclub/lendhub/internal/domain/entity"
)

// AvailabilityStore owns item status transitions. All methods must be called
// inside a BorrowStorage transaction: the row lock taken by TryReserve is what
// serializes concurrent borrow attempts on the same physical item.
type AvailabilityStore struct{}

func NewAvailabilityStore() *AvailabilityStore {
	return &AvailabilityStore{}
}

// TryReserve resolves an item by scan code, verifies club ownership and
// availability under an exclusive row lock, and flips the item to UNAVAILABLE.
// At most one concurrent caller can succeed between two AVAILABLE periods.
func (a *AvailabilityStore) TryReserve(ctx context.Context, tx BorrowStorage, clubID, qrCode string) (*entity.Item, error) {
	item, err := tx.LockItemByQRCode(ctx, qrCode)
	if err != nil {
		return nil, err
	}
	if !item.OwnedBy(clubID) {
		return nil, errorz.ErrClubMismatch
	}
	if !item.Available() {
		return nil, errorz.ErrItemNotAvailable
	}
	if err = tx.UpdateItemStatus(ctx, item.ID, entity.ItemStatusUnavailable); err != nil {
		return nil, err
	}
	item.Status = entity.ItemStatusUnavailable
	return item, nil
}

// Release puts the item back into circulation. The caller must already hold
// the item's row lock.
func (a *AvailabilityStore) Release(ctx context.Context, tx BorrowStorage, item *entity.Item) error {
	if err := tx.UpdateItemStatus(ctx, item.ID, entity.ItemStatusAvailable); err != nil {
		return err
	}
	item.Status = entity.ItemStatusAvailable
	return nil
}
