package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/openclub/lendhub/internal/domain/common/errorz"
	"github.com/openclub/lendhub/internal/domain/entity"
	"github.com/openclub/lendhub/internal/domain/utils/validator"
	"github.com/openclub/lendhub/pkg/generator"
	qr "github.com/openclub/lendhub/pkg/qrcode"
)

type ItemStorage interface {
	Create(ctx context.Context, item *entity.Item) (*entity.Item, error)
	Get(ctx context.Context, id string) (*entity.Item, error)
	GetByQRCode(ctx context.Context, qrCode string) (*entity.Item, error)
	Update(ctx context.Context, item *entity.Item) (*entity.Item, error)
	Delete(ctx context.Context, id string) error
	ListByClub(ctx context.Context, clubID string, tags []string) ([]entity.Item, error)
}

// ItemService manages the item catalogue. Item status is deliberately out of
// its reach; only the borrow workflow touches it.
type ItemService struct {
	storage ItemStorage
	clubs   ClubStorage
	qrCFG   qr.Config
}

func NewItemService(storage ItemStorage, clubs ClubStorage, qrCFG qr.Config) *ItemService {
	return &ItemService{
		storage: storage,
		clubs:   clubs,
		qrCFG:   qrCFG,
	}
}

// Create registers a new item. Items are born unowned and AVAILABLE, with a
// fresh scan code.
func (s *ItemService) Create(ctx context.Context, item *entity.Item) (*entity.Item, error) {
	if !validator.ItemName(item.Name) || !validator.Description(item.Description) {
		return nil, errorz.ErrInvalidName
	}
	item.ClubID = nil
	item.QRCode = generator.ScanCode()
	item.Status = entity.ItemStatusAvailable
	return s.storage.Create(ctx, item)
}

func (s *ItemService) Get(ctx context.Context, id string) (*entity.Item, error) {
	return s.storage.Get(ctx, id)
}

func (s *ItemService) ListByClub(ctx context.Context, clubID string, tags []string) ([]entity.Item, error) {
	return s.storage.ListByClub(ctx, clubID, tags)
}

// Update changes the item's descriptive fields. Status and scan code are not
// updatable from here.
func (s *ItemService) Update(ctx context.Context, id string, name, description *string, highRisk *bool, tags []string) (*entity.Item, error) {
	item, err := s.storage.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if name != nil {
		if !validator.ItemName(*name) {
			return nil, errorz.ErrInvalidName
		}
		item.Name = *name
	}
	if description != nil {
		if !validator.Description(*description) {
			return nil, errorz.ErrInvalidName
		}
		item.Description = *description
	}
	if highRisk != nil {
		item.HighRisk = *highRisk
	}
	if tags != nil {
		item.Tags = tags
	}
	return s.storage.Update(ctx, item)
}

// Transfer moves an item to another club, or out of any club when clubID is
// nil. Moving an item to where it already is fails loudly.
func (s *ItemService) Transfer(ctx context.Context, id string, clubID *string) (*entity.Item, error) {
	item, err := s.storage.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if clubID != nil {
		if _, err = s.clubs.Get(ctx, *clubID); err != nil {
			return nil, err
		}
		if item.OwnedBy(*clubID) {
			return nil, fmt.Errorf("%w: item already in the club", errorz.ErrClubMismatch)
		}
	} else if item.ClubID == nil {
		return nil, fmt.Errorf("%w: item has no club to leave", errorz.ErrClubMismatch)
	}

	item.ClubID = clubID
	item.Club = nil
	return s.storage.Update(ctx, item)
}

// Delete removes an item. Items with an open borrowing request cannot be
// deleted; the request chain must settle first.
func (s *ItemService) Delete(ctx context.Context, id string) error {
	item, err := s.storage.Get(ctx, id)
	if err != nil {
		return err
	}
	if item.Status == entity.ItemStatusUnavailable {
		return errors.New("item has an open borrowing request")
	}
	return s.storage.Delete(ctx, id)
}

// Label renders the item's scan code as a printable QR label.
func (s *ItemService) Label(ctx context.Context, id string) ([]byte, error) {
	item, err := s.storage.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.qrCFG.Render(item.QRCode)
}
