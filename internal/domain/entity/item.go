package entity

import (
	"time"

	"github.com/lib/pq"
)

type ItemStatus string

const (
	ItemStatusAvailable   ItemStatus = "AVAILABLE"
	ItemStatusUnavailable ItemStatus = "UNAVAILABLE"
)

// Item is a single physical asset. An item may be unowned (ClubID nil) while
// it is being transferred between clubs; items outlive their club.
//
// Status is UNAVAILABLE exactly while an open borrowing request exists for the
// item. Only the borrow workflow mutates it.
type Item struct {
	ID          string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ClubID      *string `gorm:"type:uuid"`
	Club        *Club   `gorm:"constraint:OnDelete:SET NULL"`
	Name        string  `gorm:"not null"`
	Description string
	HighRisk    bool           `gorm:"not null;default:false"`
	QRCode      string         `gorm:"not null;uniqueIndex"`
	Status      ItemStatus     `gorm:"not null;default:AVAILABLE"`
	Tags        pq.StringArray `gorm:"type:text[]"`
}

func (i *Item) Available() bool {
	return i.Status == ItemStatusAvailable
}

// OwnedBy reports whether the item belongs to the given club.
func (i *Item) OwnedBy(clubID string) bool {
	return i.ClubID != nil && *i.ClubID == clubID
}
