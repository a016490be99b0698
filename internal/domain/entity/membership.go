package entity

import "time"

// Membership joins a user and a club with the role the user holds there.
// The composite key keeps memberships unique per (user, club).
type Membership struct {
	UserID   string   `gorm:"primaryKey;type:uuid"`
	ClubID   string   `gorm:"primaryKey;type:uuid"`
	Role     ClubRole `gorm:"not null;default:1"`
	JoinedAt time.Time

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Club Club `gorm:"foreignKey:ClubID;constraint:OnDelete:CASCADE"`
}
