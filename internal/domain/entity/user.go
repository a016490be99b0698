package entity

import "time"

type User struct {
	ID          string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Email       string `gorm:"not null;uniqueIndex"`
	Name        string `gorm:"not null"`
	Provider    string `gorm:"not null"`
	ProviderID  string `gorm:"not null;uniqueIndex"`
	Picture     string
	GlobalRole  GlobalRole   `gorm:"not null;default:1"`
	Memberships []Membership `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// IsSuperuser reports whether the user holds site-wide privileges.
func (u *User) IsSuperuser() bool {
	return u.GlobalRole == GlobalRoleSuperuser
}
