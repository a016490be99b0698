package dto

import "github.com/openclub/lendhub/internal/domain/entity"

// ProviderIdentity is the verified identity the external identity provider
// hands over after login. The service never sees raw OAuth material.
type ProviderIdentity struct {
	Provider   string
	ProviderID string
	Email      string
	Name       string
	Picture    string
}

// ClubMember is a membership row joined with the member's profile.
type ClubMember struct {
	UserID string
	Name   string
	Email  string
	Role   entity.ClubRole
}

func NewClubMember(m entity.Membership) ClubMember {
	return ClubMember{
		UserID: m.UserID,
		Name:   m.User.Name,
		Email:  m.User.Email,
		Role:   m.Role,
	}
}

// UserClub is a club the user belongs to, with their role there.
type UserClub struct {
	ClubID   string
	ClubName string
	Role     entity.ClubRole
}

func NewUserClub(m entity.Membership) UserClub {
	return UserClub{
		ClubID:   m.ClubID,
		ClubName: m.Club.Name,
		Role:     m.Role,
	}
}
