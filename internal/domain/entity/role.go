package entity

import "fmt"

// GlobalRole is a site-wide role. SUPERUSER passes every club-scoped check
// without needing a membership.
type GlobalRole int

const (
	GlobalRoleUser GlobalRole = iota + 1
	GlobalRoleSuperuser
)

func (r GlobalRole) String() string {
	switch r {
	case GlobalRoleUser:
		return "USER"
	case GlobalRoleSuperuser:
		return "SUPERUSER"
	}
	return fmt.Sprintf("GlobalRole(%d)", int(r))
}

// ClubRole is a per-club role with a total order: MEMBER < MODERATOR < ADMIN.
type ClubRole int

const (
	ClubRoleMember ClubRole = iota + 1
	ClubRoleModerator
	ClubRoleAdmin
)

func (r ClubRole) Valid() bool {
	return r >= ClubRoleMember && r <= ClubRoleAdmin
}

// AtLeast reports whether r grants at least the privileges of required.
func (r ClubRole) AtLeast(required ClubRole) bool {
	return r >= required
}

func (r ClubRole) String() string {
	switch r {
	case ClubRoleMember:
		return "MEMBER"
	case ClubRoleModerator:
		return "MODERATOR"
	case ClubRoleAdmin:
		return "ADMIN"
	}
	return fmt.Sprintf("ClubRole(%d)", int(r))
}

// ParseClubRole accepts the textual role forms used at the API and storage
// boundaries. Core logic only ever sees ClubRole values.
func ParseClubRole(s string) (ClubRole, error) {
	switch s {
	case "MEMBER":
		return ClubRoleMember, nil
	case "MODERATOR":
		return ClubRoleModerator, nil
	case "ADMIN":
		return ClubRoleAdmin, nil
	}
	return 0, fmt.Errorf("unknown club role %q", s)
}

// CanAssign reports whether an actor with role r may change the target's role
// from current to next. The actor must outrank both the role being replaced
// and the role being granted; superusers never reach this check.
func (r ClubRole) CanAssign(current, next ClubRole) bool {
	return r > current && r > next
}
