package service

import (
	"context"
	"errors"
	"time"

	"github.com/openclub/lendhub/internal/domain/common/errorz"
	"github.com/openclub/lendhub/internal/domain/dto"
	"github.com/openclub/lendhub/internal/domain/entity"
)

type MembershipService struct {
	storage MembershipStorage
}

func NewMembershipService(storage MembershipStorage) *MembershipService {
	return &MembershipService{
		storage: storage,
	}
}

// Add enrolls a user into a club as MEMBER. Only club admins (or superusers)
// may enroll other people.
func (s *MembershipService) Add(ctx context.Context, actor *entity.User, clubID, userID string) (*entity.Membership, error) {
	if !actor.IsSuperuser() && actor.ID != userID {
		acting, err := s.storage.Get(ctx, actor.ID, clubID)
		if err != nil {
			if errors.Is(err, errorz.ErrMembershipNotFound) {
				return nil, errorz.ErrForbidden
			}
			return nil, err
		}
		if !acting.Role.AtLeast(entity.ClubRoleAdmin) {
			return nil, errorz.ErrForbidden
		}
	}

	return s.storage.Create(ctx, &entity.Membership{
		UserID:   userID,
		ClubID:   clubID,
		Role:     entity.ClubRoleMember,
		JoinedAt: time.Now().UTC(),
	})
}

// SetRole changes a member's club role. The actor must outrank both the
// target's current role and the role being granted; superusers bypass the
// check entirely. Self-escalation fails the same strict comparison.
func (s *MembershipService) SetRole(ctx context.Context, actor *entity.User, clubID, userID string, role entity.ClubRole) (*entity.Membership, error) {
	if !role.Valid() {
		return nil, errorz.ErrInvalidRole
	}

	target, err := s.storage.Get(ctx, userID, clubID)
	if err != nil {
		return nil, err
	}

	if !actor.IsSuperuser() {
		acting, err := s.storage.Get(ctx, actor.ID, clubID)
		if err != nil {
			if errors.Is(err, errorz.ErrMembershipNotFound) {
				return nil, errorz.ErrForbidden
			}
			return nil, err
		}
		if !acting.Role.CanAssign(target.Role, role) {
			return nil, errorz.ErrForbidden
		}
	}

	target.Role = role
	return s.storage.Update(ctx, target)
}

// Remove drops a membership. Members may leave on their own; removing someone
// else follows the same strict outranking rule as role changes.
func (s *MembershipService) Remove(ctx context.Context, actor *entity.User, clubID, userID string) error {
	if !actor.IsSuperuser() && actor.ID != userID {
		acting, err := s.storage.Get(ctx, actor.ID, clubID)
		if err != nil {
			if errors.Is(err, errorz.ErrMembershipNotFound) {
				return errorz.ErrForbidden
			}
			return err
		}
		target, err := s.storage.Get(ctx, userID, clubID)
		if err != nil {
			return err
		}
		if acting.Role <= target.Role {
			return errorz.ErrForbidden
		}
	}
	return s.storage.Delete(ctx, userID, clubID)
}

// ListMembers lists club members, optionally filtered by role. Any member of
// the club (or a superuser) may look.
func (s *MembershipService) ListMembers(ctx context.Context, actor *entity.User, clubID string, role *entity.ClubRole) ([]dto.ClubMember, error) {
	if !actor.IsSuperuser() {
		if _, err := s.storage.Get(ctx, actor.ID, clubID); err != nil {
			if errors.Is(err, errorz.ErrMembershipNotFound) {
				return nil, errorz.ErrForbidden
			}
			return nil, err
		}
	}

	memberships, err := s.storage.ListByClub(ctx, clubID, role)
	if err != nil {
		return nil, err
	}

	members := make([]dto.ClubMember, 0, len(memberships))
	for _, m := range memberships {
		members = append(members, dto.NewClubMember(m))
	}
	return members, nil
}
