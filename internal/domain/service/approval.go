package service

import (
	"context"
	"errors"

	"github.com/openclub/lendhub/internal/domain/common/errorz"
	"github.com/openclub/lendhub/internal/domain/entity"
)

// ApprovalPolicy configures who may decide pending transactions and what a
// rejection does to the item. The approver rule is deliberately separate from
// the general role order: the product currently wants MODERATOR exactly, not
// "moderator or above".
type ApprovalPolicy struct {
	// ApproverRole is the club role compared against the actor's membership.
	ApproverRole entity.ClubRole
	// Exact requires the role to match ApproverRole exactly instead of
	// being at least ApproverRole.
	Exact bool
	// ReleaseOnReject makes rejecting a PENDING_APPROVAL transaction set
	// the item back to AVAILABLE instead of leaving it parked.
	ReleaseOnReject bool
}

// DefaultApprovalPolicy matches the latest workflow revision.
func DefaultApprovalPolicy() ApprovalPolicy {
	return ApprovalPolicy{
		ApproverRole:    entity.ClubRoleModerator,
		Exact:           true,
		ReleaseOnReject: false,
	}
}

// ApprovalGuard decides whether an actor may approve or reject a pending
// transaction in a club's workflow.
type ApprovalGuard struct {
	policy      ApprovalPolicy
	memberships MembershipStorage
}

func NewApprovalGuard(policy ApprovalPolicy, memberships MembershipStorage) *ApprovalGuard {
	return &ApprovalGuard{
		policy:      policy,
		memberships: memberships,
	}
}

func (g *ApprovalGuard) Policy() ApprovalPolicy {
	return g.policy
}

// CanApprove reports whether user may decide pending transactions for the
// given club. Superusers pass unconditionally. Items without an owning club
// are superuser territory only.
func (g *ApprovalGuard) CanApprove(ctx context.Context, user *entity.User, clubID *string) (bool, error) {
	if user.IsSuperuser() {
		return true, nil
	}
	if clubID == nil {
		return false, nil
	}

	membership, err := g.memberships.Get(ctx, user.ID, *clubID)
	if err != nil {
		if errors.Is(err, errorz.ErrMembershipNotFound) {
			return false, nil
		}
		return false, err
	}

	if g.policy.Exact {
		return membership.Role == g.policy.ApproverRole, nil
	}
	return membership.Role.AtLeast(g.policy.ApproverRole), nil
}
