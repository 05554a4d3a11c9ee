package domain

import "time"

type MembershipStatus string

const (
	MembershipPending  MembershipStatus = "PENDING"
	MembershipApproved MembershipStatus = "APPROVED"
	MembershipRejected MembershipStatus = "REJECTED"
)

type MembershipRole string

const (
	MemberRoleMember MembershipRole = "MEMBER"
	MemberRoleAdmin  MembershipRole = "ADMIN"
)

// Membership links a user to a community. There is at most one per
// (community, user) pair.
type Membership struct {
	ID          string           `json:"id" bson:"_id"`
	CommunityID string           `json:"community_id" bson:"community_id"`
	UserID      string           `json:"user_id" bson:"user_id"`
	Role        MembershipRole   `json:"role" bson:"role"`
	Status      MembershipStatus `json:"status" bson:"status"`
	Message     string           `json:"message,omitempty" bson:"message,omitempty"`
	CreatedAt   time.Time        `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at" bson:"updated_at"`
}

// IsActiveAdmin reports whether the membership grants community administration.
func (m *Membership) IsActiveAdmin() bool {
	return m != nil && m.Status == MembershipApproved && m.Role == MemberRoleAdmin
}
