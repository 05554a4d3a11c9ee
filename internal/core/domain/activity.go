package domain

import "time"

type ActivityAction string

const (
	ActivityMembershipRequested ActivityAction = "membership.requested"
	ActivityMembershipApproved  ActivityAction = "membership.approved"
	ActivityMembershipRejected  ActivityAction = "membership.rejected"
	ActivityMemberRemoved       ActivityAction = "membership.removed"
	ActivityMemberLeft          ActivityAction = "membership.left"
	ActivityListingCreated      ActivityAction = "listing.created"
	ActivityListingDeleted      ActivityAction = "listing.deleted"
	ActivityEventCreated        ActivityAction = "event.created"
	ActivityEventDeleted        ActivityAction = "event.deleted"
	ActivityCommunityUpdated    ActivityAction = "community.updated"
)

// Activity is one entry of a community's audit trail.
type Activity struct {
	ID          string         `json:"id" bson:"_id"`
	CommunityID string         `json:"community_id" bson:"community_id"`
	ActorID     string         `json:"actor_id" bson:"actor_id"`
	Action      ActivityAction `json:"action" bson:"action"`
	SubjectID   string         `json:"subject_id,omitempty" bson:"subject_id,omitempty"`
	CreatedAt   time.Time      `json:"created_at" bson:"created_at"`
}
