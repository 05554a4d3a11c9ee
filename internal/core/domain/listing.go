package domain

import "time"

type ListingType string

const (
	ListingOffer  ListingType = "OFFER"
	ListingDemand ListingType = "DEMAND"
)

type ListingStatus string

const (
	ListingActive   ListingStatus = "ACTIVE"
	ListingInactive ListingStatus = "INACTIVE"
	ListingExpired  ListingStatus = "EXPIRED"
)

// CanTransitionTo reports whether an author may move a listing to next.
// EXPIRED is set by the expiry sweep only and is terminal.
func (s ListingStatus) CanTransitionTo(next ListingStatus) bool {
	switch s {
	case ListingActive:
		return next == ListingInactive || next == ListingActive
	case ListingInactive:
		return next == ListingActive || next == ListingInactive
	default:
		return false
	}
}

// Listing is an offer or a demand posted inside a community.
type Listing struct {
	ID          string        `json:"id" bson:"_id"`
	CommunityID string        `json:"community_id" bson:"community_id"`
	AuthorID    string        `json:"author_id" bson:"author_id"`
	Type        ListingType   `json:"type" bson:"type"`
	Category    string        `json:"category" bson:"category"`
	Title       string        `json:"title" bson:"title"`
	Description string        `json:"description" bson:"description"`
	Price       *float64      `json:"price,omitempty" bson:"price,omitempty"`
	Status      ListingStatus `json:"status" bson:"status"`
	ExpiresAt   *time.Time    `json:"expires_at,omitempty" bson:"expires_at,omitempty"`
	CreatedAt   time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" bson:"updated_at"`
}
