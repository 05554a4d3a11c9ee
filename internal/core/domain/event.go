package domain

import "time"

// Event is a community gathering (market day, workshop, ...).
type Event struct {
	ID          string    `json:"id" bson:"_id"`
	CommunityID string    `json:"community_id" bson:"community_id"`
	AuthorID    string    `json:"author_id" bson:"author_id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Location    string    `json:"location" bson:"location"`
	StartsAt    time.Time `json:"starts_at" bson:"starts_at"`
	EndsAt      time.Time `json:"ends_at" bson:"ends_at"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}
