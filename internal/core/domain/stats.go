package domain

// CommunityStats backs the community admin dashboard.
type CommunityStats struct {
	CommunityID     string `json:"community_id"`
	Members         int64  `json:"members"`
	PendingRequests int64  `json:"pending_requests"`
	ActiveListings  int64  `json:"active_listings"`
	Offers          int64  `json:"offers"`
	Demands         int64  `json:"demands"`
	UpcomingEvents  int64  `json:"upcoming_events"`
}

// PlatformStats backs the superadmin dashboard.
type PlatformStats struct {
	Users       int64 `json:"users"`
	Communities int64 `json:"communities"`
}
