package service

import (
	"context"
	"testing"
	"time"

	"github.com/ecomama/marketplace/internal/core/domain"
)

func TestStatsService_Community(t *testing.T) {
	users := newStubUserRepo()
	communities := newStubCommunityRepo()
	communities.byID["c1"] = &domain.Community{ID: "c1"}
	memberships := newStubMembershipRepo()
	memberships.seed(domain.Membership{CommunityID: "c1", UserID: "a", Status: domain.MembershipApproved})
	memberships.seed(domain.Membership{CommunityID: "c1", UserID: "b", Status: domain.MembershipApproved})
	memberships.seed(domain.Membership{CommunityID: "c1", UserID: "c", Status: domain.MembershipPending})
	memberships.seed(domain.Membership{CommunityID: "c2", UserID: "a", Status: domain.MembershipApproved})

	listings := newStubListingRepo()
	listings.byID["l1"] = &domain.Listing{ID: "l1", CommunityID: "c1", Type: domain.ListingOffer, Status: domain.ListingActive}
	listings.byID["l2"] = &domain.Listing{ID: "l2", CommunityID: "c1", Type: domain.ListingDemand, Status: domain.ListingActive}
	listings.byID["l3"] = &domain.Listing{ID: "l3", CommunityID: "c1", Type: domain.ListingOffer, Status: domain.ListingExpired}

	events := newStubEventRepo()
	events.byID["e1"] = &domain.Event{ID: "e1", CommunityID: "c1", EndsAt: testNow.Add(time.Hour)}
	events.byID["e2"] = &domain.Event{ID: "e2", CommunityID: "c1", EndsAt: testNow.Add(-time.Hour)}

	svc := NewStatsService(users, communities, memberships, listings, events, &stubActivityRepo{})
	svc.now = fixedClock(testNow)

	stats, err := svc.Community(context.Background(), "c1")
	if err != nil {
		t.Fatalf("Community returned error: %v", err)
	}
	want := domain.CommunityStats{
		CommunityID:     "c1",
		Members:         2,
		PendingRequests: 1,
		ActiveListings:  2,
		Offers:          1,
		Demands:         1,
		UpcomingEvents:  1,
	}
	if *stats != want {
		t.Fatalf("unexpected stats\n got: %+v\nwant: %+v", *stats, want)
	}

	if _, err := svc.Community(context.Background(), "missing"); err != domain.ErrCommunityNotFound {
		t.Fatalf("expected ErrCommunityNotFound, got %v", err)
	}
}

func TestStatsService_Platform(t *testing.T) {
	users := newStubUserRepo()
	users.byID["u1"] = &domain.User{ID: "u1", Email: "a@example.com"}
	users.byID["u2"] = &domain.User{ID: "u2", Email: "b@example.com"}
	communities := newStubCommunityRepo()
	communities.byID["c1"] = &domain.Community{ID: "c1"}

	svc := NewStatsService(users, communities, newStubMembershipRepo(), newStubListingRepo(), newStubEventRepo(), &stubActivityRepo{})
	stats, err := svc.Platform(context.Background())
	if err != nil {
		t.Fatalf("Platform returned error: %v", err)
	}
	if stats.Users != 2 || stats.Communities != 1 {
		t.Fatalf("unexpected platform stats %+v", stats)
	}
}

func TestStatsService_RecentActivity(t *testing.T) {
	activity := &stubActivityRepo{}
	for i := 0; i < 30; i++ {
		activity.entries = append(activity.entries, &domain.Activity{CommunityID: "c1", Action: domain.ActivityListingCreated})
	}
	activity.entries = append(activity.entries, &domain.Activity{CommunityID: "c2"})

	svc := NewStatsService(newStubUserRepo(), newStubCommunityRepo(), newStubMembershipRepo(), newStubListingRepo(), newStubEventRepo(), activity)

	items, err := svc.RecentActivity(context.Background(), "c1", 0)
	if err != nil {
		t.Fatalf("RecentActivity returned error: %v", err)
	}
	if len(items) != 20 {
		t.Fatalf("expected default limit of 20, got %d", len(items))
	}

	items, err = svc.RecentActivity(context.Background(), "none", 5)
	if err != nil {
		t.Fatalf("RecentActivity returned error: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", items)
	}
}
