package handler

import (
	"context"
	"net/url"
	"testing"

	"github.com/ecomama/marketplace/internal/api/route"
	"github.com/ecomama/marketplace/internal/core/domain"
	"github.com/ecomama/marketplace/internal/core/ports"
)

type recordingListings struct {
	ports.ListingService
	filter ports.ListingFilter
}

func (s *recordingListings) List(_ context.Context, f ports.ListingFilter) (*ports.Page[*domain.Listing], error) {
	s.filter = f
	return ports.NewPage[*domain.Listing](nil, 0, f.Page, f.Limit), nil
}

type recordingEvents struct {
	ports.EventService
	in ports.ListEventsInput
}

func (s *recordingEvents) List(_ context.Context, in ports.ListEventsInput) (*ports.Page[*domain.Event], error) {
	s.in = in
	return ports.NewPage[*domain.Event](nil, 0, in.Page, in.Limit), nil
}

type recordingMemberships struct {
	ports.MembershipService
	filter ports.MembershipFilter
}

func (s *recordingMemberships) List(_ context.Context, f ports.MembershipFilter) (*ports.Page[*domain.Membership], error) {
	s.filter = f
	return ports.NewPage[*domain.Membership](nil, 0, f.Page, f.Limit), nil
}

type recordingStats struct {
	ports.StatsService
	limit int
}

func (s *recordingStats) RecentActivity(_ context.Context, _ string, limit int) ([]*domain.Activity, error) {
	s.limit = limit
	return []*domain.Activity{}, nil
}

func routeContext(params map[string]string, rawQuery string) *route.Context {
	q, _ := url.ParseQuery(rawQuery)
	return &route.Context{
		Params:  params,
		Query:   q,
		Session: &domain.Session{User: domain.SessionUser{ID: "u1", Role: domain.RoleUser}},
	}
}

func TestListingHandler_ListFilters(t *testing.T) {
	cases := []struct {
		name  string
		query string
		want  ports.ListingFilter
	}{
		{
			name:  "all filters",
			query: "type=OFFER&status=ACTIVE&category=honey&author=u2&search=raw&page=3&limit=10",
			want: ports.ListingFilter{
				CommunityID: "c1", Type: domain.ListingOffer, Status: domain.ListingActive,
				Category: "honey", AuthorID: "u2", Search: "raw", Page: 3, Limit: 10,
			},
		},
		{
			name:  "invalid values dropped",
			query: "type=offer&status=GONE&page=abc&limit=0x10",
			want:  ports.ListingFilter{CommunityID: "c1", Page: 1, Limit: ports.DefaultPageLimit},
		},
		{
			name:  "page beyond int32 falls back",
			query: "page=1e17&limit=100",
			want:  ports.ListingFilter{CommunityID: "c1", Page: 1, Limit: 100},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &recordingListings{}
			h := NewListingHandler(svc, nil)

			if _, err := h.List(context.Background(), routeContext(map[string]string{"id": "c1"}, tc.query)); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if svc.filter != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, svc.filter)
			}
		})
	}
}

func TestEventHandler_ListUpcoming(t *testing.T) {
	cases := map[string]bool{
		"upcoming=true":  true,
		"upcoming=TRUE":  true,
		"upcoming=false": false,
		"upcoming=yes":   false,
		"":               false,
	}

	for query, want := range cases {
		svc := &recordingEvents{}
		if _, err := NewEventHandler(svc).List(context.Background(), routeContext(map[string]string{"id": "c1"}, query)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if svc.in.UpcomingOnly != want || svc.in.CommunityID != "c1" {
			t.Errorf("%q: expected upcoming=%v, got %+v", query, want, svc.in)
		}
	}
}

func TestMembershipHandler_MembersStatusFilter(t *testing.T) {
	svc := &recordingMemberships{}
	h := NewMembershipHandler(svc)

	if _, err := h.Members(context.Background(), routeContext(map[string]string{"id": "c1"}, "status=PENDING&limit=5")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := ports.MembershipFilter{CommunityID: "c1", Status: domain.MembershipPending, Page: 1, Limit: 5}
	if svc.filter != want {
		t.Fatalf("expected %+v, got %+v", want, svc.filter)
	}
}

func TestMembershipHandler_RemoveSelf(t *testing.T) {
	h := NewMembershipHandler(&recordingMemberships{})

	_, err := h.Remove(context.Background(), routeContext(map[string]string{"id": "c1", "userId": "u1"}, ""))

	if domain.KindOf(err) != domain.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestStatsHandler_ActivityLimit(t *testing.T) {
	svc := &recordingStats{}
	h := NewStatsHandler(svc)

	if _, err := h.Activity(context.Background(), routeContext(map[string]string{"id": "c1"}, "limit=7")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.limit != 7 {
		t.Fatalf("expected limit 7, got %d", svc.limit)
	}
}
