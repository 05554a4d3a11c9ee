package mongo

import (
	"math"
	"reflect"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ecomama/marketplace/internal/core/domain"
	"github.com/ecomama/marketplace/internal/core/ports"
)

func TestListingFilter(t *testing.T) {
	got := listingFilter(ports.ListingFilter{
		CommunityID: "c1",
		Type:        domain.ListingOffer,
		Status:      domain.ListingActive,
		Search:      "bread (rye)",
	})
	want := bson.M{
		"community_id": "c1",
		"type":         "OFFER",
		"status":       "ACTIVE",
		"$or": bson.A{
			bson.M{"title": primitive.Regex{Pattern: `bread \(rye\)`, Options: "i"}},
			bson.M{"description": primitive.Regex{Pattern: `bread \(rye\)`, Options: "i"}},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected filter\n got: %v\nwant: %v", got, want)
	}

	if empty := listingFilter(ports.ListingFilter{}); len(empty) != 0 {
		t.Fatalf("empty filter expected, got %v", empty)
	}
}

func TestMembershipFilter(t *testing.T) {
	got := membershipFilter(ports.MembershipFilter{CommunityID: "c1", Status: domain.MembershipPending})
	want := bson.M{"community_id": "c1", "status": "PENDING"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestEventFilter(t *testing.T) {
	from := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	got := eventFilter(ports.EventFilter{CommunityID: "c1", From: from})
	want := bson.M{"community_id": "c1", "ends_at": bson.M{"$gte": from}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestExpiryFilter(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	got := expiryFilter(now)
	want := bson.M{"status": "ACTIVE", "expires_at": bson.M{"$lt": now}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestPageOptions(t *testing.T) {
	opts := pageOptions(3, 20, bson.D{{Key: "name", Value: 1}})
	if opts.Skip == nil || *opts.Skip != 40 {
		t.Fatalf("expected skip 40, got %v", opts.Skip)
	}
	if opts.Limit == nil || *opts.Limit != 20 {
		t.Fatalf("expected limit 20, got %v", opts.Limit)
	}

	unbounded := pageOptions(1, 0, nil)
	if unbounded.Skip != nil || unbounded.Limit != nil {
		t.Fatalf("no skip or limit expected without a page size")
	}
}

func TestPageOptions_HugePageNeverGoesNegative(t *testing.T) {
	page, limit := ports.NormalizePage(math.MaxInt, 100)
	if page != ports.MaxPage {
		t.Fatalf("expected page capped at %d, got %d", ports.MaxPage, page)
	}
	opts := pageOptions(page, limit, nil)
	if opts.Skip == nil || *opts.Skip != int64(ports.MaxPage-1)*100 {
		t.Fatalf("unexpected skip %v", opts.Skip)
	}

	opts = pageOptions(math.MaxInt, 100, nil)
	if opts.Skip == nil || *opts.Skip < 0 {
		t.Fatalf("skip must not overflow, got %v", opts.Skip)
	}
}
