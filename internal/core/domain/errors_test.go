package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_IsMatchesByKind(t *testing.T) {
	err := fmt.Errorf("load listing: %w", ErrListingNotFound)

	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected wrapped listing error to match ErrNotFound")
	}
	if errors.Is(err, ErrValidation) {
		t.Fatalf("not-found error must not match ErrValidation")
	}
	if KindOf(err) != KindNotFound {
		t.Fatalf("expected KindNotFound, got %v", KindOf(err))
	}
}

func TestKindOf_PlainError(t *testing.T) {
	if k := KindOf(errors.New("boom")); k != 0 {
		t.Fatalf("expected zero kind for plain error, got %v", k)
	}
	if KindOf(nil) != 0 {
		t.Fatalf("expected zero kind for nil")
	}
}

func TestListingStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to ListingStatus
		want     bool
	}{
		{ListingActive, ListingInactive, true},
		{ListingInactive, ListingActive, true},
		{ListingActive, ListingExpired, false},
		{ListingExpired, ListingActive, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.want, got)
		}
	}
}

func TestSession_IsSuperAdmin(t *testing.T) {
	var nilSession *Session
	if nilSession.IsSuperAdmin() {
		t.Fatalf("nil session must not be superadmin")
	}
	s := &Session{User: SessionUser{ID: "u1", Role: RoleSuperAdmin}}
	if !s.IsSuperAdmin() {
		t.Fatalf("expected superadmin")
	}
}
