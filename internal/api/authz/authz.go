// Package authz provides composable authorization predicates for routes
// built with the route package. Every predicate fails closed: a missing
// session, an unresolvable id or an unknown resource kind yields false.
// Errors from injected lookups are returned unchanged.
package authz

import (
	"context"

	"github.com/ecomama/marketplace/internal/api/route"
	"github.com/ecomama/marketplace/internal/core/domain"
)

// Check is a single authorization predicate.
type Check func(ctx context.Context, rc *route.Context) (bool, error)

// Authorize satisfies route.Authorizer.
func (c Check) Authorize(ctx context.Context, rc *route.Context) (bool, error) {
	return c(ctx, rc)
}

// IDResolver extracts an id from the request context. An empty id means it
// could not be resolved.
type IDResolver func(ctx context.Context, rc *route.Context) (string, error)

// MembershipLookup answers whether userID holds a relationship with communityID.
type MembershipLookup func(ctx context.Context, userID, communityID string) (bool, error)

// Param resolves an id from a path parameter.
func Param(name string) IDResolver {
	return func(_ context.Context, rc *route.Context) (string, error) {
		return rc.Param(name), nil
	}
}

// CommunityParam resolves the community id from the ":id" path parameter.
var CommunityParam = Param("id")

// RequireRole allows sessions holding one of roles.
func RequireRole(roles ...domain.Role) Check {
	return func(_ context.Context, rc *route.Context) (bool, error) {
		if rc.Session == nil {
			return false, nil
		}
		for _, r := range roles {
			if rc.Session.User.Role == r {
				return true, nil
			}
		}
		return false, nil
	}
}

// RequireOwner allows superadmins, and callers whose id equals the owner id
// returned by owner.
func RequireOwner(owner IDResolver) Check {
	return func(ctx context.Context, rc *route.Context) (bool, error) {
		if rc.Session == nil {
			return false, nil
		}
		if rc.Session.IsSuperAdmin() {
			return true, nil
		}
		ownerID, err := owner(ctx, rc)
		if err != nil {
			return false, err
		}
		return ownerID != "" && ownerID == rc.Session.User.ID, nil
	}
}

// RequireCommunityAdmin allows superadmins, and administrators of the
// community resolved by community.
func RequireCommunityAdmin(isAdmin MembershipLookup, community IDResolver) Check {
	return func(ctx context.Context, rc *route.Context) (bool, error) {
		if rc.Session == nil {
			return false, nil
		}
		if rc.Session.IsSuperAdmin() {
			return true, nil
		}
		return lookup(ctx, rc, isAdmin, community)
	}
}

// RequireCommunityMember allows approved members of the community resolved by
// community. Superadmins get no implicit pass here; compose with
// RequireRole(domain.RoleSuperAdmin) where they should.
func RequireCommunityMember(isMember MembershipLookup, community IDResolver) Check {
	return func(ctx context.Context, rc *route.Context) (bool, error) {
		if rc.Session == nil {
			return false, nil
		}
		return lookup(ctx, rc, isMember, community)
	}
}

func lookup(ctx context.Context, rc *route.Context, fn MembershipLookup, community IDResolver) (bool, error) {
	communityID, err := community(ctx, rc)
	if err != nil {
		return false, err
	}
	if communityID == "" || rc.Session.User.ID == "" {
		return false, nil
	}
	return fn(ctx, rc.Session.User.ID, communityID)
}

// Any is a logical OR. It stops at the first check returning true or an
// error. An empty Any denies.
func Any(checks ...Check) Check {
	return func(ctx context.Context, rc *route.Context) (bool, error) {
		for _, check := range checks {
			ok, err := check(ctx, rc)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	}
}

// All is a logical AND. It stops at the first check returning false or an
// error. An empty All denies.
func All(checks ...Check) Check {
	return func(ctx context.Context, rc *route.Context) (bool, error) {
		if len(checks) == 0 {
			return false, nil
		}
		for _, check := range checks {
			ok, err := check(ctx, rc)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil
	}
}
