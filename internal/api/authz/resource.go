package authz

import (
	"context"

	"github.com/ecomama/marketplace/internal/api/route"
)

// ResourceKind names a resource type with an author.
type ResourceKind string

const (
	ResourceListing ResourceKind = "listing"
	ResourceEvent   ResourceKind = "event"
)

// AuthorLookup answers whether userID authored resourceID.
type AuthorLookup func(ctx context.Context, userID, resourceID string) (bool, error)

// Resources dispatches author checks by resource kind.
type Resources map[ResourceKind]AuthorLookup

// RequireAuthor allows superadmins and the author of the resource whose id
// is resolved by id. Kinds without a registered lookup always deny.
func (r Resources) RequireAuthor(kind ResourceKind, id IDResolver) Check {
	return func(ctx context.Context, rc *route.Context) (bool, error) {
		isAuthor, known := r[kind]
		if !known || rc.Session == nil {
			return false, nil
		}
		if rc.Session.IsSuperAdmin() {
			return true, nil
		}
		resourceID, err := id(ctx, rc)
		if err != nil {
			return false, err
		}
		if resourceID == "" || rc.Session.User.ID == "" {
			return false, nil
		}
		return isAuthor(ctx, rc.Session.User.ID, resourceID)
	}
}
