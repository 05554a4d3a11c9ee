package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ecomama/marketplace/internal/core/domain"
	"github.com/ecomama/marketplace/internal/core/ports"
)

const collectionMemberships = "memberships"

// MembershipRepository stores one document per (community, user) pair; a
// unique index enforces that at most one request exists per pair.
type MembershipRepository struct {
	col *mongo.Collection
}

func NewMembershipRepository(db *mongo.Database) *MembershipRepository {
	return &MembershipRepository{col: db.Collection(collectionMemberships)}
}

func pairFilter(communityID, userID string) bson.M {
	return bson.M{"community_id": communityID, "user_id": userID}
}

func (r *MembershipRepository) Create(ctx context.Context, m *domain.Membership) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, m); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateMember
		}
		return fmt.Errorf("insert membership: %w", err)
	}
	return nil
}

func (r *MembershipRepository) Find(ctx context.Context, communityID, userID string) (*domain.Membership, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m domain.Membership
	if err := r.col.FindOne(ctx, pairFilter(communityID, userID)).Decode(&m); err != nil {
		if isNotFound(err) {
			return nil, domain.ErrMembershipNotFound
		}
		return nil, fmt.Errorf("find membership: %w", err)
	}
	return &m, nil
}

func membershipFilter(f ports.MembershipFilter) bson.M {
	filter := bson.M{"community_id": f.CommunityID}
	if f.Status != "" {
		filter["status"] = string(f.Status)
	}
	return filter
}

func (r *MembershipRepository) ListByCommunity(ctx context.Context, f ports.MembershipFilter) ([]*domain.Membership, int64, error) {
	opts := pageOptions(f.Page, f.Limit, bson.D{{Key: "created_at", Value: 1}})
	return findPage[domain.Membership](ctx, r.col, membershipFilter(f), opts)
}

func (r *MembershipRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Membership, error) {
	items, _, err := findPage[domain.Membership](ctx, r.col, bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	return items, err
}

func (r *MembershipRepository) Update(ctx context.Context, m *domain.Membership) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, pairFilter(m.CommunityID, m.UserID), m)
	if err != nil {
		return fmt.Errorf("update membership: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrMembershipNotFound
	}
	return nil
}

func (r *MembershipRepository) Delete(ctx context.Context, communityID, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, pairFilter(communityID, userID))
	if err != nil {
		return fmt.Errorf("delete membership: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrMembershipNotFound
	}
	return nil
}

func (r *MembershipRepository) DeleteByCommunity(ctx context.Context, communityID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteMany(ctx, bson.M{"community_id": communityID}); err != nil {
		return fmt.Errorf("delete memberships: %w", err)
	}
	return nil
}

// IsAdmin reports whether userID is an approved administrator of communityID.
func (r *MembershipRepository) IsAdmin(ctx context.Context, userID, communityID string) (bool, error) {
	filter := pairFilter(communityID, userID)
	filter["role"] = string(domain.MemberRoleAdmin)
	filter["status"] = string(domain.MembershipApproved)
	return r.exists(ctx, filter)
}

// IsMember reports whether userID holds an approved membership of communityID.
func (r *MembershipRepository) IsMember(ctx context.Context, userID, communityID string) (bool, error) {
	filter := pairFilter(communityID, userID)
	filter["status"] = string(domain.MembershipApproved)
	return r.exists(ctx, filter)
}

func (r *MembershipRepository) exists(ctx context.Context, filter bson.M) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("membership lookup: %w", err)
	}
	return n > 0, nil
}

func (r *MembershipRepository) CountByCommunity(ctx context.Context, communityID string, status domain.MembershipStatus) (int64, error) {
	return countDocuments(ctx, r.col, bson.M{"community_id": communityID, "status": string(status)})
}

func (r *MembershipRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "community_id", Value: 1}, {Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "community_id", Value: 1}, {Key: "status", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
