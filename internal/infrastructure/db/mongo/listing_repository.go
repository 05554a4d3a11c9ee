package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ecomama/marketplace/internal/core/domain"
	"github.com/ecomama/marketplace/internal/core/ports"
)

const collectionListings = "listings"

type ListingRepository struct {
	col *mongo.Collection
}

func NewListingRepository(db *mongo.Database) *ListingRepository {
	return &ListingRepository{col: db.Collection(collectionListings)}
}

func (r *ListingRepository) Create(ctx context.Context, l *domain.Listing) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, l); err != nil {
		return fmt.Errorf("insert listing: %w", err)
	}
	return nil
}

func (r *ListingRepository) FindByID(ctx context.Context, id string) (*domain.Listing, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var l domain.Listing
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&l); err != nil {
		if isNotFound(err) {
			return nil, domain.ErrListingNotFound
		}
		return nil, fmt.Errorf("find listing: %w", err)
	}
	return &l, nil
}

func listingFilter(f ports.ListingFilter) bson.M {
	filter := bson.M{}
	if f.CommunityID != "" {
		filter["community_id"] = f.CommunityID
	}
	if f.Type != "" {
		filter["type"] = string(f.Type)
	}
	if f.Status != "" {
		filter["status"] = string(f.Status)
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.AuthorID != "" {
		filter["author_id"] = f.AuthorID
	}
	if f.Search != "" {
		filter["$or"] = bson.A{
			bson.M{"title": containsInsensitive(f.Search)},
			bson.M{"description": containsInsensitive(f.Search)},
		}
	}
	return filter
}

func (r *ListingRepository) List(ctx context.Context, f ports.ListingFilter) ([]*domain.Listing, int64, error) {
	opts := pageOptions(f.Page, f.Limit, bson.D{{Key: "created_at", Value: -1}})
	return findPage[domain.Listing](ctx, r.col, listingFilter(f), opts)
}

func (r *ListingRepository) Update(ctx context.Context, l *domain.Listing) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": l.ID}, l)
	if err != nil {
		return fmt.Errorf("update listing: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

func (r *ListingRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

func (r *ListingRepository) IsAuthor(ctx context.Context, userID, listingID string) (bool, error) {
	n, err := countDocuments(ctx, r.col, bson.M{"_id": listingID, "author_id": userID})
	return n > 0, err
}

func (r *ListingRepository) Count(ctx context.Context, f ports.ListingFilter) (int64, error) {
	return countDocuments(ctx, r.col, listingFilter(f))
}

func expiryFilter(t time.Time) bson.M {
	return bson.M{
		"status":     string(domain.ListingActive),
		"expires_at": bson.M{"$lt": t},
	}
}

func (r *ListingRepository) ExpireBefore(ctx context.Context, t time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": string(domain.ListingExpired), "updated_at": t}}
	res, err := r.col.UpdateMany(ctx, expiryFilter(t), update)
	if err != nil {
		return 0, fmt.Errorf("expire listings: %w", err)
	}
	return res.ModifiedCount, nil
}

func (r *ListingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "community_id", Value: 1}, {Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "author_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "expires_at", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
