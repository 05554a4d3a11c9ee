package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ecomama/marketplace/internal/core/domain"
	"github.com/ecomama/marketplace/internal/core/ports"
)

const collectionCommunities = "communities"

type CommunityRepository struct {
	col *mongo.Collection
}

func NewCommunityRepository(db *mongo.Database) *CommunityRepository {
	return &CommunityRepository{col: db.Collection(collectionCommunities)}
}

func (r *CommunityRepository) Create(ctx context.Context, c *domain.Community) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("insert community: %w", err)
	}
	return nil
}

func (r *CommunityRepository) FindByID(ctx context.Context, id string) (*domain.Community, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.Community
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if isNotFound(err) {
			return nil, domain.ErrCommunityNotFound
		}
		return nil, fmt.Errorf("find community: %w", err)
	}
	return &c, nil
}

func communityFilter(f ports.CommunityFilter) bson.M {
	filter := bson.M{}
	if f.Search != "" {
		filter["$or"] = bson.A{
			bson.M{"name": containsInsensitive(f.Search)},
			bson.M{"description": containsInsensitive(f.Search)},
		}
	}
	return filter
}

func (r *CommunityRepository) List(ctx context.Context, f ports.CommunityFilter) ([]*domain.Community, int64, error) {
	opts := pageOptions(f.Page, f.Limit, bson.D{{Key: "name", Value: 1}})
	return findPage[domain.Community](ctx, r.col, communityFilter(f), opts)
}

func (r *CommunityRepository) Update(ctx context.Context, c *domain.Community) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": c.ID}, c)
	if err != nil {
		return fmt.Errorf("update community: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCommunityNotFound
	}
	return nil
}

func (r *CommunityRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete community: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCommunityNotFound
	}
	return nil
}

func (r *CommunityRepository) Count(ctx context.Context) (int64, error) {
	return countDocuments(ctx, r.col, bson.M{})
}

func (r *CommunityRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "name", Value: 1}}})
	return err
}
