package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ecomama/marketplace/internal/core/domain"
)

const collectionActivity = "community_activity"

// ActivityRepository persists the per-community audit trail.
type ActivityRepository struct {
	col *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{col: db.Collection(collectionActivity)}
}

func (r *ActivityRepository) Insert(ctx context.Context, a *domain.Activity) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, a); err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// ListByCommunity returns the newest limit entries of a community.
func (r *ActivityRepository) ListByCommunity(ctx context.Context, communityID string, limit int) ([]*domain.Activity, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	items, _, err := findPage[domain.Activity](ctx, r.col, bson.M{"community_id": communityID}, opts)
	return items, err
}

func (r *ActivityRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "community_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}
