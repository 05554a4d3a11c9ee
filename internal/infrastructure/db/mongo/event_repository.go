package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ecomama/marketplace/internal/core/domain"
	"github.com/ecomama/marketplace/internal/core/ports"
)

const collectionEvents = "events"

type EventRepository struct {
	col *mongo.Collection
}

func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{col: db.Collection(collectionEvents)}
}

func (r *EventRepository) Create(ctx context.Context, e *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, e); err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var e domain.Event
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&e); err != nil {
		if isNotFound(err) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}
	return &e, nil
}

func eventFilter(f ports.EventFilter) bson.M {
	filter := bson.M{}
	if f.CommunityID != "" {
		filter["community_id"] = f.CommunityID
	}
	if !f.From.IsZero() {
		filter["ends_at"] = bson.M{"$gte": f.From}
	}
	return filter
}

func (r *EventRepository) List(ctx context.Context, f ports.EventFilter) ([]*domain.Event, int64, error) {
	opts := pageOptions(f.Page, f.Limit, bson.D{{Key: "starts_at", Value: 1}})
	return findPage[domain.Event](ctx, r.col, eventFilter(f), opts)
}

func (r *EventRepository) Update(ctx context.Context, e *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": e.ID}, e)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *EventRepository) IsAuthor(ctx context.Context, userID, eventID string) (bool, error) {
	n, err := countDocuments(ctx, r.col, bson.M{"_id": eventID, "author_id": userID})
	return n > 0, err
}

func (r *EventRepository) Count(ctx context.Context, f ports.EventFilter) (int64, error) {
	return countDocuments(ctx, r.col, eventFilter(f))
}

func (r *EventRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "community_id", Value: 1}, {Key: "starts_at", Value: 1}}},
		{Keys: bson.D{{Key: "community_id", Value: 1}, {Key: "ends_at", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
