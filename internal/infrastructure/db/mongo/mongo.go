package mongo

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultTimeout = 10 * time.Second
	indexTimeout   = 30 * time.Second
)

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}

// indexer is implemented by every repository owning a collection.
type indexer interface {
	EnsureIndexes(ctx context.Context) error
}

// Repositories bundles the MongoDB-backed repositories of the marketplace.
type Repositories struct {
	Users       *UserRepository
	Communities *CommunityRepository
	Memberships *MembershipRepository
	Listings    *ListingRepository
	Events      *EventRepository
	Activity    *ActivityRepository
}

func NewRepositories(db *mongo.Database) *Repositories {
	return &Repositories{
		Users:       NewUserRepository(db),
		Communities: NewCommunityRepository(db),
		Memberships: NewMembershipRepository(db),
		Listings:    NewListingRepository(db),
		Events:      NewEventRepository(db),
		Activity:    NewActivityRepository(db),
	}
}

// EnsureIndexes creates the indexes of every collection.
func (r *Repositories) EnsureIndexes(ctx context.Context) error {
	for _, ix := range []indexer{r.Users, r.Communities, r.Memberships, r.Listings, r.Events, r.Activity} {
		if err := ix.EnsureIndexes(ctx); err != nil {
			return err
		}
	}
	return nil
}

// pageOptions returns find options for a 1-based page.
func pageOptions(page, limit int, sort bson.D) *options.FindOptions {
	opts := options.Find().SetSort(sort)
	if limit > 0 {
		if page < 1 {
			page = 1
		}
		skip := int64(page-1) * int64(limit)
		if skip/int64(limit) != int64(page-1) {
			skip = math.MaxInt64
		}
		opts.SetSkip(skip).SetLimit(int64(limit))
	}
	return opts
}

// containsInsensitive matches documents whose field contains s, ignoring case.
func containsInsensitive(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

func isNotFound(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

// findPage runs a counted, paginated query and decodes the page into T.
func findPage[T any](ctx context.Context, col *mongo.Collection, filter bson.M, opts *options.FindOptions) ([]*T, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", col.Name(), err)
	}

	cur, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find %s: %w", col.Name(), err)
	}
	items := make([]*T, 0)
	if err := cur.All(ctx, &items); err != nil {
		return nil, 0, fmt.Errorf("decode %s: %w", col.Name(), err)
	}
	return items, total, nil
}

func countDocuments(ctx context.Context, col *mongo.Collection, filter bson.M) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", col.Name(), err)
	}
	return n, nil
}
