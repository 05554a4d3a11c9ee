package ports

import (
	"context"

	"github.com/ecomama/marketplace/internal/core/domain"
)

// ActivityRecorder accepts audit entries for asynchronous persistence.
// Record must not block the request path.
type ActivityRecorder interface {
	Record(entry domain.Activity)
}

type ActivityRepository interface {
	Insert(ctx context.Context, entry *domain.Activity) error
	ListByCommunity(ctx context.Context, communityID string, limit int) ([]*domain.Activity, error)
}

type StatsService interface {
	Community(ctx context.Context, communityID string) (*domain.CommunityStats, error)
	Platform(ctx context.Context) (*domain.PlatformStats, error)
	RecentActivity(ctx context.Context, communityID string, limit int) ([]*domain.Activity, error)
}
