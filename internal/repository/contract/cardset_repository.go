package contract

import (
	"context"

	"ai-studybuddy-be/internal/entity"
	"ai-studybuddy-be/internal/repository/specification"
)

// CardSetRepository is the local fallback store for card sets. It holds only
// sets written by the degraded save path; titles are unique per identity and
// serve as identifiers, since local sets never receive a server id.
type CardSetRepository interface {
	Create(ctx context.Context, set *entity.CardSet) error
	// DeleteByTitle removes the identity's set with the given title and
	// reports how many rows were removed (0 or 1).
	DeleteByTitle(ctx context.Context, identity, title string) (int64, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CardSet, error)
	FindAllSummaries(ctx context.Context, specs ...specification.Specification) ([]*entity.CardSetSummary, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
