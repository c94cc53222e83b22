package contract

import (
	"context"

	"ai-studybuddy-be/internal/entity"
)

// EntitlementRepository persists the per-identity entitlement cache in the
// local store so the last known tier survives process restarts.
type EntitlementRepository interface {
	Upsert(ctx context.Context, ent *entity.Entitlement) error
	Find(ctx context.Context, identity string) (*entity.Entitlement, error)
}
