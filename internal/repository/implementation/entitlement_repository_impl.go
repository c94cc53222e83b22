package implementation

import (
	"context"
	"errors"

	"ai-studybuddy-be/internal/entity"
	"ai-studybuddy-be/internal/mapper"
	"ai-studybuddy-be/internal/model"
	"ai-studybuddy-be/internal/repository/contract"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EntitlementRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.EntitlementMapper
}

func NewEntitlementRepository(db *gorm.DB) contract.EntitlementRepository {
	return &EntitlementRepositoryImpl{
		db:     db,
		mapper: mapper.NewEntitlementMapper(),
	}
}

func (r *EntitlementRepositoryImpl) Upsert(ctx context.Context, ent *entity.Entitlement) error {
	m := r.mapper.ToModel(ent)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "identity"}},
			DoUpdates: clause.AssignmentColumns([]string{"tier", "unconfirmed", "expires_at", "updated_at"}),
		}).
		Create(m).Error
}

func (r *EntitlementRepositoryImpl) Find(ctx context.Context, identity string) (*entity.Entitlement, error) {
	var m model.EntitlementCache
	if err := r.db.WithContext(ctx).Where("identity = ?", identity).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}
