package implementation

import (
	"context"
	"errors"

	"ai-studybuddy-be/internal/entity"
	"ai-studybuddy-be/internal/mapper"
	"ai-studybuddy-be/internal/model"
	"ai-studybuddy-be/internal/repository/contract"
	"ai-studybuddy-be/internal/repository/specification"

	"gorm.io/gorm"
)

type CardSetRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CardSetMapper
}

func NewCardSetRepository(db *gorm.DB) contract.CardSetRepository {
	return &CardSetRepositoryImpl{
		db:     db,
		mapper: mapper.NewCardSetMapper(),
	}
}

func (r *CardSetRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CardSetRepositoryImpl) Create(ctx context.Context, set *entity.CardSet) error {
	m, err := r.mapper.ToModel(set)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*set = *r.mapper.ToEntity(m)
	return nil
}

func (r *CardSetRepositoryImpl) DeleteByTitle(ctx context.Context, identity, title string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("identity = ? AND title = ?", identity, title).
		Delete(&model.CardSet{})
	return res.RowsAffected, res.Error
}

func (r *CardSetRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CardSet, error) {
	var m model.CardSet
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *CardSetRepositoryImpl) FindAllSummaries(ctx context.Context, specs ...specification.Specification) ([]*entity.CardSetSummary, error) {
	var models []*model.CardSet
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	// Summaries are metadata-only; card bodies stay out of list views.
	if err := query.Omit("flashcards", "card_statuses", "original_text").Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToSummaries(models), nil
}

func (r *CardSetRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.CardSet{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
