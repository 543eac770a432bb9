package implementation

import (
	"context"
	"errors"

	"cv-builder-be/internal/entity"
	"cv-builder-be/internal/mapper"
	"cv-builder-be/internal/model"
	"cv-builder-be/internal/repository/contract"
	"cv-builder-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ActionMapper
}

func NewActionRepository(db *gorm.DB) contract.ActionRepository {
	return &ActionRepositoryImpl{
		db:     db,
		mapper: mapper.NewActionMapper(),
	}
}

func (r *ActionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ActionRepositoryImpl) Create(ctx context.Context, action *entity.QueuedAction) error {
	m := r.mapper.ToModel(action)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*action = *r.mapper.ToEntity(m)
	return nil
}

func (r *ActionRepositoryImpl) Update(ctx context.Context, action *entity.QueuedAction) error {
	m := r.mapper.ToModel(action)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*action = *r.mapper.ToEntity(m)
	return nil
}

func (r *ActionRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.QueuedAction{}, id).Error
}

func (r *ActionRepositoryImpl) DeleteAllBySessionId(ctx context.Context, sessionId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("session_id = ?", sessionId).Delete(&model.QueuedAction{}).Error
}

func (r *ActionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.QueuedAction, error) {
	var m model.QueuedAction
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ActionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.QueuedAction, error) {
	var models []*model.QueuedAction
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	actions := make([]*entity.QueuedAction, 0, len(models))
	for _, m := range models {
		actions = append(actions, r.mapper.ToEntity(m))
	}
	return actions, nil
}

func (r *ActionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.QueuedAction{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
