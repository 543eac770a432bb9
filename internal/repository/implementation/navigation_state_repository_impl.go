package implementation

import (
	"context"
	"errors"

	"cv-builder-be/internal/entity"
	"cv-builder-be/internal/mapper"
	"cv-builder-be/internal/model"
	"cv-builder-be/internal/repository/contract"
	"cv-builder-be/internal/repository/specification"

	"gorm.io/gorm"
)

type NavigationStateRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.NavigationMapper
}

func NewNavigationStateRepository(db *gorm.DB) contract.NavigationStateRepository {
	return &NavigationStateRepositoryImpl{
		db:     db,
		mapper: mapper.NewNavigationMapper(),
	}
}

func (r *NavigationStateRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *NavigationStateRepositoryImpl) Create(ctx context.Context, record *entity.NavigationRecord) error {
	m := r.mapper.ToModel(record)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*record = *r.mapper.ToEntity(m)
	return nil
}

func (r *NavigationStateRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.NavigationRecord, error) {
	var m model.NavigationState
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *NavigationStateRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.NavigationRecord, error) {
	var models []*model.NavigationState
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	records := make([]*entity.NavigationRecord, 0, len(models))
	for _, m := range models {
		records = append(records, r.mapper.ToEntity(m))
	}
	return records, nil
}

func (r *NavigationStateRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.NavigationState{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
