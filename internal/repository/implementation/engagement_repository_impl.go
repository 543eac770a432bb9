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
	"gorm.io/gorm/clause"
)

type EngagementRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.EngagementMapper
}

func NewEngagementRepository(db *gorm.DB) contract.EngagementRepository {
	return &EngagementRepositoryImpl{
		db:     db,
		mapper: mapper.NewEngagementMapper(),
	}
}

func (r *EngagementRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// Upsert inserts the profile or, when a row for the user already exists,
// replaces every tracked column with the incoming values.
func (r *EngagementRepositoryImpl) Upsert(ctx context.Context, profile *entity.EngagementProfile) error {
	m := r.mapper.ToModel(profile)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(m).Error
	if err != nil {
		return err
	}
	*profile = *r.mapper.ToEntity(m)
	return nil
}

func (r *EngagementRepositoryImpl) FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.EngagementProfile, error) {
	var m model.EngagementProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", userId).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *EngagementRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.EngagementProfile, error) {
	var models []*model.EngagementProfile
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	profiles := make([]*entity.EngagementProfile, 0, len(models))
	for _, m := range models {
		profiles = append(profiles, r.mapper.ToEntity(m))
	}
	return profiles, nil
}
