package contract

import (
	"context"

	"cv-builder-be/internal/entity"
	"cv-builder-be/internal/repository/specification"

	"github.com/google/uuid"
)

type EngagementRepository interface {
	Upsert(ctx context.Context, profile *entity.EngagementProfile) error
	FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.EngagementProfile, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.EngagementProfile, error)
}
