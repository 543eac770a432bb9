package contract

import (
	"context"

	"cv-builder-be/internal/entity"
	"cv-builder-be/internal/repository/specification"
)

type NavigationStateRepository interface {
	Create(ctx context.Context, record *entity.NavigationRecord) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.NavigationRecord, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.NavigationRecord, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
