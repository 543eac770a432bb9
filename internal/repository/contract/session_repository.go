package contract

import (
	"context"

	"cv-builder-be/internal/entity"
	"cv-builder-be/internal/repository/specification"
)

type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	Update(ctx context.Context, session *entity.Session) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Session, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Session, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// MarkStale revokes resumability for every session matching the specs.
	MarkStale(ctx context.Context, specs ...specification.Specification) (int64, error)
}
