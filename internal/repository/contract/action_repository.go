package contract

import (
	"context"

	"cv-builder-be/internal/entity"
	"cv-builder-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ActionRepository interface {
	Create(ctx context.Context, action *entity.QueuedAction) error
	Update(ctx context.Context, action *entity.QueuedAction) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAllBySessionId(ctx context.Context, sessionId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.QueuedAction, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.QueuedAction, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
