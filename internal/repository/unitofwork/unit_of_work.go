package unitofwork

import (
	"context"

	"cv-builder-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	SessionRepository() contract.SessionRepository
	ActionRepository() contract.ActionRepository
	NavigationStateRepository() contract.NavigationStateRepository
	EngagementRepository() contract.EngagementRepository
}
