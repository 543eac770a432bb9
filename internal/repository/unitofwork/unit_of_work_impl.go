package unitofwork

import (
	"context"
	"fmt"

	"cv-builder-be/internal/repository/contract"
	"cv-builder-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

// getDB returns the active transaction when one was started, the shared
// handle otherwise, so repositories work the same inside and outside a tx.
func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) SessionRepository() contract.SessionRepository {
	return implementation.NewSessionRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ActionRepository() contract.ActionRepository {
	return implementation.NewActionRepository(u.getDB())
}

func (u *UnitOfWorkImpl) NavigationStateRepository() contract.NavigationStateRepository {
	return implementation.NewNavigationStateRepository(u.getDB())
}

func (u *UnitOfWorkImpl) EngagementRepository() contract.EngagementRepository {
	return implementation.NewEngagementRepository(u.getDB())
}
