package specification

import (
	"time"

	"gorm.io/gorm"
)

// ActiveOnly keeps sessions still in progress
type ActiveOnly struct{}

func (s ActiveOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", "in_progress")
}

// StaleBefore matches sessions idle since before the cutoff; used by the
// staleness sweep to revoke resumability.
type StaleBefore struct {
	Cutoff time.Time
}

func (s StaleBefore) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("last_active_at < ?", s.Cutoff)
}

// ResumableOnly keeps sessions a user can pick back up
type ResumableOnly struct{}

func (s ResumableOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("can_resume = ?", true)
}
