package specification

import "gorm.io/gorm"

// PendingOnly keeps actions not yet confirmed or exhausted
type PendingOnly struct{}

func (s PendingOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", "pending")
}

// DrainOrder sorts the queue the way it must be attempted: high priority
// first, ties broken by timestamp ascending.
type DrainOrder struct{}

func (s DrainOrder) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("CASE priority WHEN 'high' THEN 0 WHEN 'normal' THEN 1 WHEN 'low' THEN 2 ELSE 3 END ASC").
		Order("timestamp ASC")
}

// RequiresNetworkOnly keeps actions that need connectivity to execute
type RequiresNetworkOnly struct{}

func (s RequiresNetworkOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("requires_network = ?", true)
}
