package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// EngagementProfile is the per-user behavioral snapshot. Advisory data,
// rebuilt from scratch when absent.
type EngagementProfile struct {
	Id     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`

	VisitCounts       datatypes.JSON `gorm:"type:jsonb"`
	TimeSpentMs       datatypes.JSON `gorm:"type:jsonb"`
	InteractionCounts datatypes.JSON `gorm:"type:jsonb"`
	SessionDepths     datatypes.JSON `gorm:"type:jsonb"`

	DismissalHistory   datatypes.JSON `gorm:"type:jsonb"`
	ConversionAttempts datatypes.JSON `gorm:"type:jsonb"`

	Industry        string `gorm:"type:varchar(100)"`
	ExperienceLevel string `gorm:"type:varchar(50)"`
	BehaviorPattern string `gorm:"type:varchar(50)"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt *time.Time
}

func (EngagementProfile) TableName() string {
	return "engagement_profiles"
}
