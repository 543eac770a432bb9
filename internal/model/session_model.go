package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Session struct {
	Id     uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserId *uuid.UUID `gorm:"type:uuid;index"`
	JobId  *uuid.UUID `gorm:"type:uuid;index"`

	CurrentStep    string         `gorm:"type:varchar(50);not null;default:'upload'"`
	CompletedSteps datatypes.JSON `gorm:"type:jsonb"`
	SkippedSteps   datatypes.JSON `gorm:"type:jsonb"`
	StepProgress   datatypes.JSON `gorm:"type:jsonb"`

	FormData      datatypes.JSON `gorm:"type:jsonb"`
	FeatureStates datatypes.JSON `gorm:"type:jsonb"`
	UIState       datatypes.JSON `gorm:"type:jsonb"`

	QuickCreate bool   `gorm:"default:false"`
	CanResume   bool   `gorm:"default:true"`
	Status      string `gorm:"type:varchar(50);not null;default:'in_progress';index"`

	SchemaVersion string    `gorm:"type:varchar(20);not null;default:'1'"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	LastActiveAt  time.Time `gorm:"index"`
	CompletedAt   *time.Time
}

func (Session) TableName() string {
	return "sessions"
}
