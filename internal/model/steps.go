package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StepLog struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserUID      string    `gorm:"size:128;not null;index" json:"userUid"`
	Steps        int       `gorm:"not null" json:"steps"`
	CoachMessage string    `gorm:"type:text" json:"coachMessage"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"time"`
}

func (s *StepLog) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
