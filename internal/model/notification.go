package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const NotificationTypePersonalBest = "personal_best"

// Notification is keyed by the workout-domain user uid (not the account
// uuid) because it is produced from workout submissions, which trust the
// uid given in the request.
type Notification struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserUID    string    `gorm:"size:128;not null;index" json:"user_uid"`
	Type       string    `gorm:"size:50;not null" json:"type"`
	Message    string    `gorm:"type:text;not null" json:"message"`
	Exercise   string    `gorm:"size:50" json:"exercise,omitempty"`
	Difficulty string    `gorm:"size:20" json:"difficulty,omitempty"`
	IsRead     bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
