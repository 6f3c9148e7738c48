package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleUser    = "user"
	RoleTrainer = "trainer"
	RoleAdmin   = "admin"

	PlanFree    = "free"
	PlanPremium = "premium"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Nickname     string    `gorm:"size:50;uniqueIndex;not null" json:"nickname"`
	Role         string    `gorm:"size:20;not null;default:user" json:"role"`
	Plan         string    `gorm:"size:20;not null;default:free" json:"plan"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	Profile      *Profile  `gorm:"constraint:OnDelete:CASCADE" json:"profile,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Profile carries the onboarding-survey answers and settings the Pose page
// reads before a set (difficulty in particular).
type Profile struct {
	UserID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	InitialDifficulty string    `gorm:"size:20;not null;default:easy" json:"initial_difficulty"`
	Goal              *string   `gorm:"type:text" json:"goal,omitempty"`
	AvatarURL         *string   `gorm:"type:text" json:"avatar_url,omitempty"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
}
