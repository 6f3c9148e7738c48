package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	BoardTypeSuggestion = "suggestion"
	BoardTypeTrainer    = "trainer"
)

// BoardPost keeps nickname/role denormalized the way the original board
// table does, so deleted accounts don't blank out old posts.
type BoardPost struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserUID        string    `gorm:"size:128;not null;index" json:"user_uid"`
	Nickname       string    `gorm:"size:50;not null" json:"nickname"`
	Role           string    `gorm:"size:20;not null" json:"role"`
	Type           string    `gorm:"size:20;not null;index" json:"type"`
	Title          string    `gorm:"size:200;not null" json:"title"`
	Content        string    `gorm:"type:text;not null" json:"content"`
	IsSecret       bool      `gorm:"not null;default:false" json:"is_secret"`
	SecretPassword *string   `gorm:"size:100" json:"-"`
	VideoURL       *string   `gorm:"type:text" json:"video_url,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (b *BoardPost) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

type BoardComment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BoardID   uuid.UUID `gorm:"type:uuid;index;not null" json:"board_id"`
	UserUID   string    `gorm:"size:128;not null" json:"user_uid"`
	Nickname  string    `gorm:"size:50" json:"nickname"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (c *BoardComment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
