package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

// Payment records one checkout attempt against the payment provider.
// SessionID is the provider's checkout-session identifier and is what the
// confirmation webhook keys on.
type Payment struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;index;not null" json:"user_id"`
	SessionID string     `gorm:"size:255;uniqueIndex;not null" json:"session_id"`
	Status    string     `gorm:"size:20;not null;default:pending" json:"status"`
	Plan      string     `gorm:"size:20;not null;default:premium" json:"plan"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
