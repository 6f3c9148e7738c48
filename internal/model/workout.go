package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// Set lifecycle states. A row is "open" until a continuation carries
	// endedAt; ended_at IS NULL stays the open predicate for the legacy
	// most-recent-row lookup.
	WorkoutStateOpen       = "open"
	WorkoutStateSummarized = "summarized"
	WorkoutStateCompleted  = "completed"
)

// WorkoutLog is one row per attempted exercise set. A single logical set is
// built up over 1-3 sequential calls (start, end-of-set summary, video
// attached), so most columns are nullable and only ever overwritten by an
// explicit newer value.
type WorkoutLog struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserUID        string     `gorm:"size:128;not null;index:idx_workout_set_key" json:"userUid"`
	Exercise       string     `gorm:"size:50;not null;index:idx_workout_set_key" json:"exercise"`
	Difficulty     string     `gorm:"size:20;not null;index:idx_workout_set_key" json:"difficulty"`
	Reps           int        `gorm:"not null;default:0" json:"reps"`
	Score          *float64   `json:"score"`
	VideoURL       *string    `gorm:"type:text" json:"videoUrl"`
	StartedAt      *time.Time `json:"startedAt"`
	EndedAt        *time.Time `json:"endedAt"`
	DurationSec    *int       `json:"durationSec"`
	FeedbackMain   *string    `gorm:"type:text" json:"feedbackMain"`
	FeedbackDetail *string    `gorm:"type:text" json:"feedbackDetail"`
	State          string     `gorm:"size:20;not null;default:open" json:"state"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"createdAt"`
}

func (w *WorkoutLog) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	if w.State == "" {
		w.State = WorkoutStateOpen
	}
	return nil
}

// EffectiveDurationSec returns the stored duration, or derives it from the
// timestamps when absent. Nil when neither is known.
func (w *WorkoutLog) EffectiveDurationSec() *int {
	if w.DurationSec != nil {
		return w.DurationSec
	}
	if w.StartedAt != nil && w.EndedAt != nil {
		sec := int(w.EndedAt.Sub(*w.StartedAt).Round(time.Second) / time.Second)
		if sec < 0 {
			sec = 0
		}
		return &sec
	}
	return nil
}

// WorkoutVideo is the auxiliary blob stored when a log carries a legacy
// local file path instead of an object-store URL. Metadata on the log row
// stays the source of truth; this is best-effort.
type WorkoutVideo struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	LogID     uuid.UUID `gorm:"type:uuid;index;not null" json:"log_id"`
	FileName  string    `gorm:"size:255" json:"file_name"`
	Data      []byte    `gorm:"type:bytea" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (v *WorkoutVideo) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
