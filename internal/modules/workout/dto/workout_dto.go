package dto

import (
	"time"

	"github.com/google/uuid"
)

// SubmitLogRequest is the body of POST /api/workouts/log. All optional
// fields are pointers: absent and null both mean "leave the stored value
// alone" on a continuation call.
type SubmitLogRequest struct {
	UserUID    string `json:"userUid" binding:"required"`
	Exercise   string `json:"exercise" binding:"required"`
	Difficulty string `json:"difficulty" binding:"required"`

	// LogID is the id returned by the call that opened the set. When a
	// client threads it through, the continuation targets that row directly
	// instead of the most-recent-open-row lookup.
	LogID *uuid.UUID `json:"logId,omitempty"`

	Reps           *int       `json:"reps"`
	Score          *float64   `json:"score"`
	VideoURL       *string    `json:"videoUrl"`
	StartedAt      *time.Time `json:"startedAt"`
	EndedAt        *time.Time `json:"endedAt"`
	DurationSec    *int       `json:"durationSec"`
	FeedbackMain   *string    `json:"feedbackMain"`
	FeedbackDetail *string    `json:"feedbackDetail"`
}

// HasContinuationFields reports whether the payload carries any end-of-set
// data. Together with a missing startedAt this is what marks a call as a
// continuation of an open row rather than the start of a new one.
func (r *SubmitLogRequest) HasContinuationFields() bool {
	return r.Score != nil ||
		r.VideoURL != nil ||
		r.EndedAt != nil ||
		r.FeedbackMain != nil ||
		r.FeedbackDetail != nil
}

const (
	ModeInsert = "insert"
	ModeUpdate = "update"
)

type SubmitLogResponse struct {
	Message string    `json:"message"`
	ID      uuid.UUID `json:"id"`
	Mode    string    `json:"mode"`
}

type DeleteLogRequest struct {
	ID string `json:"id" binding:"required"`
}

type BestLogResponse struct {
	Exercise   string   `json:"exercise"`
	Difficulty string   `json:"difficulty"`
	Score      *float64 `json:"score"`
	Reps       *int     `json:"reps"`
	LogID      *string  `json:"logId"`
}
