package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stepup-fit/stepup-server/internal/model"
	"gorm.io/gorm"
)

type WorkoutRepository interface {
	Create(ctx context.Context, logRow *model.WorkoutLog) error
	// UpdateFields applies a partial update: only the given columns are
	// written, everything else keeps its stored value.
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.WorkoutLog, error)
	// FindLatestOpen returns the most recently created row for the set key
	// that has not ended yet, or nil when there is none.
	FindLatestOpen(ctx context.Context, userUID, exercise, difficulty string) (*model.WorkoutLog, error)
	ListByUser(ctx context.Context, userUID string, limit int) ([]model.WorkoutLog, error)
	// Delete hard-deletes and reports how many rows were removed.
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	// FindBest returns the highest-scored row for the set key, nil when no
	// scored row exists.
	FindBest(ctx context.Context, userUID, exercise, difficulty string) (*model.WorkoutLog, error)
	SaveVideo(ctx context.Context, video *model.WorkoutVideo) error
	// CloseStaleOpen completes open rows created before the cutoff so an
	// abandoned set stops catching later continuation payloads.
	CloseStaleOpen(ctx context.Context, cutoff time.Time) (int64, error)
}

type workoutRepository struct {
	db *gorm.DB
}

func NewWorkoutRepository(db *gorm.DB) WorkoutRepository {
	return &workoutRepository{db: db}
}

func (r *workoutRepository) Create(ctx context.Context, logRow *model.WorkoutLog) error {
	return r.db.WithContext(ctx).Create(logRow).Error
}

func (r *workoutRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&model.WorkoutLog{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *workoutRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.WorkoutLog, error) {
	// Find with a slice avoids GORM's "record not found" log noise from First()
	var rows []model.WorkoutLog
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *workoutRepository) FindLatestOpen(ctx context.Context, userUID, exercise, difficulty string) (*model.WorkoutLog, error) {
	var rows []model.WorkoutLog
	err := r.db.WithContext(ctx).
		Where("user_uid = ? AND exercise = ? AND difficulty = ? AND ended_at IS NULL",
			userUID, exercise, difficulty).
		Order("created_at DESC").
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *workoutRepository) ListByUser(ctx context.Context, userUID string, limit int) ([]model.WorkoutLog, error) {
	var rows []model.WorkoutLog
	// Rows inserted by a continuation-shaped payload with no open row never
	// get a started_at; Postgres would sort those NULLs first in DESC order.
	err := r.db.WithContext(ctx).
		Where("user_uid = ?", userUID).
		Order("started_at DESC NULLS LAST, created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *workoutRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.WorkoutLog{})
	return res.RowsAffected, res.Error
}

func (r *workoutRepository) FindBest(ctx context.Context, userUID, exercise, difficulty string) (*model.WorkoutLog, error) {
	var rows []model.WorkoutLog
	err := r.db.WithContext(ctx).
		Where("user_uid = ? AND exercise = ? AND difficulty = ? AND score IS NOT NULL",
			userUID, exercise, difficulty).
		Order("score DESC").
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *workoutRepository) SaveVideo(ctx context.Context, video *model.WorkoutVideo) error {
	return r.db.WithContext(ctx).Create(video).Error
}

func (r *workoutRepository) CloseStaleOpen(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.WorkoutLog{}).
		Where("ended_at IS NULL AND created_at < ?", cutoff).
		Updates(map[string]interface{}{
			// The set never reported an end, so its creation time is the best
			// guess for when it stopped.
			"ended_at": gorm.Expr("created_at"),
			"state":    model.WorkoutStateCompleted,
		})
	return res.RowsAffected, res.Error
}
