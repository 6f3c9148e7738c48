package repository

import (
	"context"

	"github.com/stepup-fit/stepup-server/internal/model"
	"gorm.io/gorm"
)

type StepsRepository interface {
	Create(ctx context.Context, log *model.StepLog) error
	ListByUser(ctx context.Context, userUID string, limit int) ([]model.StepLog, error)
}

type stepsRepository struct {
	db *gorm.DB
}

func NewStepsRepository(db *gorm.DB) StepsRepository {
	return &stepsRepository{db: db}
}

func (r *stepsRepository) Create(ctx context.Context, log *model.StepLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *stepsRepository) ListByUser(ctx context.Context, userUID string, limit int) ([]model.StepLog, error) {
	var logs []model.StepLog
	err := r.db.WithContext(ctx).
		Where("user_uid = ?", userUID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
