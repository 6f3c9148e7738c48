package repository

import (
	"context"

	"github.com/stepup-fit/stepup-server/internal/model"
	"gorm.io/gorm"
)

// ScoreTotal is one user's accumulated workout score.
type ScoreTotal struct {
	UserUID string  `json:"userUid"`
	Total   float64 `json:"total"`
}

type LeaderboardRepository interface {
	// TopTotals aggregates scored workout logs per user, highest first.
	TopTotals(ctx context.Context, limit int) ([]ScoreTotal, error)
}

type leaderboardRepository struct {
	db *gorm.DB
}

func NewLeaderboardRepository(db *gorm.DB) LeaderboardRepository {
	return &leaderboardRepository{db: db}
}

func (r *leaderboardRepository) TopTotals(ctx context.Context, limit int) ([]ScoreTotal, error) {
	var totals []ScoreTotal
	err := r.db.WithContext(ctx).
		Model(&model.WorkoutLog{}).
		Select("user_uid, SUM(score) as total").
		Where("score IS NOT NULL").
		Group("user_uid").
		Order("total DESC").
		Limit(limit).
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return totals, nil
}
