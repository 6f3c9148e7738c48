package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stepup-fit/stepup-server/internal/model"
	"github.com/stepup-fit/stepup-server/internal/modules/steps/dto"
	"github.com/stepup-fit/stepup-server/internal/modules/steps/repository"
)

const listLimit = 100

type StepsService interface {
	SubmitSteps(ctx context.Context, input dto.SubmitStepsRequest) (*dto.SubmitStepsResponse, error)
	ListSteps(ctx context.Context, userUID string) ([]model.StepLog, error)
}

type stepsService struct {
	repo  repository.StepsRepository
	redis *redis.Client
}

// NewStepsService builds the steps service. redisClient may be nil, in
// which case daily totals are reported as the submitted amount only.
func NewStepsService(repo repository.StepsRepository, redisClient *redis.Client) StepsService {
	return &stepsService{repo: repo, redis: redisClient}
}

// coachMessage picks the encouragement line for a step count. Thresholds
// mirror what the mobile coach has always shown.
func coachMessage(steps int) string {
	switch {
	case steps < 3000:
		return "Let's move a bit more today! Even a short walk counts."
	case steps < 7000:
		return "Nice pace! You're well on your way to your daily goal."
	default:
		return "Amazing work! You've crushed your step goal today."
	}
}

func (s *stepsService) SubmitSteps(ctx context.Context, input dto.SubmitStepsRequest) (*dto.SubmitStepsResponse, error) {
	message := coachMessage(input.Steps)

	entry := &model.StepLog{
		UserUID:      input.UserUID,
		Steps:        input.Steps,
		CoachMessage: message,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}

	dailyTotal := s.bumpDailyTotal(ctx, input.UserUID, input.Steps)

	return &dto.SubmitStepsResponse{
		Message:      "steps saved",
		CoachMessage: message,
		DailyTotal:   dailyTotal,
	}, nil
}

// bumpDailyTotal keeps a per-user running total in redis, keyed by day and
// expiring after 48h. Redis being down only degrades the total.
func (s *stepsService) bumpDailyTotal(ctx context.Context, userUID string, steps int) int64 {
	if s.redis == nil {
		return int64(steps)
	}

	key := fmt.Sprintf("steps:daily:%s:%s", userUID, time.Now().Format("2006-01-02"))
	total, err := s.redis.IncrBy(ctx, key, int64(steps)).Result()
	if err != nil {
		log.Printf("failed to update daily step total: %v", err)
		return int64(steps)
	}
	if err := s.redis.Expire(ctx, key, 48*time.Hour).Err(); err != nil {
		log.Printf("failed to set step total expiry: %v", err)
	}
	return total
}

func (s *stepsService) ListSteps(ctx context.Context, userUID string) ([]model.StepLog, error) {
	logs, err := s.repo.ListByUser(ctx, userUID, listLimit)
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []model.StepLog{}
	}
	return logs, nil
}
