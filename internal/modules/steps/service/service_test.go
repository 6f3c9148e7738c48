package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stepup-fit/stepup-server/internal/model"
	"github.com/stepup-fit/stepup-server/internal/modules/steps/dto"
	"github.com/stepup-fit/stepup-server/internal/modules/steps/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) StepsService {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.StepLog{}))

	repo := repository.NewStepsRepository(db)
	return NewStepsService(repo, nil)
}

func TestCoachMessage_Tiers(t *testing.T) {
	low := coachMessage(100)
	mid := coachMessage(5000)
	high := coachMessage(12000)

	assert.Equal(t, low, coachMessage(2999))
	assert.Equal(t, mid, coachMessage(3000))
	assert.Equal(t, mid, coachMessage(6999))
	assert.Equal(t, high, coachMessage(7000))

	assert.NotEqual(t, low, mid)
	assert.NotEqual(t, mid, high)
}

func TestSubmitSteps(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	resp, err := svc.SubmitSteps(ctx, dto.SubmitStepsRequest{
		UserUID: "user-1",
		Steps:   4200,
	})
	require.NoError(t, err)
	assert.Equal(t, coachMessage(4200), resp.CoachMessage)
	// Without redis the daily total is just this submission.
	assert.Equal(t, int64(4200), resp.DailyTotal)

	logs, err := svc.ListSteps(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, 4200, logs[0].Steps)
	assert.Equal(t, coachMessage(4200), logs[0].CoachMessage)
}

func TestListSteps_EmptyIsNotNil(t *testing.T) {
	svc := newTestService(t)

	logs, err := svc.ListSteps(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, logs)
	assert.Len(t, logs, 0)
}
