package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stepup-fit/stepup-server/internal/model"
	"github.com/stepup-fit/stepup-server/internal/modules/profile/dto"
	userRepo "github.com/stepup-fit/stepup-server/internal/modules/user/repository"
	"github.com/stepup-fit/stepup-server/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) (ProfileService, userRepo.UserRepository) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Profile{}))

	users := userRepo.NewUserRepository(db)
	return NewProfileService(users), users
}

func seedUser(t *testing.T, users userRepo.UserRepository, email, nickname string) *model.User {
	t.Helper()

	user := &model.User{
		Email:        email,
		PasswordHash: "x",
		Nickname:     nickname,
		Role:         model.RoleUser,
		Plan:         model.PlanFree,
	}
	require.NoError(t, users.Create(context.Background(), user, &model.Profile{
		InitialDifficulty: "easy",
	}))
	return user
}

func TestGetByNickname(t *testing.T) {
	svc, users := newTestService(t)
	seedUser(t, users, "a@example.com", "runner42")

	resp, err := svc.GetByNickname(context.Background(), "runner42")
	require.NoError(t, err)
	assert.Equal(t, "runner42", resp.Nickname)
	assert.Equal(t, "easy", resp.InitialDifficulty)

	_, err = svc.GetByNickname(context.Background(), "ghost")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUpdate_NicknameConflict(t *testing.T) {
	svc, users := newTestService(t)
	user := seedUser(t, users, "a@example.com", "runner42")
	seedUser(t, users, "b@example.com", "taken")

	conflict := "taken"
	_, err := svc.Update(context.Background(), user.ID.String(), dto.UpdateProfileInput{
		Nickname: &conflict,
	})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.Code)
}

func TestUpdate_GoalAndNickname(t *testing.T) {
	svc, users := newTestService(t)
	user := seedUser(t, users, "a@example.com", "runner42")

	nickname := "sprinter"
	goal := "run a sub-25 5k"
	resp, err := svc.Update(context.Background(), user.ID.String(), dto.UpdateProfileInput{
		Nickname: &nickname,
		Goal:     &goal,
	})
	require.NoError(t, err)
	assert.Equal(t, "sprinter", resp.Nickname)
	require.NotNil(t, resp.Goal)
	assert.Equal(t, goal, *resp.Goal)
}

func TestSubmitSurvey(t *testing.T) {
	svc, users := newTestService(t)
	user := seedUser(t, users, "a@example.com", "runner42")

	err := svc.SubmitSurvey(context.Background(), user.ID.String(), dto.SurveyInput{
		InitialDifficulty: "hard",
	})
	require.NoError(t, err)

	resp, err := svc.GetByUserID(context.Background(), user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "hard", resp.InitialDifficulty)
}
