package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stepup-fit/stepup-server/internal/model"
	"github.com/stepup-fit/stepup-server/internal/modules/leaderboard/repository"
	userRepo "github.com/stepup-fit/stepup-server/internal/modules/user/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Profile{}, &model.WorkoutLog{}))
	return db
}

func seedScoredLog(t *testing.T, db *gorm.DB, userUID string, score float64) {
	t.Helper()
	require.NoError(t, db.Create(&model.WorkoutLog{
		UserUID:    userUID,
		Exercise:   "squat",
		Difficulty: "easy",
		Score:      &score,
	}).Error)
}

// With no redis configured the ranking comes straight from the database
// aggregation, with nicknames resolved from the accounts table.
func TestTop_DatabaseFallback(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	users := userRepo.NewUserRepository(db)
	alice := &model.User{Email: "a@example.com", PasswordHash: "x", Nickname: "alice"}
	bob := &model.User{Email: "b@example.com", PasswordHash: "x", Nickname: "bob"}
	require.NoError(t, users.Create(ctx, alice, nil))
	require.NoError(t, users.Create(ctx, bob, nil))

	seedScoredLog(t, db, alice.ID.String(), 50)
	seedScoredLog(t, db, alice.ID.String(), 30)
	seedScoredLog(t, db, bob.ID.String(), 90)
	// Unscored rows never count.
	require.NoError(t, db.Create(&model.WorkoutLog{
		UserUID: alice.ID.String(), Exercise: "squat", Difficulty: "easy",
	}).Error)

	svc := NewLeaderboardService(repository.NewLeaderboardRepository(db), users, nil)

	entries, err := svc.Top(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "bob", entries[0].Nickname)
	assert.Equal(t, 90.0, entries[0].Total)

	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, "alice", entries[1].Nickname)
	assert.Equal(t, 80.0, entries[1].Total)
}

func TestTop_UnknownUserFallsBackToAnonymous(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	users := userRepo.NewUserRepository(db)
	seedScoredLog(t, db, "legacy-device-uid", 42)

	svc := NewLeaderboardService(repository.NewLeaderboardRepository(db), users, nil)

	entries, err := svc.Top(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "anonymous", entries[0].Nickname)
}
