package tracker

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stepup-fit/stepup-server/internal/model"
	workoutHttp "github.com/stepup-fit/stepup-server/internal/modules/workout/delivery/http"
	"github.com/stepup-fit/stepup-server/internal/modules/workout/repository"
	workoutService "github.com/stepup-fit/stepup-server/internal/modules/workout/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestServer(t *testing.T) (*httptest.Server, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.WorkoutLog{}, &model.WorkoutVideo{}))

	repo := repository.NewWorkoutRepository(db)
	svc := workoutService.NewWorkoutService(repo, nil, nil)
	h := workoutHttp.NewWorkoutHandler(svc)

	router := gin.New()
	api := router.Group("/api/workouts")
	api.POST("/log", h.SubmitLog)
	api.GET("/best", h.Best)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, db
}

func TestTracker_FullSetLifecycle(t *testing.T) {
	server, db := newTestServer(t)
	ctx := context.Background()

	tr := New(server.URL, "user-1", "squat", "easy")

	// Control the clock so the derived duration is exact.
	clock := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	tr.now = func() time.Time { return clock }

	require.NoError(t, tr.Start(ctx))
	assert.Equal(t, StateStarted, tr.State())
	require.NotEmpty(t, tr.LogID())

	require.NoError(t, tr.Summarize(ctx, 12, 85, "Great depth", "Knees tracked well"))
	assert.Equal(t, StateSummarized, tr.State())
	assert.Equal(t, "first", tr.Verdict())

	clock = clock.Add(42 * time.Second)
	require.NoError(t, tr.AttachVideo(ctx, "https://cdn.example.com/sets/abc.webm"))
	assert.Equal(t, StateCompleted, tr.State())

	var rows []model.WorkoutLog
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1, "the whole set must live in one row")

	row := rows[0]
	assert.Equal(t, 12, row.Reps)
	require.NotNil(t, row.Score)
	assert.Equal(t, 85.0, *row.Score)
	require.NotNil(t, row.VideoURL)
	require.NotNil(t, row.DurationSec)
	assert.Equal(t, 42, *row.DurationSec)
	require.NotNil(t, row.EndedAt)
	assert.Equal(t, model.WorkoutStateCompleted, row.State)
}

func TestTracker_VerdictAgainstBaseline(t *testing.T) {
	server, _ := newTestServer(t)
	ctx := context.Background()

	first := New(server.URL, "user-1", "squat", "easy")
	require.NoError(t, first.Start(ctx))
	require.NoError(t, first.Summarize(ctx, 10, 90, "", ""))
	require.NoError(t, first.AttachVideo(ctx, "https://cdn.example.com/sets/one.webm"))
	assert.Equal(t, "first", first.Verdict())

	worse := New(server.URL, "user-1", "squat", "easy")
	require.NoError(t, worse.Start(ctx))
	require.NoError(t, worse.Summarize(ctx, 10, 70, "", ""))
	assert.Equal(t, "lose", worse.Verdict())
	require.NoError(t, worse.AttachVideo(ctx, "https://cdn.example.com/sets/two.webm"))

	better := New(server.URL, "user-1", "squat", "easy")
	require.NoError(t, better.Start(ctx))
	require.NoError(t, better.Summarize(ctx, 14, 95, "", ""))
	assert.Equal(t, "win", better.Verdict())
}

func TestTracker_DurationFloorsAtOneSecond(t *testing.T) {
	server, db := newTestServer(t)
	ctx := context.Background()

	tr := New(server.URL, "user-1", "pushup", "easy")
	clock := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	tr.now = func() time.Time { return clock }

	require.NoError(t, tr.Start(ctx))
	// The clock never advances; the derived duration still reports 1s.
	require.NoError(t, tr.AttachVideo(ctx, "https://cdn.example.com/sets/fast.webm"))

	var row model.WorkoutLog
	require.NoError(t, db.Where("user_uid = ?", "user-1").First(&row).Error)
	require.NotNil(t, row.DurationSec)
	assert.Equal(t, 1, *row.DurationSec)
}
