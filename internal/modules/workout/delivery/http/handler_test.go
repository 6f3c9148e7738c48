package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stepup-fit/stepup-server/internal/model"
	workoutDto "github.com/stepup-fit/stepup-server/internal/modules/workout/dto"
	"github.com/stepup-fit/stepup-server/internal/modules/workout/repository"
	workout "github.com/stepup-fit/stepup-server/internal/modules/workout/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.WorkoutLog{}, &model.WorkoutVideo{}))

	repo := repository.NewWorkoutRepository(db)
	svc := workout.NewWorkoutService(repo, nil, nil)
	h := NewWorkoutHandler(svc)

	router := gin.New()
	api := router.Group("/api/workouts")
	api.POST("/log", h.SubmitLog)
	api.GET("/logs", h.ListLogs)
	api.GET("/logs/:id", h.GetLog)
	api.POST("/delete", h.DeleteLog)
	api.GET("/best", h.Best)
	return router
}

func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSubmitLog_ValidationError(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/workouts/log", map[string]interface{}{
		"exercise": "squat",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "error")
}

func TestSubmitLog_InsertThenUpdate(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/workouts/log", map[string]interface{}{
		"userUid":    "user-1",
		"exercise":   "squat",
		"difficulty": "easy",
		"startedAt":  "2026-08-28T10:00:00Z",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var opened workoutDto.SubmitLogResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &opened))
	assert.Equal(t, workoutDto.ModeInsert, opened.Mode)
	assert.NotEqual(t, uuid.Nil, opened.ID)

	w = doJSON(router, http.MethodPost, "/api/workouts/log", map[string]interface{}{
		"userUid":    "user-1",
		"exercise":   "squat",
		"difficulty": "easy",
		"score":      91.5,
		"reps":       10,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updated workoutDto.SubmitLogResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, workoutDto.ModeUpdate, updated.Mode)
	assert.Equal(t, opened.ID, updated.ID)
}

func TestListLogs_RequiresUserUID(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(router, http.MethodGet, "/api/workouts/logs", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetLog_StatusCodes(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(router, http.MethodGet, "/api/workouts/logs/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodGet, "/api/workouts/logs/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteLog_StatusCodes(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/workouts/delete", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodPost, "/api/workouts/delete", map[string]interface{}{
		"id": uuid.NewString(),
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	create := doJSON(router, http.MethodPost, "/api/workouts/log", map[string]interface{}{
		"userUid":    "user-1",
		"exercise":   "squat",
		"difficulty": "easy",
		"startedAt":  "2026-08-28T10:00:00Z",
	})
	require.Equal(t, http.StatusOK, create.Code)
	var opened workoutDto.SubmitLogResponse
	require.NoError(t, json.Unmarshal(create.Body.Bytes(), &opened))

	w = doJSON(router, http.MethodPost, "/api/workouts/delete", map[string]interface{}{
		"id": opened.ID.String(),
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBest_RequiresFullSetKey(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(router, http.MethodGet, "/api/workouts/best?userUid=user-1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodGet,
		"/api/workouts/best?userUid=user-1&exercise=squat&difficulty=easy", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var best workoutDto.BestLogResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &best))
	assert.Nil(t, best.Score)
}
