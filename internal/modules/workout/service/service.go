package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stepup-fit/stepup-server/internal/model"
	"github.com/stepup-fit/stepup-server/internal/modules/workout/dto"
	"github.com/stepup-fit/stepup-server/internal/modules/workout/repository"
	"github.com/stepup-fit/stepup-server/pkg/apperror"
)

const listLimit = 100

// ScoreBoard receives every scored set for ranking purposes.
type ScoreBoard interface {
	AddWorkoutScoreAsync(userUID string, score float64)
}

// Notifier delivers the personal-best notification.
type Notifier interface {
	CreateNotification(ctx context.Context, n *model.Notification) error
}

type SubmitResult struct {
	ID   uuid.UUID
	Mode string
}

type WorkoutService interface {
	// SubmitLog applies the insert-vs-update decision rule: a payload
	// without startedAt that carries end-of-set data continues the open row
	// for its (userUid, exercise, difficulty) key; everything else inserts.
	SubmitLog(ctx context.Context, req dto.SubmitLogRequest) (*SubmitResult, error)
	ListLogs(ctx context.Context, userUID string) ([]model.WorkoutLog, error)
	GetLog(ctx context.Context, id uuid.UUID) (*model.WorkoutLog, error)
	DeleteLog(ctx context.Context, id uuid.UUID) error
	BestLog(ctx context.Context, userUID, exercise, difficulty string) (*model.WorkoutLog, error)
	// CloseStaleOpenLogs completes open rows older than maxAge. It backs the
	// periodic cleanup job and returns how many rows were closed.
	CloseStaleOpenLogs(ctx context.Context, maxAge time.Duration) (int64, error)
}

type workoutService struct {
	repo       repository.WorkoutRepository
	scoreboard ScoreBoard
	notifier   Notifier
}

// NewWorkoutService wires the log store. scoreboard and notifier are
// optional; side effects are skipped when they are nil.
func NewWorkoutService(repo repository.WorkoutRepository, scoreboard ScoreBoard, notifier Notifier) WorkoutService {
	return &workoutService{
		repo:       repo,
		scoreboard: scoreboard,
		notifier:   notifier,
	}
}

func (s *workoutService) SubmitLog(ctx context.Context, req dto.SubmitLogRequest) (*SubmitResult, error) {
	// Personal best as it stood before this write, for the win notification.
	var prevBest *float64
	if req.Score != nil {
		if bestRow, err := s.repo.FindBest(ctx, req.UserUID, req.Exercise, req.Difficulty); err == nil && bestRow != nil {
			prevBest = bestRow.Score
		}
	}

	target, err := s.resolveContinuationTarget(ctx, req)
	if err != nil {
		return nil, err
	}

	var result *SubmitResult
	if target != nil {
		result, err = s.updateRow(ctx, target, req)
	} else {
		result, err = s.insertRow(ctx, req)
	}
	if err != nil {
		return nil, err
	}

	// Legacy-path recordings arrive as a local file path rather than an
	// object-store URL; their bytes are mirrored into a blob row. The log
	// row is the source of truth, so failures here never fail the request.
	if req.VideoURL != nil && isLocalPath(*req.VideoURL) {
		s.persistLocalVideo(ctx, result.ID, *req.VideoURL)
	}

	if req.Score != nil {
		s.fireScoreSideEffects(req, prevBest)
	}

	return result, nil
}

// resolveContinuationTarget picks the open row this payload continues, or
// nil when the payload should insert. An explicit logId wins over the
// most-recent-open-row lookup.
func (s *workoutService) resolveContinuationTarget(ctx context.Context, req dto.SubmitLogRequest) (*model.WorkoutLog, error) {
	if req.LogID != nil {
		row, err := s.repo.FindByID(ctx, *req.LogID)
		if err != nil {
			return nil, err
		}
		if row != nil && row.UserUID == req.UserUID &&
			row.Exercise == req.Exercise && row.Difficulty == req.Difficulty &&
			row.EndedAt == nil {
			return row, nil
		}
	}

	if req.StartedAt == nil && req.HasContinuationFields() {
		return s.repo.FindLatestOpen(ctx, req.UserUID, req.Exercise, req.Difficulty)
	}

	return nil, nil
}

func (s *workoutService) updateRow(ctx context.Context, target *model.WorkoutLog, req dto.SubmitLogRequest) (*SubmitResult, error) {
	fields := map[string]interface{}{}
	if req.Reps != nil {
		fields["reps"] = *req.Reps
	}
	if req.Score != nil {
		fields["score"] = *req.Score
	}
	if req.VideoURL != nil {
		fields["video_url"] = *req.VideoURL
	}
	if req.StartedAt != nil {
		fields["started_at"] = *req.StartedAt
	}
	if req.EndedAt != nil {
		fields["ended_at"] = *req.EndedAt
	}
	if req.DurationSec != nil {
		fields["duration_sec"] = *req.DurationSec
	}
	if req.FeedbackMain != nil {
		fields["feedback_main"] = *req.FeedbackMain
	}
	if req.FeedbackDetail != nil {
		fields["feedback_detail"] = *req.FeedbackDetail
	}

	if next := nextState(target.State, req); next != target.State {
		fields["state"] = next
	}

	if err := s.repo.UpdateFields(ctx, target.ID, fields); err != nil {
		return nil, err
	}

	return &SubmitResult{ID: target.ID, Mode: dto.ModeUpdate}, nil
}

func (s *workoutService) insertRow(ctx context.Context, req dto.SubmitLogRequest) (*SubmitResult, error) {
	row := &model.WorkoutLog{
		UserUID:        req.UserUID,
		Exercise:       req.Exercise,
		Difficulty:     req.Difficulty,
		Reps:           derefInt(req.Reps, 0),
		Score:          req.Score,
		VideoURL:       req.VideoURL,
		StartedAt:      req.StartedAt,
		EndedAt:        req.EndedAt,
		DurationSec:    req.DurationSec,
		FeedbackMain:   req.FeedbackMain,
		FeedbackDetail: req.FeedbackDetail,
		State:          nextState(model.WorkoutStateOpen, req),
	}

	if err := s.repo.Create(ctx, row); err != nil {
		return nil, err
	}

	return &SubmitResult{ID: row.ID, Mode: dto.ModeInsert}, nil
}

// nextState advances the tagged set state monotonically: endedAt completes
// the set, end-of-set data summarizes it, and a state never moves backwards.
func nextState(current string, req dto.SubmitLogRequest) string {
	next := current
	if req.Score != nil || req.FeedbackMain != nil || req.FeedbackDetail != nil {
		if stateRank(next) < stateRank(model.WorkoutStateSummarized) {
			next = model.WorkoutStateSummarized
		}
	}
	if req.EndedAt != nil {
		next = model.WorkoutStateCompleted
	}
	return next
}

func stateRank(state string) int {
	switch state {
	case model.WorkoutStateSummarized:
		return 1
	case model.WorkoutStateCompleted:
		return 2
	default:
		return 0
	}
}

func (s *workoutService) ListLogs(ctx context.Context, userUID string) ([]model.WorkoutLog, error) {
	rows, err := s.repo.ListByUser(ctx, userUID, listLimit)
	if err != nil {
		return nil, err
	}
	// Rows that never stored a duration still report one derived from their
	// timestamps.
	for i := range rows {
		rows[i].DurationSec = rows[i].EffectiveDurationSec()
	}
	if rows == nil {
		rows = []model.WorkoutLog{}
	}
	return rows, nil
}

func (s *workoutService) GetLog(ctx context.Context, id uuid.UUID) (*model.WorkoutLog, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, apperror.ErrNotFound
	}
	row.DurationSec = row.EffectiveDurationSec()
	return row, nil
}

func (s *workoutService) DeleteLog(ctx context.Context, id uuid.UUID) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

func (s *workoutService) BestLog(ctx context.Context, userUID, exercise, difficulty string) (*model.WorkoutLog, error) {
	return s.repo.FindBest(ctx, userUID, exercise, difficulty)
}

func (s *workoutService) CloseStaleOpenLogs(ctx context.Context, maxAge time.Duration) (int64, error) {
	return s.repo.CloseStaleOpen(ctx, time.Now().Add(-maxAge))
}

func (s *workoutService) persistLocalVideo(ctx context.Context, logID uuid.UUID, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("workout video blob skipped, cannot read %s: %v", path, err)
		return
	}

	video := &model.WorkoutVideo{
		LogID:    logID,
		FileName: filepath.Base(path),
		Data:     data,
	}
	if err := s.repo.SaveVideo(ctx, video); err != nil {
		log.Printf("workout video blob save failed for log %s: %v", logID, err)
	}
}

func (s *workoutService) fireScoreSideEffects(req dto.SubmitLogRequest, prevBest *float64) {
	score := *req.Score

	if s.scoreboard != nil {
		s.scoreboard.AddWorkoutScoreAsync(req.UserUID, score)
	}

	if s.notifier != nil && Verdict(score, prevBest) == VerdictWin {
		go func() {
			msg := fmt.Sprintf("New personal best on %s (%s): %.0f points (previous best %.0f)",
				req.Exercise, req.Difficulty, score, *prevBest)
			n := &model.Notification{
				UserUID:    req.UserUID,
				Type:       model.NotificationTypePersonalBest,
				Message:    msg,
				Exercise:   req.Exercise,
				Difficulty: req.Difficulty,
			}
			if err := s.notifier.CreateNotification(context.Background(), n); err != nil {
				log.Printf("personal best notification failed for %s: %v", req.UserUID, err)
			}
		}()
	}
}

func isLocalPath(videoURL string) bool {
	return videoURL != "" && !strings.Contains(videoURL, "://")
}

func derefInt(v *int, fallback int) int {
	if v != nil {
		return *v
	}
	return fallback
}
