// Package tracker drives one exercise set through its lifecycle against the
// workout log API: start, end-of-set summary, video attachment. It is the
// server-side counterpart of what the Pose page does in the browser, usable
// from integrations and load tooling.
package tracker

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/imroc/req/v3"
	workout "github.com/stepup-fit/stepup-server/internal/modules/workout/service"
)

type State int

const (
	StateIdle State = iota
	StateStarted
	StateSummarized
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateStarted:
		return "started"
	case StateSummarized:
		return "summarized"
	case StateCompleted:
		return "completed"
	default:
		return "idle"
	}
}

type submitResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
	Mode    string `json:"mode"`
}

type bestResponse struct {
	Score *float64 `json:"score"`
	Reps  *int     `json:"reps"`
	LogID *string  `json:"logId"`
}

// Tracker tracks a single set attempt for one (user, exercise, difficulty)
// key. It is not safe for concurrent use; one tracker per set.
type Tracker struct {
	client     *req.Client
	userUID    string
	exercise   string
	difficulty string

	state     State
	startedAt time.Time
	logID     string
	prevBest  *float64
	verdict   string

	now func() time.Time
}

func New(baseURL, userUID, exercise, difficulty string) *Tracker {
	client := req.C().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(10 * time.Second)

	return &Tracker{
		client:     client,
		userUID:    userUID,
		exercise:   exercise,
		difficulty: difficulty,
		state:      StateIdle,
		now:        time.Now,
	}
}

func (t *Tracker) State() State { return t.state }

// LogID is the server row this set lives in, known after a successful Start.
func (t *Tracker) LogID() string { return t.logID }

// Verdict reports how the summarized score compared to the personal best
// fetched at Start: "first", "win", "draw" or "lose". Empty before Summarize.
func (t *Tracker) Verdict() string { return t.verdict }

// Start records the set's begin time, fetches the personal-best baseline and
// opens a log row. A failed save is logged and reported, but the local set
// state still advances: the user is already exercising either way.
func (t *Tracker) Start(ctx context.Context) error {
	t.startedAt = t.now()
	t.state = StateStarted

	t.fetchBaseline(ctx)

	payload := map[string]interface{}{
		"userUid":    t.userUID,
		"exercise":   t.exercise,
		"difficulty": t.difficulty,
		"startedAt":  t.startedAt.UTC().Format(time.RFC3339),
	}

	var out submitResponse
	if err := t.submit(ctx, payload, &out); err != nil {
		log.Printf("tracker: start save failed: %v", err)
		return err
	}

	t.logID = out.ID
	return nil
}

// Summarize sends the end-of-set results produced by the pose scorer and
// computes the verdict against the baseline.
func (t *Tracker) Summarize(ctx context.Context, reps int, score float64, feedbackMain, feedbackDetail string) error {
	if t.state < StateStarted {
		t.state = StateStarted
	}

	t.verdict = workout.Verdict(score, t.prevBest)
	t.state = StateSummarized

	payload := map[string]interface{}{
		"userUid":    t.userUID,
		"exercise":   t.exercise,
		"difficulty": t.difficulty,
		"reps":       reps,
		"score":      score,
	}
	if feedbackMain != "" {
		payload["feedbackMain"] = feedbackMain
	}
	if feedbackDetail != "" {
		payload["feedbackDetail"] = feedbackDetail
	}
	if t.logID != "" {
		payload["logId"] = t.logID
	}

	var out submitResponse
	if err := t.submit(ctx, payload, &out); err != nil {
		log.Printf("tracker: summary save failed: %v", err)
		return err
	}

	if t.logID == "" {
		t.logID = out.ID
	}
	return nil
}

// AttachVideo closes the set once the recording has been uploaded: it stamps
// endedAt, derives the duration (at least one second) and sends the final
// continuation. Terminal.
func (t *Tracker) AttachVideo(ctx context.Context, videoURL string) error {
	endedAt := t.now()
	startedAt := t.startedAt
	if startedAt.IsZero() {
		startedAt = endedAt
	}

	durationSec := int(math.Round(endedAt.Sub(startedAt).Seconds()))
	if durationSec < 1 {
		durationSec = 1
	}

	t.state = StateCompleted

	payload := map[string]interface{}{
		"userUid":     t.userUID,
		"exercise":    t.exercise,
		"difficulty":  t.difficulty,
		"videoUrl":    videoURL,
		"endedAt":     endedAt.UTC().Format(time.RFC3339),
		"durationSec": durationSec,
	}
	if t.logID != "" {
		payload["logId"] = t.logID
	}

	var out submitResponse
	if err := t.submit(ctx, payload, &out); err != nil {
		log.Printf("tracker: video save failed: %v", err)
		return err
	}

	return nil
}

func (t *Tracker) fetchBaseline(ctx context.Context) {
	var out bestResponse
	resp, err := t.client.R().
		SetContext(ctx).
		SetQueryParam("userUid", t.userUID).
		SetQueryParam("exercise", t.exercise).
		SetQueryParam("difficulty", t.difficulty).
		Get("/api/workouts/best")
	if err != nil {
		// Baseline is informational only, the set proceeds without it.
		log.Printf("tracker: best-log fetch failed: %v", err)
		return
	}
	if resp.StatusCode != 200 {
		log.Printf("tracker: best-log fetch returned status %d", resp.StatusCode)
		return
	}
	if err := resp.UnmarshalJson(&out); err != nil {
		log.Printf("tracker: best-log response unmarshal failed: %v", err)
		return
	}

	t.prevBest = out.Score
}

func (t *Tracker) submit(ctx context.Context, payload map[string]interface{}, out *submitResponse) error {
	resp, err := t.client.R().
		SetContext(ctx).
		SetBodyJsonMarshal(payload).
		Post("/api/workouts/log")
	if err != nil {
		return err
	}
	if resp.StatusCode != 200 {
		return fmt.Errorf("workout log request ended with %d status: %s", resp.StatusCode, resp.String())
	}
	if err := resp.UnmarshalJson(out); err != nil {
		return fmt.Errorf("workout log response unmarshal: %w", err)
	}
	return nil
}
