package service

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
	"github.com/stepup-fit/stepup-server/internal/modules/leaderboard/repository"
	userRepo "github.com/stepup-fit/stepup-server/internal/modules/user/repository"
)

const (
	leaderboardKey = "leaderboard:workout"
	defaultTopN    = 20
)

// Entry is one leaderboard row as the client renders it.
type Entry struct {
	Rank     int     `json:"rank"`
	UserUID  string  `json:"userUid"`
	Nickname string  `json:"nickname"`
	Total    float64 `json:"total"`
}

type LeaderboardService interface {
	// AddWorkoutScoreAsync accumulates a scored set into the ranking. It
	// never blocks the submit path; redis failures are logged and dropped
	// since the database remains the source of truth.
	AddWorkoutScoreAsync(userUID string, score float64)
	Top(ctx context.Context, limit int) ([]Entry, error)
}

type leaderboardService struct {
	repo  repository.LeaderboardRepository
	users userRepo.UserRepository
	redis *redis.Client
}

// NewLeaderboardService builds the ranking service. redisClient may be
// nil; reads then fall through to the database aggregation.
func NewLeaderboardService(repo repository.LeaderboardRepository, users userRepo.UserRepository, redisClient *redis.Client) LeaderboardService {
	return &leaderboardService{repo: repo, users: users, redis: redisClient}
}

func (s *leaderboardService) AddWorkoutScoreAsync(userUID string, score float64) {
	if s.redis == nil {
		return
	}
	go func() {
		if err := s.redis.ZIncrBy(context.Background(), leaderboardKey, score, userUID).Err(); err != nil {
			log.Printf("failed to add score to leaderboard for %s: %v", userUID, err)
		}
	}()
}

func (s *leaderboardService) Top(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = defaultTopN
	}

	totals := s.topFromRedis(ctx, limit)
	if totals == nil {
		dbTotals, err := s.repo.TopTotals(ctx, limit)
		if err != nil {
			return nil, err
		}
		totals = dbTotals
	}

	uids := make([]string, 0, len(totals))
	for _, t := range totals {
		uids = append(uids, t.UserUID)
	}
	names, err := s.users.NicknamesByUserUIDs(ctx, uids)
	if err != nil {
		log.Printf("failed to resolve leaderboard nicknames: %v", err)
		names = map[string]string{}
	}

	entries := make([]Entry, 0, len(totals))
	for i, t := range totals {
		nickname := names[t.UserUID]
		if nickname == "" {
			nickname = "anonymous"
		}
		entries = append(entries, Entry{
			Rank:     i + 1,
			UserUID:  t.UserUID,
			Nickname: nickname,
			Total:    t.Total,
		})
	}
	return entries, nil
}

// topFromRedis returns nil when redis is unavailable or empty so the
// caller can fall back to the database.
func (s *leaderboardService) topFromRedis(ctx context.Context, limit int) []repository.ScoreTotal {
	if s.redis == nil {
		return nil
	}

	members, err := s.redis.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit-1)).Result()
	if err != nil {
		log.Printf("leaderboard redis read failed, falling back to database: %v", err)
		return nil
	}
	if len(members) == 0 {
		return nil
	}

	totals := make([]repository.ScoreTotal, 0, len(members))
	for _, m := range members {
		uid, ok := m.Member.(string)
		if !ok {
			continue
		}
		totals = append(totals, repository.ScoreTotal{UserUID: uid, Total: m.Score})
	}
	return totals
}
