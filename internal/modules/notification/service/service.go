package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stepup-fit/stepup-server/internal/model"
	"github.com/stepup-fit/stepup-server/internal/modules/notification/repository"
	"github.com/stepup-fit/stepup-server/pkg/apperror"
)

const listLimit = 50

type NotificationService interface {
	// CreateNotification stores the notification and publishes it on the
	// user's channel for any live websocket listeners.
	CreateNotification(ctx context.Context, n *model.Notification) error
	List(ctx context.Context, userUID string) ([]model.Notification, error)
	UnreadCount(ctx context.Context, userUID string) (int64, error)
	MarkRead(ctx context.Context, userUID string, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userUID string) error
	// Subscribe opens a live feed of the user's notifications. The caller
	// must call the returned cancel func when the listener goes away.
	Subscribe(ctx context.Context, userUID string) (<-chan model.Notification, func(), error)
}

type notificationService struct {
	repo  repository.NotificationRepository
	redis *redis.Client
}

// NewNotificationService builds the notification service. redisClient may
// be nil; notifications are then stored without live delivery.
func NewNotificationService(repo repository.NotificationRepository, redisClient *redis.Client) NotificationService {
	return &notificationService{repo: repo, redis: redisClient}
}

func channelFor(userUID string) string {
	return "notifications:" + userUID
}

func (s *notificationService) CreateNotification(ctx context.Context, n *model.Notification) error {
	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}

	if s.redis != nil {
		payload, err := json.Marshal(n)
		if err != nil {
			log.Printf("failed to marshal notification for publish: %v", err)
			return nil
		}
		if err := s.redis.Publish(ctx, channelFor(n.UserUID), payload).Err(); err != nil {
			log.Printf("failed to publish notification for %s: %v", n.UserUID, err)
		}
	}
	return nil
}

func (s *notificationService) List(ctx context.Context, userUID string) ([]model.Notification, error) {
	notifications, err := s.repo.ListByUser(ctx, userUID, listLimit)
	if err != nil {
		return nil, err
	}
	if notifications == nil {
		notifications = []model.Notification{}
	}
	return notifications, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, userUID string) (int64, error) {
	return s.repo.CountUnread(ctx, userUID)
}

func (s *notificationService) MarkRead(ctx context.Context, userUID string, id uuid.UUID) error {
	affected, err := s.repo.MarkRead(ctx, userUID, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userUID string) error {
	return s.repo.MarkAllRead(ctx, userUID)
}

func (s *notificationService) Subscribe(ctx context.Context, userUID string) (<-chan model.Notification, func(), error) {
	if s.redis == nil {
		return nil, nil, apperror.New(503, "live notifications are not available", nil)
	}

	sub := s.redis.Subscribe(ctx, channelFor(userUID))
	out := make(chan model.Notification, 8)

	go func() {
		defer close(out)
		for msg := range sub.Channel() {
			var n model.Notification
			if err := json.Unmarshal([]byte(msg.Payload), &n); err != nil {
				log.Printf("dropping malformed notification payload: %v", err)
				continue
			}
			select {
			case out <- n:
			default:
				// Slow listener; drop rather than block the pump.
			}
		}
	}()

	cancel := func() {
		if err := sub.Close(); err != nil {
			log.Printf("failed to close notification subscription: %v", err)
		}
	}
	return out, cancel, nil
}
