package service

import (
	"context"
	"errors"
	"time"

	"github.com/stepup-fit/stepup-server/internal/model"
	"github.com/stepup-fit/stepup-server/internal/modules/payment/gateway"
	"github.com/stepup-fit/stepup-server/internal/modules/payment/repository"
	userRepo "github.com/stepup-fit/stepup-server/internal/modules/user/repository"
	"github.com/stepup-fit/stepup-server/pkg/apperror"
	"gorm.io/gorm"
)

type PaymentService interface {
	// CreateCheckout opens a provider checkout session for the premium plan
	// and records it as pending. The returned URL is where the user pays.
	CreateCheckout(ctx context.Context, userID string) (string, error)
	// Confirm is the webhook-style completion: it verifies the session with
	// the provider, marks the payment paid and upgrades the user's plan.
	Confirm(ctx context.Context, sessionID string) error
}

type paymentService struct {
	repo    repository.PaymentRepository
	users   userRepo.UserRepository
	gateway gateway.PaymentGateway
}

func NewPaymentService(repo repository.PaymentRepository, users userRepo.UserRepository, gw gateway.PaymentGateway) PaymentService {
	return &paymentService{
		repo:    repo,
		users:   users,
		gateway: gw,
	}
}

func (s *paymentService) CreateCheckout(ctx context.Context, userID string) (string, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperror.ErrNotFound
		}
		return "", err
	}

	if user.Plan == model.PlanPremium {
		return "", apperror.New(409, "already on premium plan", nil)
	}

	session, err := s.gateway.CreateCheckoutSession(ctx, user.ID.String(), user.Email)
	if err != nil {
		return "", err
	}

	payment := &model.Payment{
		UserID:    user.ID,
		SessionID: session.SessionID,
		Status:    model.PaymentStatusPending,
		Plan:      model.PlanPremium,
	}
	if err := s.repo.Create(ctx, payment); err != nil {
		return "", err
	}

	return session.URL, nil
}

func (s *paymentService) Confirm(ctx context.Context, sessionID string) error {
	payment, err := s.repo.FindBySessionID(ctx, sessionID)
	if err != nil {
		return err
	}
	if payment == nil {
		return apperror.ErrNotFound
	}
	if payment.Status == model.PaymentStatusPaid {
		// Providers redeliver webhooks; a second confirm is a no-op.
		return nil
	}

	paid, err := s.gateway.VerifySession(ctx, sessionID)
	if err != nil {
		return err
	}
	if !paid {
		return apperror.New(409, "session is not paid", nil)
	}

	now := time.Now()
	payment.Status = model.PaymentStatusPaid
	payment.PaidAt = &now
	if err := s.repo.Update(ctx, payment); err != nil {
		return err
	}

	user, err := s.users.FindByID(ctx, payment.UserID.String())
	if err != nil {
		return err
	}
	user.Plan = payment.Plan
	return s.users.Update(ctx, user)
}
