package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stepup-fit/stepup-server/internal/model"
	"github.com/stepup-fit/stepup-server/internal/modules/payment/gateway"
	"github.com/stepup-fit/stepup-server/internal/modules/payment/repository"
	userRepo "github.com/stepup-fit/stepup-server/internal/modules/user/repository"
	"github.com/stepup-fit/stepup-server/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeGateway struct {
	paid     bool
	sessions int
}

func (g *fakeGateway) CreateCheckoutSession(ctx context.Context, userID, email string) (*gateway.CheckoutSession, error) {
	g.sessions++
	return &gateway.CheckoutSession{
		SessionID: fmt.Sprintf("cs_test_%d", g.sessions),
		URL:       "https://pay.example.com/cs_test",
	}, nil
}

func (g *fakeGateway) VerifySession(ctx context.Context, sessionID string) (bool, error) {
	return g.paid, nil
}

func newTestService(t *testing.T) (PaymentService, userRepo.UserRepository, *fakeGateway) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Profile{}, &model.Payment{}))

	users := userRepo.NewUserRepository(db)
	gw := &fakeGateway{}
	svc := NewPaymentService(repository.NewPaymentRepository(db), users, gw)
	return svc, users, gw
}

func seedUser(t *testing.T, users userRepo.UserRepository, plan string) *model.User {
	t.Helper()
	user := &model.User{
		Email:        "runner@example.com",
		PasswordHash: "x",
		Nickname:     "runner42",
		Role:         model.RoleUser,
		Plan:         plan,
	}
	require.NoError(t, users.Create(context.Background(), user, nil))
	return user
}

func TestCreateCheckout(t *testing.T) {
	svc, users, _ := newTestService(t)
	ctx := context.Background()
	user := seedUser(t, users, model.PlanFree)

	url, err := svc.CreateCheckout(ctx, user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/cs_test", url)
}

func TestCreateCheckout_AlreadyPremium(t *testing.T) {
	svc, users, _ := newTestService(t)
	user := seedUser(t, users, model.PlanPremium)

	_, err := svc.CreateCheckout(context.Background(), user.ID.String())
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.Code)
}

func TestConfirm_UpgradesPlan(t *testing.T) {
	svc, users, gw := newTestService(t)
	ctx := context.Background()
	user := seedUser(t, users, model.PlanFree)

	_, err := svc.CreateCheckout(ctx, user.ID.String())
	require.NoError(t, err)

	// The provider has not collected the money yet.
	gw.paid = false
	err = svc.Confirm(ctx, "cs_test_1")
	require.Error(t, err)

	gw.paid = true
	require.NoError(t, svc.Confirm(ctx, "cs_test_1"))

	upgraded, err := users.FindByID(ctx, user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, model.PlanPremium, upgraded.Plan)

	// Webhook redelivery is a no-op.
	require.NoError(t, svc.Confirm(ctx, "cs_test_1"))
}

func TestConfirm_UnknownSession(t *testing.T) {
	svc, _, _ := newTestService(t)

	err := svc.Confirm(context.Background(), "cs_missing")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
