package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stepup-fit/stepup-server/internal/model"
	"github.com/stepup-fit/stepup-server/internal/modules/user/dto"
	"github.com/stepup-fit/stepup-server/internal/modules/user/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) AuthService {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Profile{}))

	return NewAuthService(repository.NewUserRepository(db))
}

func signupInput() dto.SignupInput {
	return dto.SignupInput{
		Email:    "runner@example.com",
		Password: "s3cret-pass",
		Nickname: "runner42",
	}
}

func TestSignup(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	resp, err := svc.Signup(ctx, signupInput())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	require.NotNil(t, resp.User)
	assert.Equal(t, model.RoleUser, resp.User.Role)
	assert.Equal(t, model.PlanFree, resp.User.Plan)
	assert.Empty(t, resp.User.PasswordHash)
	require.NotNil(t, resp.User.Profile)
	assert.Equal(t, "easy", resp.User.Profile.InitialDifficulty)

	// The token must carry the user id as its subject.
	claims := &jwt.RegisteredClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(resp.AccessToken, claims)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID.String(), claims.Subject)
}

func TestSignup_Duplicates(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, signupInput())
	require.NoError(t, err)

	dupEmail := signupInput()
	dupEmail.Nickname = "someone-else"
	_, err = svc.Signup(ctx, dupEmail)
	assert.EqualError(t, err, "email already registered")

	dupNickname := signupInput()
	dupNickname.Email = "other@example.com"
	_, err = svc.Signup(ctx, dupNickname)
	assert.EqualError(t, err, "nickname already taken")
}

func TestLogin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, signupInput())
	require.NoError(t, err)

	resp, err := svc.Login(ctx, dto.LoginInput{
		Email:    "runner@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	_, err = svc.Login(ctx, dto.LoginInput{
		Email:    "runner@example.com",
		Password: "wrong",
	})
	assert.EqualError(t, err, "invalid credentials")

	_, err = svc.Login(ctx, dto.LoginInput{
		Email:    "ghost@example.com",
		Password: "whatever",
	})
	assert.EqualError(t, err, "invalid credentials")
}
