package service

import (
	"context"
	"errors"

	"github.com/stepup-fit/stepup-server/internal/model"
	"github.com/stepup-fit/stepup-server/internal/modules/profile/dto"
	userRepo "github.com/stepup-fit/stepup-server/internal/modules/user/repository"
	"github.com/stepup-fit/stepup-server/pkg/apperror"
	"gorm.io/gorm"
)

type ProfileService interface {
	GetByUserID(ctx context.Context, userID string) (*dto.ProfileResponse, error)
	GetByNickname(ctx context.Context, nickname string) (*dto.ProfileResponse, error)
	Update(ctx context.Context, userID string, input dto.UpdateProfileInput) (*dto.ProfileResponse, error)
	SubmitSurvey(ctx context.Context, userID string, input dto.SurveyInput) error
}

type profileService struct {
	users userRepo.UserRepository
}

func NewProfileService(users userRepo.UserRepository) ProfileService {
	return &profileService{users: users}
}

func (s *profileService) GetByUserID(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return toResponse(user), nil
}

func (s *profileService) GetByNickname(ctx context.Context, nickname string) (*dto.ProfileResponse, error) {
	user, err := s.users.FindByNickname(ctx, nickname)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return toResponse(user), nil
}

func (s *profileService) Update(ctx context.Context, userID string, input dto.UpdateProfileInput) (*dto.ProfileResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if input.Nickname != nil && *input.Nickname != user.Nickname {
		if _, err := s.users.FindByNickname(ctx, *input.Nickname); err == nil {
			return nil, apperror.New(409, "nickname already taken", nil)
		}
		user.Nickname = *input.Nickname
		if err := s.users.Update(ctx, user); err != nil {
			return nil, err
		}
	}

	if input.Goal != nil {
		profile := user.Profile
		if profile == nil {
			profile = &model.Profile{UserID: user.ID, InitialDifficulty: "easy"}
		}
		profile.Goal = input.Goal
		if err := s.users.UpdateProfile(ctx, profile); err != nil {
			return nil, err
		}
		user.Profile = profile
	}

	return toResponse(user), nil
}

func (s *profileService) SubmitSurvey(ctx context.Context, userID string, input dto.SurveyInput) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}

	profile := user.Profile
	if profile == nil {
		profile = &model.Profile{UserID: user.ID}
	}
	profile.InitialDifficulty = input.InitialDifficulty

	return s.users.UpdateProfile(ctx, profile)
}

func toResponse(user *model.User) *dto.ProfileResponse {
	resp := &dto.ProfileResponse{
		UserID:            user.ID.String(),
		Email:             user.Email,
		Nickname:          user.Nickname,
		Role:              user.Role,
		Plan:              user.Plan,
		InitialDifficulty: "easy",
	}
	if user.Profile != nil {
		resp.InitialDifficulty = user.Profile.InitialDifficulty
		resp.Goal = user.Profile.Goal
		resp.AvatarURL = user.Profile.AvatarURL
	}
	return resp
}
