package dto

type UpdateProfileInput struct {
	Nickname *string `json:"nickname" binding:"omitempty,min=2,max=50"`
	Goal     *string `json:"goal"`
}

// SurveyInput is the onboarding answer that fixes the difficulty the Pose
// page trains at.
type SurveyInput struct {
	InitialDifficulty string `json:"initial_difficulty" binding:"required,oneof=easy medium hard"`
}

type ProfileResponse struct {
	UserID            string  `json:"user_id"`
	Email             string  `json:"email"`
	Nickname          string  `json:"nickname"`
	Role              string  `json:"role"`
	Plan              string  `json:"plan"`
	InitialDifficulty string  `json:"initial_difficulty"`
	Goal              *string `json:"goal,omitempty"`
	AvatarURL         *string `json:"avatar_url,omitempty"`
}
