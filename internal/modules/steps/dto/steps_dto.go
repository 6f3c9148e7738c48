package dto

type SubmitStepsRequest struct {
	UserUID string `json:"userUid" binding:"required"`
	Steps   int    `json:"steps" binding:"required,min=1"`
}

type SubmitStepsResponse struct {
	Message      string `json:"message"`
	CoachMessage string `json:"coachMessage"`
	DailyTotal   int64  `json:"dailyTotal"`
}
