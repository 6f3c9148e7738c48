package dto

import (
	"time"

	"github.com/google/uuid"
)

type WritePostInput struct {
	UserUID        string  `json:"userUid" binding:"required"`
	Nickname       string  `json:"nickname" binding:"required"`
	Role           string  `json:"role" binding:"required"`
	Type           string  `json:"type" binding:"required,oneof=suggestion trainer"`
	Title          string  `json:"title" binding:"required,max=200"`
	Content        string  `json:"content" binding:"required"`
	IsSecret       bool    `json:"isSecret"`
	SecretPassword *string `json:"secretPassword"`
	VideoURL       *string `json:"videoUrl"`
}

type DeletePostInput struct {
	UserUID string `json:"userUid" binding:"required"`
	Role    string `json:"role"`
}

type WriteCommentInput struct {
	UserUID  string `json:"userUid" binding:"required"`
	Nickname string `json:"nickname"`
	Content  string `json:"content" binding:"required"`
}

// PostListItem hides the body of secret posts; the detail endpoint reveals
// it only to the owner, an admin, or a caller with the right password.
type PostListItem struct {
	ID        uuid.UUID `json:"id"`
	UserUID   string    `json:"user_uid"`
	Nickname  string    `json:"nickname"`
	Role      string    `json:"role"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	IsSecret  bool      `json:"is_secret"`
	VideoURL  *string   `json:"video_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type SearchResult struct {
	Query string         `json:"query"`
	Hits  []PostListItem `json:"hits"`
}
