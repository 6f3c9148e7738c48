package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/stepup-fit/stepup-server/internal/model"
	"gorm.io/gorm"
)

type BoardRepository interface {
	CreatePost(ctx context.Context, post *model.BoardPost) error
	ListPosts(ctx context.Context, postType string) ([]model.BoardPost, error)
	FindPostByID(ctx context.Context, id uuid.UUID) (*model.BoardPost, error)
	// DeletePost removes the post when the caller owns it; admin callers
	// delete unconditionally. Reports rows removed.
	DeletePost(ctx context.Context, id uuid.UUID, userUID string, isAdmin bool) (int64, error)
	CreateComment(ctx context.Context, comment *model.BoardComment) error
	ListComments(ctx context.Context, boardID uuid.UUID) ([]model.BoardComment, error)
}

type boardRepository struct {
	db *gorm.DB
}

func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &boardRepository{db: db}
}

func (r *boardRepository) CreatePost(ctx context.Context, post *model.BoardPost) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *boardRepository) ListPosts(ctx context.Context, postType string) ([]model.BoardPost, error) {
	var posts []model.BoardPost
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if postType != "" {
		q = q.Where("type = ?", postType)
	}
	err := q.Find(&posts).Error
	return posts, err
}

func (r *boardRepository) FindPostByID(ctx context.Context, id uuid.UUID) (*model.BoardPost, error) {
	var posts []model.BoardPost
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, nil
	}
	return &posts[0], nil
}

func (r *boardRepository) DeletePost(ctx context.Context, id uuid.UUID, userUID string, isAdmin bool) (int64, error) {
	q := r.db.WithContext(ctx).Where("id = ?", id)
	if !isAdmin {
		q = q.Where("user_uid = ?", userUID)
	}
	res := q.Delete(&model.BoardPost{})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected > 0 {
		// Comments go with their post.
		if err := r.db.WithContext(ctx).
			Where("board_id = ?", id).
			Delete(&model.BoardComment{}).Error; err != nil {
			return res.RowsAffected, err
		}
	}
	return res.RowsAffected, nil
}

func (r *boardRepository) CreateComment(ctx context.Context, comment *model.BoardComment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *boardRepository) ListComments(ctx context.Context, boardID uuid.UUID) ([]model.BoardComment, error) {
	var comments []model.BoardComment
	err := r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}
