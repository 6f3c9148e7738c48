package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stepup-fit/stepup-server/internal/model"
	"github.com/stepup-fit/stepup-server/internal/modules/board/dto"
	"github.com/stepup-fit/stepup-server/internal/modules/board/repository"
	"github.com/stepup-fit/stepup-server/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) BoardService {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.BoardPost{}, &model.BoardComment{}))

	repo := repository.NewBoardRepository(db)
	return NewBoardService(repo, nil)
}

func writeInput(userUID string) dto.WritePostInput {
	return dto.WritePostInput{
		UserUID:  userUID,
		Nickname: "runner42",
		Role:     model.RoleUser,
		Type:     model.BoardTypeSuggestion,
		Title:    "More squat variations please",
		Content:  "Would love bulgarian split squats.",
	}
}

func TestWritePost_SanitizesContent(t *testing.T) {
	svc := newTestService(t)

	input := writeInput("user-1")
	input.Content = `hello <script>alert("x")</script><b>world</b>`

	post, err := svc.WritePost(context.Background(), input)
	require.NoError(t, err)
	assert.NotContains(t, post.Content, "<script>")
	assert.Contains(t, post.Content, "<b>world</b>")
}

func TestListPosts_HidesSecretContent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	open := writeInput("user-1")
	_, err := svc.WritePost(ctx, open)
	require.NoError(t, err)

	pw := "hunter2"
	secret := writeInput("user-2")
	secret.Title = "Private question for the trainer"
	secret.Content = "My knee hurts when I do lunges."
	secret.IsSecret = true
	secret.SecretPassword = &pw
	_, err = svc.WritePost(ctx, secret)
	require.NoError(t, err)

	items, err := svc.ListPosts(ctx, "")
	require.NoError(t, err)
	require.Len(t, items, 2)

	for _, item := range items {
		if item.IsSecret {
			assert.Empty(t, item.Content)
		} else {
			assert.NotEmpty(t, item.Content)
		}
	}
}

func TestGetPost_SecretAccess(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	pw := "hunter2"
	input := writeInput("owner-1")
	input.IsSecret = true
	input.SecretPassword = &pw
	post, err := svc.WritePost(ctx, input)
	require.NoError(t, err)

	// Stranger without password.
	_, err = svc.GetPost(ctx, post.ID, "stranger", model.RoleUser, "")
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	// Wrong password.
	_, err = svc.GetPost(ctx, post.ID, "stranger", model.RoleUser, "wrong")
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	// Owner, admin and correct password all read it.
	for _, tc := range []struct {
		uid, role, password string
	}{
		{"owner-1", model.RoleUser, ""},
		{"stranger", model.RoleAdmin, ""},
		{"stranger", model.RoleUser, "hunter2"},
	} {
		got, err := svc.GetPost(ctx, post.ID, tc.uid, tc.role, tc.password)
		require.NoError(t, err)
		assert.Equal(t, post.ID, got.ID)
	}
}

func TestGetPost_NotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetPost(context.Background(), uuid.New(), "", "", "")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestDeletePost_Permissions(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	post, err := svc.WritePost(ctx, writeInput("owner-1"))
	require.NoError(t, err)

	// Someone else cannot delete it; the error does not reveal whether the
	// post exists.
	err = svc.DeletePost(ctx, post.ID, dto.DeletePostInput{UserUID: "stranger", Role: model.RoleUser})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	// The owner can.
	err = svc.DeletePost(ctx, post.ID, dto.DeletePostInput{UserUID: "owner-1", Role: model.RoleUser})
	require.NoError(t, err)

	// Deleting again reports the same opaque failure.
	err = svc.DeletePost(ctx, post.ID, dto.DeletePostInput{UserUID: "owner-1", Role: model.RoleUser})
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestDeletePost_AdminBypassesOwnership(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	post, err := svc.WritePost(ctx, writeInput("owner-1"))
	require.NoError(t, err)

	err = svc.DeletePost(ctx, post.ID, dto.DeletePostInput{UserUID: "moderator", Role: model.RoleAdmin})
	require.NoError(t, err)
}

func TestComments(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	post, err := svc.WritePost(ctx, writeInput("owner-1"))
	require.NoError(t, err)

	_, err = svc.WriteComment(ctx, uuid.New(), dto.WriteCommentInput{
		UserUID: "user-2", Content: "lost comment",
	})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = svc.WriteComment(ctx, post.ID, dto.WriteCommentInput{
		UserUID:  "user-2",
		Nickname: "coach",
		Content:  "Try goblet squats first.",
	})
	require.NoError(t, err)

	comments, err := svc.ListComments(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "Try goblet squats first.", comments[0].Content)
}

func TestSearch_WithoutIndexReturnsEmpty(t *testing.T) {
	svc := newTestService(t)

	result, err := svc.Search(context.Background(), "squat", "")
	require.NoError(t, err)
	assert.Equal(t, "squat", result.Query)
	assert.Empty(t, result.Hits)
}
