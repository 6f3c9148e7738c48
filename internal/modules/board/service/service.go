package service

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/stepup-fit/stepup-server/internal/model"
	"github.com/stepup-fit/stepup-server/internal/modules/board/dto"
	"github.com/stepup-fit/stepup-server/internal/modules/board/repository"
	search "github.com/stepup-fit/stepup-server/internal/modules/search/service"
	"github.com/stepup-fit/stepup-server/pkg/apperror"
)

type BoardService interface {
	WritePost(ctx context.Context, input dto.WritePostInput) (*model.BoardPost, error)
	ListPosts(ctx context.Context, postType string) ([]dto.PostListItem, error)
	// GetPost reveals a secret post's body only to its owner, an admin, or a
	// caller presenting the post's password.
	GetPost(ctx context.Context, id uuid.UUID, requesterUID, requesterRole, password string) (*model.BoardPost, error)
	DeletePost(ctx context.Context, id uuid.UUID, input dto.DeletePostInput) error
	WriteComment(ctx context.Context, boardID uuid.UUID, input dto.WriteCommentInput) (*model.BoardComment, error)
	ListComments(ctx context.Context, boardID uuid.UUID) ([]model.BoardComment, error)
	Search(ctx context.Context, query, postType string) (*dto.SearchResult, error)
}

type boardService struct {
	repo      repository.BoardRepository
	search    search.BoardSearchService
	sanitizer *bluemonday.Policy
}

// NewBoardService wires the community board. search may be nil when no
// Meilisearch instance is configured; indexing is then skipped.
func NewBoardService(repo repository.BoardRepository, searchSvc search.BoardSearchService) BoardService {
	return &boardService{
		repo:      repo,
		search:    searchSvc,
		sanitizer: bluemonday.UGCPolicy(),
	}
}

func (s *boardService) WritePost(ctx context.Context, input dto.WritePostInput) (*model.BoardPost, error) {
	post := &model.BoardPost{
		UserUID:  input.UserUID,
		Nickname: input.Nickname,
		Role:     input.Role,
		Type:     input.Type,
		Title:    input.Title,
		Content:  s.sanitizer.Sanitize(input.Content),
		IsSecret: input.IsSecret,
		VideoURL: input.VideoURL,
	}
	// The password only means something on a secret post.
	if input.IsSecret {
		post.SecretPassword = input.SecretPassword
	}

	if err := s.repo.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	if s.search != nil {
		go func(p model.BoardPost) {
			if err := s.search.IndexPost(&p); err != nil {
				log.Printf("Failed to index board post %s: %v", p.ID, err)
			}
		}(*post)
	}

	return post, nil
}

func (s *boardService) ListPosts(ctx context.Context, postType string) ([]dto.PostListItem, error) {
	posts, err := s.repo.ListPosts(ctx, postType)
	if err != nil {
		return nil, err
	}

	items := make([]dto.PostListItem, 0, len(posts))
	for _, p := range posts {
		item := dto.PostListItem{
			ID:        p.ID,
			UserUID:   p.UserUID,
			Nickname:  p.Nickname,
			Role:      p.Role,
			Type:      p.Type,
			Title:     p.Title,
			Content:   p.Content,
			IsSecret:  p.IsSecret,
			VideoURL:  p.VideoURL,
			CreatedAt: p.CreatedAt,
		}
		if p.IsSecret {
			item.Content = ""
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *boardService) GetPost(ctx context.Context, id uuid.UUID, requesterUID, requesterRole, password string) (*model.BoardPost, error) {
	post, err := s.repo.FindPostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, apperror.ErrNotFound
	}

	if post.IsSecret && !canReadSecret(post, requesterUID, requesterRole, password) {
		return nil, apperror.New(403, "secret post: password required", apperror.ErrForbidden)
	}

	return post, nil
}

func canReadSecret(post *model.BoardPost, requesterUID, requesterRole, password string) bool {
	if requesterUID != "" && requesterUID == post.UserUID {
		return true
	}
	if requesterRole == model.RoleAdmin {
		return true
	}
	return post.SecretPassword != nil && password != "" && password == *post.SecretPassword
}

func (s *boardService) DeletePost(ctx context.Context, id uuid.UUID, input dto.DeletePostInput) error {
	isAdmin := input.Role == model.RoleAdmin

	affected, err := s.repo.DeletePost(ctx, id, input.UserUID, isAdmin)
	if err != nil {
		return err
	}
	if affected == 0 {
		// Same shape as the board always had: not-yours and not-there are
		// indistinguishable to the caller.
		return apperror.New(403, "no permission to delete, or post does not exist", apperror.ErrForbidden)
	}

	if s.search != nil {
		go func() {
			if err := s.search.DeletePost(id.String()); err != nil {
				log.Printf("Failed to remove board post %s from index: %v", id, err)
			}
		}()
	}

	return nil
}

func (s *boardService) WriteComment(ctx context.Context, boardID uuid.UUID, input dto.WriteCommentInput) (*model.BoardComment, error) {
	post, err := s.repo.FindPostByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, apperror.ErrNotFound
	}

	comment := &model.BoardComment{
		BoardID:  boardID,
		UserUID:  input.UserUID,
		Nickname: input.Nickname,
		Content:  s.sanitizer.Sanitize(input.Content),
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *boardService) ListComments(ctx context.Context, boardID uuid.UUID) ([]model.BoardComment, error) {
	comments, err := s.repo.ListComments(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []model.BoardComment{}
	}
	return comments, nil
}

func (s *boardService) Search(ctx context.Context, query, postType string) (*dto.SearchResult, error) {
	if s.search == nil {
		return &dto.SearchResult{Query: query, Hits: []dto.PostListItem{}}, nil
	}

	docs, err := s.search.Search(query, postType, 20)
	if err != nil {
		return nil, err
	}

	hits := make([]dto.PostListItem, 0, len(docs))
	for _, d := range docs {
		id, err := uuid.Parse(d.ID)
		if err != nil {
			continue
		}
		hits = append(hits, dto.PostListItem{
			ID:       id,
			UserUID:  d.UserUID,
			Nickname: d.Nickname,
			Role:     d.Role,
			Type:     d.Type,
			Title:    d.Title,
			Content:  d.Content,
		})
	}
	return &dto.SearchResult{Query: query, Hits: hits}, nil
}
