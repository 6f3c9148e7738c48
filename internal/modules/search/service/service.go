package service

import (
	"encoding/json"
	"html"
	"log"
	"strings"

	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
	"github.com/stepup-fit/stepup-server/internal/model"
)

const boardIndex = "board_posts"

// BoardSearchService mirrors board posts into Meilisearch. Secret posts are
// never indexed: their body must not be discoverable through search.
type BoardSearchService interface {
	IndexPost(post *model.BoardPost) error
	DeletePost(id string) error
	Search(query, postType string, limit int) ([]BoardDoc, error)
}

type BoardDoc struct {
	ID        string `json:"id"`
	UserUID   string `json:"user_uid"`
	Nickname  string `json:"nickname"`
	Role      string `json:"role"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"created_at"`
}

type boardSearchService struct {
	client    meilisearch.ServiceManager
	sanitizer *bluemonday.Policy
}

func NewBoardSearchService(client meilisearch.ServiceManager) BoardSearchService {
	s := &boardSearchService{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
	}
	s.initIndex()
	return s
}

func (s *boardSearchService) initIndex() {
	filterable := []string{"type"}
	filterableInterface := make([]any, len(filterable))
	for i, v := range filterable {
		filterableInterface[i] = v
	}
	if _, err := s.client.Index(boardIndex).UpdateFilterableAttributes(&filterableInterface); err != nil {
		log.Printf("Failed to update board filterable attributes: %v", err)
	}

	sortable := []string{"created_at"}
	if _, err := s.client.Index(boardIndex).UpdateSortableAttributes(&sortable); err != nil {
		log.Printf("Failed to update board sortable attributes: %v", err)
	}
}

// cleanContentForIndex strips markup so only readable text is searchable.
func (s *boardSearchService) cleanContentForIndex(content string) string {
	content = strings.ReplaceAll(content, "</p>", " ")
	content = strings.ReplaceAll(content, "<br>", " ")
	content = strings.ReplaceAll(content, "</div>", " ")

	sanitized := s.sanitizer.Sanitize(content)
	cleanText := html.UnescapeString(sanitized)
	return strings.Join(strings.Fields(cleanText), " ")
}

func (s *boardSearchService) IndexPost(post *model.BoardPost) error {
	if post.IsSecret {
		return nil
	}

	doc := BoardDoc{
		ID:        post.ID.String(),
		UserUID:   post.UserUID,
		Nickname:  post.Nickname,
		Role:      post.Role,
		Type:      post.Type,
		Title:     post.Title,
		Content:   s.cleanContentForIndex(post.Content),
		CreatedAt: post.CreatedAt.Unix(),
	}

	primaryKey := "id"
	_, err := s.client.Index(boardIndex).AddDocuments([]BoardDoc{doc}, &primaryKey)
	return err
}

func (s *boardSearchService) DeletePost(id string) error {
	_, err := s.client.Index(boardIndex).DeleteDocument(id)
	return err
}

func (s *boardSearchService) Search(query, postType string, limit int) ([]BoardDoc, error) {
	reqLimit := int64(limit)
	if reqLimit <= 0 {
		reqLimit = 20
	}

	searchReq := &meilisearch.SearchRequest{
		Limit: reqLimit,
		Sort:  []string{"created_at:desc"},
	}
	if postType != "" {
		searchReq.Filter = "type = " + postType
	}

	resp, err := s.client.Index(boardIndex).Search(query, searchReq)
	if err != nil {
		return nil, err
	}

	docs := make([]BoardDoc, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		raw, err := json.Marshal(hit)
		if err != nil {
			continue
		}
		var doc BoardDoc
		if err := json.Unmarshal(raw, &doc); err != nil {
			log.Printf("Failed to decode board search hit: %v", err)
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
