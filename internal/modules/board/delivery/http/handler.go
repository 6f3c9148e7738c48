package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	boardDto "github.com/stepup-fit/stepup-server/internal/modules/board/dto"
	board "github.com/stepup-fit/stepup-server/internal/modules/board/service"
	"github.com/stepup-fit/stepup-server/pkg/response"
	"github.com/stepup-fit/stepup-server/pkg/validator"
)

type BoardHandler struct {
	service board.BoardService
}

func NewBoardHandler(service board.BoardService) *BoardHandler {
	return &BoardHandler{service: service}
}

// ListPosts handles GET /api/board/list?type=suggestion|trainer
func (h *BoardHandler) ListPosts(c *gin.Context) {
	postType := c.Query("type")

	posts, err := h.service.ListPosts(c.Request.Context(), postType)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

// GetPost handles GET /api/board/:id. Secret posts take the reader's
// credentials via query: userUid/role (owner or admin) or password.
func (h *BoardHandler) GetPost(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	post, err := h.service.GetPost(c.Request.Context(), id,
		c.Query("userUid"), c.Query("role"), c.Query("password"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// WritePost handles POST /api/board/write
func (h *BoardHandler) WritePost(c *gin.Context) {
	var input boardDto.WritePostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	post, err := h.service.WritePost(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "post saved", "id": post.ID})
}

// DeletePost handles DELETE /api/board/:id (userUid/role in the body, as
// the web client has always sent them).
func (h *BoardHandler) DeletePost(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	var input boardDto.DeletePostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userUid is required"})
		return
	}

	if err := h.service.DeletePost(c.Request.Context(), id, input); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "post deleted"})
}

// ListComments handles GET /api/board/:id/comments
func (h *BoardHandler) ListComments(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	comments, err := h.service.ListComments(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}

// WriteComment handles POST /api/board/:id/comment
func (h *BoardHandler) WriteComment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	var input boardDto.WriteCommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	comment, err := h.service.WriteComment(c.Request.Context(), id, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "comment saved", "id": comment.ID})
}

// Search handles GET /api/board/search?q=...&type=...
func (h *BoardHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q query parameter is required"})
		return
	}

	result, err := h.service.Search(c.Request.Context(), query, c.Query("type"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
