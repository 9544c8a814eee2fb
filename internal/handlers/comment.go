package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/edupulse/backend/internal/models"
	"github.com/edupulse/backend/internal/services"
	"github.com/edupulse/backend/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// commentAPI is the slice of the service layer the comment endpoints use.
type commentAPI interface {
	Create(ctx context.Context, req *services.CreateCommentRequest) (*models.Comment, error)
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	List(req *services.CommentListRequest) (*services.CommentListResponse, error)
	Delete(id uint) error
}

type CommentHandler struct {
	commentService commentAPI
	taskQueue      services.TaskQueue
}

func NewCommentHandler(commentService *services.CommentService, taskQueue services.TaskQueue) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		taskQueue:      taskQueue,
	}
}

// Create ingests a new evaluation comment
// POST /api/comments
func (h *CommentHandler) Create(c *gin.Context) {
	var req services.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	comment, err := h.commentService.Create(c.Request.Context(), &req)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			response.BadRequest(c, verr.Error())
			return
		}

		var perr *services.PersistenceError
		if errors.As(err, &perr) {
			response.Conflict(c, perr.Message)
			return
		}

		response.ServerError(c, err.Error())
		return
	}

	response.Created(c, comment)
}

// List returns paginated comments
// GET /api/comments
func (h *CommentHandler) List(c *gin.Context) {
	var req services.CommentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.commentService.List(&req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, resp)
}

// GetByID returns a comment by ID
// GET /api/comments/:id
func (h *CommentHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid comment id")
		return
	}

	comment, err := h.commentService.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "comment not found")
			return
		}
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, comment)
}

// Reclassify queues a degraded comment for another classification attempt
// POST /api/comments/:id/reclassify
func (h *CommentHandler) Reclassify(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid comment id")
		return
	}

	if _, err := h.commentService.GetByID(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "comment not found")
			return
		}
		response.ServerError(c, err.Error())
		return
	}

	if err := h.taskQueue.Enqueue(&services.SentimentTask{CommentID: uint(id)}); err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, gin.H{"message": "comment queued for reclassification"})
}

// Delete deletes a comment
// DELETE /api/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid comment id")
		return
	}

	if err := h.commentService.Delete(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "comment not found")
			return
		}
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, gin.H{"message": "comment deleted successfully"})
}
