package handlers

import (
	"strconv"

	"github.com/edupulse/backend/internal/services"
	"github.com/edupulse/backend/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type EvaluationHandler struct {
	evaluationService *services.EvaluationService
}

func NewEvaluationHandler(db *gorm.DB) *EvaluationHandler {
	return &EvaluationHandler{
		evaluationService: services.NewEvaluationService(db),
	}
}

// List returns paginated evaluation periods
// GET /api/evaluations
func (h *EvaluationHandler) List(c *gin.Context) {
	var req services.EvaluationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.evaluationService.List(&req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, resp)
}

// GetActive returns the currently open evaluation period
// GET /api/evaluations/active
func (h *EvaluationHandler) GetActive(c *gin.Context) {
	evaluation, err := h.evaluationService.GetActive()
	if err != nil {
		response.NotFound(c, "no active evaluation period")
		return
	}

	response.Success(c, evaluation)
}

// GetByID returns an evaluation period by ID
// GET /api/evaluations/:id
func (h *EvaluationHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid evaluation id")
		return
	}

	evaluation, err := h.evaluationService.GetByID(uint(id))
	if err != nil {
		response.NotFound(c, "evaluation not found")
		return
	}

	response.Success(c, evaluation)
}

// Create creates a new evaluation period
// POST /api/evaluations
func (h *EvaluationHandler) Create(c *gin.Context) {
	var req services.CreateEvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	evaluation, err := h.evaluationService.Create(&req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Created(c, evaluation)
}

// Update updates an evaluation period
// PUT /api/evaluations/:id
func (h *EvaluationHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid evaluation id")
		return
	}

	var req services.UpdateEvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	evaluation, err := h.evaluationService.Update(uint(id), &req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, evaluation)
}

// Delete deletes an evaluation period
// DELETE /api/evaluations/:id
func (h *EvaluationHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid evaluation id")
		return
	}

	if err := h.evaluationService.Delete(uint(id)); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, gin.H{"message": "evaluation deleted successfully"})
}
