package handlers

import (
	"strconv"

	"github.com/edupulse/backend/internal/services"
	"github.com/edupulse/backend/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SubjectHandler struct {
	subjectService *services.SubjectService
}

func NewSubjectHandler(db *gorm.DB) *SubjectHandler {
	return &SubjectHandler{
		subjectService: services.NewSubjectService(db),
	}
}

// List returns paginated subjects
// GET /api/subjects
func (h *SubjectHandler) List(c *gin.Context) {
	var req services.SubjectListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.subjectService.List(&req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, resp)
}

// GetByID returns a subject by ID
// GET /api/subjects/:id
func (h *SubjectHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid subject id")
		return
	}

	subject, err := h.subjectService.GetByID(uint(id))
	if err != nil {
		response.NotFound(c, "subject not found")
		return
	}

	response.Success(c, subject)
}

// Create creates a new subject
// POST /api/subjects
func (h *SubjectHandler) Create(c *gin.Context) {
	var req services.CreateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	subject, err := h.subjectService.Create(&req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Created(c, subject)
}

// Update updates a subject
// PUT /api/subjects/:id
func (h *SubjectHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid subject id")
		return
	}

	var req services.UpdateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	subject, err := h.subjectService.Update(uint(id), &req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, subject)
}

// Delete deletes a subject
// DELETE /api/subjects/:id
func (h *SubjectHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid subject id")
		return
	}

	if err := h.subjectService.Delete(uint(id)); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, gin.H{"message": "subject deleted successfully"})
}
