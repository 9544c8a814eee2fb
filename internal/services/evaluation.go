package services

import (
	"errors"
	"time"

	"github.com/edupulse/backend/internal/models"
	"gorm.io/gorm"
)

type EvaluationService struct {
	db *gorm.DB
}

func NewEvaluationService(db *gorm.DB) *EvaluationService {
	return &EvaluationService{db: db}
}

type EvaluationListRequest struct {
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
	Status   string `form:"status"`
}

type EvaluationListResponse struct {
	Total    int64               `json:"total"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"page_size"`
	Items    []models.Evaluation `json:"items"`
}

type CreateEvaluationRequest struct {
	StartDate   time.Time `json:"start_date" binding:"required"`
	EndDate     time.Time `json:"end_date" binding:"required"`
	Description string    `json:"description"`
}

type UpdateEvaluationRequest struct {
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Status      string     `json:"status" binding:"omitempty,oneof=open closed"`
	Description string     `json:"description"`
}

// List returns paginated evaluation periods
func (s *EvaluationService) List(req *EvaluationListRequest) (*EvaluationListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 10
	}

	var evaluations []models.Evaluation
	var total int64

	query := s.db.Model(&models.Evaluation{})

	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (req.Page - 1) * req.PageSize
	if err := query.Offset(offset).Limit(req.PageSize).Order("start_date DESC").Find(&evaluations).Error; err != nil {
		return nil, err
	}

	return &EvaluationListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    evaluations,
	}, nil
}

// GetByID returns an evaluation period by ID
func (s *EvaluationService) GetByID(id uint) (*models.Evaluation, error) {
	var evaluation models.Evaluation
	if err := s.db.First(&evaluation, id).Error; err != nil {
		return nil, err
	}
	return &evaluation, nil
}

// GetActive returns the currently open evaluation period, if any.
func (s *EvaluationService) GetActive() (*models.Evaluation, error) {
	now := time.Now()
	var evaluation models.Evaluation
	err := s.db.Where("status = ? AND start_date <= ? AND end_date >= ?", "open", now, now).
		Order("start_date DESC").First(&evaluation).Error
	if err != nil {
		return nil, err
	}
	return &evaluation, nil
}

// Create creates a new evaluation period
func (s *EvaluationService) Create(req *CreateEvaluationRequest) (*models.Evaluation, error) {
	if !req.EndDate.After(req.StartDate) {
		return nil, errors.New("end date must be after start date")
	}

	evaluation := models.Evaluation{
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      "open",
		Description: req.Description,
	}

	if err := s.db.Create(&evaluation).Error; err != nil {
		return nil, &PersistenceError{Message: sanitizeBackendError(err), Err: err}
	}

	return &evaluation, nil
}

// Update updates an evaluation period
func (s *EvaluationService) Update(id uint, req *UpdateEvaluationRequest) (*models.Evaluation, error) {
	var evaluation models.Evaluation
	if err := s.db.First(&evaluation, id).Error; err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if req.StartDate != nil {
		updates["start_date"] = *req.StartDate
	}
	if req.EndDate != nil {
		updates["end_date"] = *req.EndDate
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}

	if len(updates) > 0 {
		if err := s.db.Model(&evaluation).Updates(updates).Error; err != nil {
			return nil, &PersistenceError{Message: sanitizeBackendError(err), Err: err}
		}
	}

	return &evaluation, nil
}

// Delete removes an evaluation period. Periods with comments stay.
func (s *EvaluationService) Delete(id uint) error {
	var commentCount int64
	s.db.Model(&models.Comment{}).Where("evaluation_id = ?", id).Count(&commentCount)
	if commentCount > 0 {
		return errors.New("evaluation period has comments and cannot be deleted")
	}

	result := s.db.Delete(&models.Evaluation{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
