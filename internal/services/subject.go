package services

import (
	"errors"

	"github.com/edupulse/backend/internal/models"
	"gorm.io/gorm"
)

type SubjectService struct {
	db *gorm.DB
}

func NewSubjectService(db *gorm.DB) *SubjectService {
	return &SubjectService{db: db}
}

type SubjectListRequest struct {
	Page      int    `form:"page" binding:"min=0"`
	PageSize  int    `form:"page_size" binding:"min=0,max=100"`
	Name      string `form:"name"`
	TeacherID uint   `form:"teacher_id"`
}

type SubjectListResponse struct {
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
	Items    []models.Subject `json:"items"`
}

type CreateSubjectRequest struct {
	Name      string `json:"name" binding:"required"`
	TeacherID uint   `json:"teacher_id" binding:"required"`
}

type UpdateSubjectRequest struct {
	Name      string `json:"name"`
	TeacherID uint   `json:"teacher_id"`
}

// List returns paginated subjects with their teacher preloaded.
func (s *SubjectService) List(req *SubjectListRequest) (*SubjectListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 10
	}

	var subjects []models.Subject
	var total int64

	query := s.db.Model(&models.Subject{})

	if req.Name != "" {
		query = query.Where("name LIKE ?", "%"+req.Name+"%")
	}
	if req.TeacherID != 0 {
		query = query.Where("teacher_id = ?", req.TeacherID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (req.Page - 1) * req.PageSize
	if err := query.Preload("Teacher").Offset(offset).Limit(req.PageSize).
		Order("created_at DESC").Find(&subjects).Error; err != nil {
		return nil, err
	}

	return &SubjectListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    subjects,
	}, nil
}

// GetByID returns a subject by ID
func (s *SubjectService) GetByID(id uint) (*models.Subject, error) {
	var subject models.Subject
	if err := s.db.Preload("Teacher").First(&subject, id).Error; err != nil {
		return nil, err
	}
	return &subject, nil
}

// Create creates a new subject
func (s *SubjectService) Create(req *CreateSubjectRequest) (*models.Subject, error) {
	var teacher models.User
	if err := s.db.First(&teacher, req.TeacherID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("teacher not found")
		}
		return nil, err
	}
	if teacher.Role != "teacher" {
		return nil, errors.New("assigned user is not a teacher")
	}

	subject := models.Subject{
		Name:      req.Name,
		TeacherID: req.TeacherID,
	}

	if err := s.db.Create(&subject).Error; err != nil {
		return nil, &PersistenceError{Message: sanitizeBackendError(err), Err: err}
	}

	return &subject, nil
}

// Update updates a subject
func (s *SubjectService) Update(id uint, req *UpdateSubjectRequest) (*models.Subject, error) {
	var subject models.Subject
	if err := s.db.First(&subject, id).Error; err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.TeacherID != 0 {
		updates["teacher_id"] = req.TeacherID
	}

	if len(updates) > 0 {
		if err := s.db.Model(&subject).Updates(updates).Error; err != nil {
			return nil, &PersistenceError{Message: sanitizeBackendError(err), Err: err}
		}
	}

	return &subject, nil
}

// Delete removes a subject. Subjects referenced by comments stay.
func (s *SubjectService) Delete(id uint) error {
	var commentCount int64
	s.db.Model(&models.Comment{}).Where("subject_id = ?", id).Count(&commentCount)
	if commentCount > 0 {
		return errors.New("subject has evaluation comments and cannot be deleted")
	}

	result := s.db.Delete(&models.Subject{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
