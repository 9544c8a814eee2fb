package services

import (
	"errors"

	"github.com/edupulse/backend/internal/models"
	"github.com/edupulse/backend/internal/utils"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

type UserListRequest struct {
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
	Name     string `form:"name"`
	Role     string `form:"role"`
}

type UserListResponse struct {
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
	Items    []models.User `json:"items"`
}

type CreateUserRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	Role        string `json:"role" binding:"required,oneof=student teacher admin"`
	Title       string `json:"title"`
	Certificate string `json:"certificate"`
}

type UpdateUserRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email" binding:"omitempty,email"`
	Password    string `json:"password" binding:"omitempty,min=6"`
	Role        string `json:"role" binding:"omitempty,oneof=student teacher admin"`
	Title       string `json:"title"`
	Certificate string `json:"certificate"`
	IsActive    *bool  `json:"is_active"`
}

// List returns paginated users
func (s *UserService) List(req *UserListRequest) (*UserListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 10
	}

	var users []models.User
	var total int64

	query := s.db.Model(&models.User{})

	if req.Name != "" {
		query = query.Where("name LIKE ?", "%"+req.Name+"%")
	}
	if req.Role != "" {
		query = query.Where("role = ?", req.Role)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (req.Page - 1) * req.PageSize
	if err := query.Offset(offset).Limit(req.PageSize).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}

	return &UserListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    users,
	}, nil
}

// GetByID returns a user by ID
func (s *UserService) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Create creates a new user
func (s *UserService) Create(req *CreateUserRequest) (*models.User, error) {
	var count int64
	s.db.Model(&models.User{}).Where("email = ?", req.Email).Count(&count)
	if count > 0 {
		return nil, errors.New("email already registered")
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:        req.Name,
		Email:       req.Email,
		Password:    hashedPassword,
		Role:        req.Role,
		Title:       req.Title,
		Certificate: req.Certificate,
		IsActive:    true,
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, &PersistenceError{Message: sanitizeBackendError(err), Err: err}
	}

	return &user, nil
}

// Update updates a user
func (s *UserService) Update(id uint, req *UpdateUserRequest) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Email != "" {
		updates["email"] = req.Email
	}
	if req.Password != "" {
		hashedPassword, err := utils.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		updates["password"] = hashedPassword
	}
	if req.Role != "" {
		updates["role"] = req.Role
	}
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Certificate != "" {
		updates["certificate"] = req.Certificate
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(&user).Updates(updates).Error; err != nil {
			return nil, &PersistenceError{Message: sanitizeBackendError(err), Err: err}
		}
	}

	return &user, nil
}

// Delete removes a user. Users with recorded comments are kept so the
// evaluation history stays consistent.
func (s *UserService) Delete(id uint) error {
	var commentCount int64
	s.db.Model(&models.Comment{}).
		Where("student_id = ? OR teacher_id = ?", id, id).
		Count(&commentCount)
	if commentCount > 0 {
		return errors.New("user has evaluation comments and cannot be deleted")
	}

	result := s.db.Delete(&models.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListTeachers returns all active teachers, for selection lists.
func (s *UserService) ListTeachers() ([]models.User, error) {
	var teachers []models.User
	if err := s.db.Where("role = ? AND is_active = ?", "teacher", true).
		Order("name ASC").Find(&teachers).Error; err != nil {
		return nil, err
	}
	return teachers, nil
}
