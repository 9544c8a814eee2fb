package services

import (
	"context"
	"errors"

	"github.com/edupulse/backend/internal/models"
	"github.com/edupulse/backend/pkg/logger"
	"gorm.io/gorm"
)

// CommentStore is the persistence collaborator for comments. Insert is
// all-or-nothing: either the full comment row becomes visible or nothing does.
type CommentStore interface {
	Insert(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
}

type gormCommentStore struct {
	db *gorm.DB
}

func (s *gormCommentStore) Insert(ctx context.Context, comment *models.Comment) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(comment).Error
	})
}

func (s *gormCommentStore) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// CommentService owns the comment ingestion transaction and the read surface
// around it.
type CommentService struct {
	db       *gorm.DB
	store    CommentStore
	resolver *SentimentResolver
}

func NewCommentService(db *gorm.DB, resolver *SentimentResolver) *CommentService {
	return &CommentService{
		db:       db,
		store:    &gormCommentStore{db: db},
		resolver: resolver,
	}
}

type CreateCommentRequest struct {
	StudentID     uint    `json:"student_id"`
	TeacherID     uint    `json:"teacher_id"`
	SubjectID     uint    `json:"subject_id"`
	EvaluationID  *uint   `json:"evaluation_id"`
	Body          string  `json:"body"`
	RatingAverage float64 `json:"rating_average"`
}

func validateCreateComment(req *CreateCommentRequest) *ValidationError {
	if req.StudentID == 0 {
		return &ValidationError{Field: "student_id", Message: "student id is required"}
	}
	if req.TeacherID == 0 {
		return &ValidationError{Field: "teacher_id", Message: "teacher id is required"}
	}
	if req.SubjectID == 0 {
		return &ValidationError{Field: "subject_id", Message: "subject id is required"}
	}
	if req.RatingAverage == 0 {
		return &ValidationError{Field: "rating_average", Message: "rating average is required"}
	}
	return nil
}

// Create validates the request, resolves the sentiment label and persists the
// comment atomically. A failed classifier never fails the request: the
// comment is stored with the "not analyzed" label instead. The store is
// called exactly once, after classification has fully completed.
func (s *CommentService) Create(ctx context.Context, req *CreateCommentRequest) (*models.Comment, error) {
	if verr := validateCreateComment(req); verr != nil {
		return nil, verr
	}

	label, err := s.resolver.Resolve(ctx, req.Body, req.RatingAverage)
	if err != nil {
		if !errors.Is(err, ErrClassifierUnavailable) {
			return nil, err
		}
		label = models.SentimentNotAnalyzed
		logger.Warn().
			Uint("teacher_id", req.TeacherID).
			Msg("classifier unavailable, storing comment with degraded label")
	}

	// Cancellation before the write means no comment is persisted.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		StudentID:     req.StudentID,
		TeacherID:     req.TeacherID,
		SubjectID:     req.SubjectID,
		EvaluationID:  req.EvaluationID,
		Body:          req.Body,
		RatingAverage: req.RatingAverage,
		Sentiment:     label,
	}

	if err := s.store.Insert(ctx, comment); err != nil {
		logger.Error().Err(err).Msg("comment insert rejected by backend")
		return nil, &PersistenceError{Message: sanitizeBackendError(err), Err: err}
	}

	return comment, nil
}

// GetByID returns a comment by ID.
func (s *CommentService) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.store.GetByID(ctx, id)
}

type CommentListRequest struct {
	Page      int    `form:"page" binding:"min=0"`
	PageSize  int    `form:"page_size" binding:"min=0,max=100"`
	TeacherID uint   `form:"teacher_id"`
	SubjectID uint   `form:"subject_id"`
	StudentID uint   `form:"student_id"`
	Sentiment string `form:"sentiment"`
}

type CommentListResponse struct {
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
	Items    []models.Comment `json:"items"`
}

// List returns paginated comments with optional filters.
func (s *CommentService) List(req *CommentListRequest) (*CommentListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	var comments []models.Comment
	var total int64

	query := s.db.Model(&models.Comment{})

	if req.TeacherID != 0 {
		query = query.Where("teacher_id = ?", req.TeacherID)
	}
	if req.SubjectID != 0 {
		query = query.Where("subject_id = ?", req.SubjectID)
	}
	if req.StudentID != 0 {
		query = query.Where("student_id = ?", req.StudentID)
	}
	if req.Sentiment != "" {
		query = query.Where("sentiment = ?", req.Sentiment)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (req.Page - 1) * req.PageSize
	if err := query.Offset(offset).Limit(req.PageSize).Order("created_at DESC").Find(&comments).Error; err != nil {
		return nil, err
	}

	return &CommentListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    comments,
	}, nil
}

// Delete removes a comment.
func (s *CommentService) Delete(id uint) error {
	result := s.db.Delete(&models.Comment{}, id)
	if result.Error != nil {
		return &PersistenceError{Message: sanitizeBackendError(result.Error), Err: result.Error}
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
