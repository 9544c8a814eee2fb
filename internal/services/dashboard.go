package services

import (
	"time"

	"github.com/edupulse/backend/internal/models"
	"gorm.io/gorm"
)

type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

type DashboardStatsRequest struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	TeacherID uint   `form:"teacher_id"`
}

type DashboardStats struct {
	TotalComments int64   `json:"total_comments"`
	Positive      int64   `json:"positive"`
	Negative      int64   `json:"negative"`
	Neutral       int64   `json:"neutral"`
	NotAnalyzed   int64   `json:"not_analyzed"`
	AverageRating float64 `json:"average_rating"`
}

type TeacherStats struct {
	TeacherID     uint    `json:"teacher_id"`
	TeacherName   string  `json:"teacher_name"`
	CommentCount  int64   `json:"comment_count"`
	Positive      int64   `json:"positive"`
	Negative      int64   `json:"negative"`
	Neutral       int64   `json:"neutral"`
	AverageRating float64 `json:"average_rating"`
}

type DashboardResponse struct {
	Stats        DashboardStats `json:"stats"`
	TeacherStats []TeacherStats `json:"teacher_stats"`
}

// GetStats aggregates sentiment counts and rating averages over a date range.
func (s *DashboardService) GetStats(req *DashboardStatsRequest) (*DashboardResponse, error) {
	var startDate, endDate time.Time
	var err error

	if req.StartDate != "" {
		startDate, err = time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			startDate = time.Now().AddDate(0, -1, 0)
		}
	} else {
		startDate = time.Now().AddDate(0, -1, 0)
	}

	if req.EndDate != "" {
		endDate, err = time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			endDate = time.Now()
		}
		endDate = endDate.Add(24*time.Hour - time.Second)
	} else {
		endDate = time.Now()
	}

	base := s.db.Model(&models.Comment{}).
		Where("created_at BETWEEN ? AND ?", startDate, endDate)
	if req.TeacherID != 0 {
		base = base.Where("teacher_id = ?", req.TeacherID)
	}

	var stats DashboardStats

	base.Session(&gorm.Session{}).Count(&stats.TotalComments)
	base.Session(&gorm.Session{}).Where("sentiment = ?", models.SentimentPositive).Count(&stats.Positive)
	base.Session(&gorm.Session{}).Where("sentiment = ?", models.SentimentNegative).Count(&stats.Negative)
	base.Session(&gorm.Session{}).Where("sentiment = ?", models.SentimentNeutral).Count(&stats.Neutral)
	base.Session(&gorm.Session{}).Where("sentiment = ?", models.SentimentNotAnalyzed).Count(&stats.NotAnalyzed)
	base.Session(&gorm.Session{}).Select("COALESCE(AVG(rating_average), 0)").Scan(&stats.AverageRating)

	var teacherStats []TeacherStats
	s.db.Model(&models.Comment{}).
		Select("teacher_id, COUNT(*) as comment_count, " +
			"SUM(CASE WHEN sentiment = 'positive' THEN 1 ELSE 0 END) as positive, " +
			"SUM(CASE WHEN sentiment = 'negative' THEN 1 ELSE 0 END) as negative, " +
			"SUM(CASE WHEN sentiment = 'neutral' THEN 1 ELSE 0 END) as neutral, " +
			"COALESCE(AVG(rating_average), 0) as average_rating").
		Where("created_at BETWEEN ? AND ?", startDate, endDate).
		Group("teacher_id").
		Order("comment_count DESC").
		Limit(10).
		Scan(&teacherStats)

	for i := range teacherStats {
		var teacher models.User
		if err := s.db.First(&teacher, teacherStats[i].TeacherID).Error; err == nil {
			teacherStats[i].TeacherName = teacher.Name
		}
	}

	return &DashboardResponse{
		Stats:        stats,
		TeacherStats: teacherStats,
	}, nil
}
