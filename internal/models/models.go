package models

import (
	"time"

	"gorm.io/gorm"
)

// Sentiment labels form a closed set. Anything a classifier returns outside
// this set is never stored; SentimentNotAnalyzed marks comments whose
// classification could not be completed.
const (
	SentimentPositive    = "positive"
	SentimentNegative    = "negative"
	SentimentNeutral     = "neutral"
	SentimentNotAnalyzed = "not analyzed"
)

// IsSentimentLabel reports whether s is one of the three real labels.
func IsSentimentLabel(s string) bool {
	return s == SentimentPositive || s == SentimentNegative || s == SentimentNeutral
}

// User represents a platform user: student, teacher or admin.
type User struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:200;not null" json:"name"`
	Email       string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password    string         `gorm:"size:255" json:"-"`
	Role        string         `gorm:"size:50;default:student" json:"role"` // student, teacher, admin
	Title       string         `gorm:"size:200" json:"title,omitempty"`     // academic title, teachers only
	Certificate string         `gorm:"size:500" json:"certificate,omitempty"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	LastLogin   *time.Time     `json:"last_login"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// Subject represents a course taught by a teacher.
type Subject struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:200;not null" json:"name"`
	TeacherID uint           `gorm:"index;not null" json:"teacher_id"`
	Teacher   *User          `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Evaluation represents an evaluation window during which students may
// submit comments.
type Evaluation struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	StartDate   time.Time      `json:"start_date"`
	EndDate     time.Time      `json:"end_date"`
	Status      string         `gorm:"size:50;default:open" json:"status"` // open, closed
	Description string         `gorm:"size:500" json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// Comment is a student's free-text comment about a teacher, stored together
// with the sentiment label resolved at ingestion time. Immutable once created
// except for the sentiment fields touched by reclassification.
type Comment struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	StudentID       uint           `gorm:"index;not null" json:"student_id"`
	TeacherID       uint           `gorm:"index;not null" json:"teacher_id"`
	SubjectID       uint           `gorm:"index;not null" json:"subject_id"`
	EvaluationID    *uint          `gorm:"index" json:"evaluation_id,omitempty"`
	Body            string         `gorm:"type:text;not null" json:"body"`
	RatingAverage   float64        `gorm:"not null" json:"rating_average"`
	Sentiment       string         `gorm:"size:20;not null" json:"sentiment"`
	ReclassifyCount int            `gorm:"default:0" json:"reclassify_count"`
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// SystemLog represents a system operation log entry.
type SystemLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Level     string    `gorm:"size:20;index" json:"level"` // info, warning, error
	Module    string    `gorm:"size:100;index" json:"module"`
	Action    string    `gorm:"size:200;index" json:"action"`
	Message   string    `gorm:"type:text" json:"message"`
	UserID    *uint     `json:"user_id"`
	IP        string    `gorm:"size:50" json:"ip"`
	UserAgent string    `gorm:"size:500" json:"user_agent"`
	Extra     string    `gorm:"type:text" json:"extra"` // JSON extra data
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName overrides
func (User) TableName() string       { return "users" }
func (Subject) TableName() string    { return "subjects" }
func (Evaluation) TableName() string { return "evaluations" }
func (Comment) TableName() string    { return "comments" }
func (SystemLog) TableName() string  { return "system_logs" }
