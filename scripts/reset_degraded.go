package main

import (
	"fmt"
	"os"

	"github.com/edupulse/backend/internal/config"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type Comment struct {
	ID              uint    `gorm:"primaryKey"`
	TeacherID       uint    `gorm:"column:teacher_id"`
	Body            string  `gorm:"type:text"`
	RatingAverage   float64 `gorm:"column:rating_average"`
	Sentiment       string  `gorm:"size:20"`
	ReclassifyCount int     `gorm:"column:reclassify_count"`
}

func (Comment) TableName() string { return "comments" }

// Lists comments stuck in the "not analyzed" state. With --reset, zeroes
// their reclassify_count so the periodic sweep tries them again.
func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	db, err := gorm.Open(sqlite.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		fmt.Printf("Failed to connect to database: %v\n", err)
		os.Exit(1)
	}

	var comments []Comment
	if err := db.Where("sentiment = ?", "not analyzed").Order("id").Find(&comments).Error; err != nil {
		fmt.Printf("Failed to read comments: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Found %d degraded comments:\n\n", len(comments))

	for _, c := range comments {
		body := c.Body
		if len(body) > 60 {
			body = body[:60] + "..."
		}
		fmt.Printf("ID: %d, teacher: %d, rating: %.1f, attempts: %d, body: %s\n",
			c.ID, c.TeacherID, c.RatingAverage, c.ReclassifyCount, body)
	}

	if len(os.Args) > 1 && os.Args[1] == "--reset" {
		fmt.Println("\n>>> Resetting reclassify counters...")

		result := db.Model(&Comment{}).
			Where("sentiment = ?", "not analyzed").
			Update("reclassify_count", 0)
		if result.Error != nil {
			fmt.Printf("Failed to reset counters: %v\n", result.Error)
			os.Exit(1)
		}

		fmt.Printf("Reset %d comments; the next sweep will retry them.\n", result.RowsAffected)
	} else {
		fmt.Println("\nRun with --reset to zero the reclassify counters.")
	}
}
