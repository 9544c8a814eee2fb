package services

import (
	"context"
	"errors"

	"github.com/edupulse/backend/internal/config"
	"github.com/edupulse/backend/internal/models"
	"github.com/edupulse/backend/pkg/logger"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// ReclassifyStore is the persistence collaborator for reclassification.
// Writes touch only the sentiment fields; the rest of the row never moves.
type ReclassifyStore interface {
	Get(ctx context.Context, id uint) (*models.Comment, error)
	CountAttempt(ctx context.Context, comment *models.Comment) error
	SetSentiment(ctx context.Context, comment *models.Comment, label string) error
}

type gormReclassifyStore struct {
	db *gorm.DB
}

func (s *gormReclassifyStore) Get(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *gormReclassifyStore) CountAttempt(ctx context.Context, comment *models.Comment) error {
	return s.db.WithContext(ctx).Model(comment).
		Update("reclassify_count", gorm.Expr("reclassify_count + 1")).Error
}

func (s *gormReclassifyStore) SetSentiment(ctx context.Context, comment *models.Comment, label string) error {
	return s.db.WithContext(ctx).Model(comment).Updates(map[string]interface{}{
		"sentiment":        label,
		"reclassify_count": comment.ReclassifyCount + 1,
	}).Error
}

// ReclassifyService retries classification for comments that were stored with
// the degraded "not analyzed" label because the classifier was down.
type ReclassifyService struct {
	db       *gorm.DB
	store    ReclassifyStore
	resolver *SentimentResolver
	cfg      *config.SentimentConfig
	cron     *cron.Cron
	queue    TaskQueue
}

func NewReclassifyService(db *gorm.DB, resolver *SentimentResolver, cfg *config.SentimentConfig, queue TaskQueue) *ReclassifyService {
	return &ReclassifyService{
		db:       db,
		store:    &gormReclassifyStore{db: db},
		resolver: resolver,
		cfg:      cfg,
		queue:    queue,
	}
}

// Process re-resolves the sentiment for one comment. A comment that was
// edited or already reclassified keeps its current label; only "not analyzed"
// rows are touched.
func (s *ReclassifyService) Process(ctx context.Context, task *SentimentTask) error {
	comment, err := s.store.Get(ctx, task.CommentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Infof("[Reclassify] Comment %d no longer exists, skipping", task.CommentID)
			return nil
		}
		return err
	}

	if comment.Sentiment != models.SentimentNotAnalyzed {
		return nil
	}

	if s.cfg.MaxReclassify > 0 && comment.ReclassifyCount >= s.cfg.MaxReclassify {
		logger.Infof("[Reclassify] Comment %d reached max attempts (%d), leaving as is",
			comment.ID, s.cfg.MaxReclassify)
		return nil
	}

	label, err := s.resolver.Resolve(ctx, comment.Body, comment.RatingAverage)
	if err != nil {
		// Still down. Count the attempt so the cap holds across sweeps.
		if cerr := s.store.CountAttempt(ctx, comment); cerr != nil {
			logger.Errorf("[Reclassify] Failed to record attempt for comment %d: %v", comment.ID, cerr)
		}
		return err
	}

	return s.store.SetSentiment(ctx, comment, label)
}

// Sweep enqueues a batch of degraded comments for reclassification.
func (s *ReclassifyService) Sweep() {
	batch := s.cfg.ReclassifyBatch
	if batch <= 0 {
		batch = 10
	}

	query := s.db.Model(&models.Comment{}).
		Where("sentiment = ?", models.SentimentNotAnalyzed)
	if s.cfg.MaxReclassify > 0 {
		query = query.Where("reclassify_count < ?", s.cfg.MaxReclassify)
	}

	var ids []uint
	if err := query.Order("created_at ASC").Limit(batch).Pluck("id", &ids).Error; err != nil {
		logger.Infof("[Reclassify] Failed to fetch degraded comments: %v", err)
		return
	}

	if len(ids) == 0 {
		return
	}

	logger.Infof("[Reclassify] Sweeping %d degraded comments", len(ids))
	for _, id := range ids {
		if err := s.queue.Enqueue(&SentimentTask{CommentID: id}); err != nil {
			logger.Infof("[Reclassify] Failed to enqueue comment %d: %v", id, err)
		}
	}
}

// StartScheduler starts the periodic sweep on the configured cron schedule.
func (s *ReclassifyService) StartScheduler() error {
	schedule := s.cfg.ReclassifySchedule
	if schedule == "" {
		schedule = "*/5 * * * *"
	}

	c := cron.New()
	if _, err := c.AddFunc(schedule, s.Sweep); err != nil {
		return err
	}
	c.Start()
	s.cron = c

	logger.Infof("[Reclassify] Scheduler started, schedule: %s, max attempts: %d",
		schedule, s.cfg.MaxReclassify)
	return nil
}

// StopScheduler stops the sweep scheduler and waits for a running sweep.
func (s *ReclassifyService) StopScheduler() {
	if s.cron == nil {
		return
	}
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.cron = nil
}
