package services

import (
	"context"
	"errors"
	"testing"

	"github.com/edupulse/backend/internal/config"
	"github.com/edupulse/backend/internal/models"
	"gorm.io/gorm"
)

// stubReclassifyStore holds one comment in memory and records writes.
type stubReclassifyStore struct {
	comment  *models.Comment
	countErr error
	attempts int
	labels   int
}

func (s *stubReclassifyStore) Get(ctx context.Context, id uint) (*models.Comment, error) {
	if s.comment == nil || s.comment.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.comment, nil
}

func (s *stubReclassifyStore) CountAttempt(ctx context.Context, comment *models.Comment) error {
	if s.countErr != nil {
		return s.countErr
	}
	s.attempts++
	comment.ReclassifyCount++
	return nil
}

func (s *stubReclassifyStore) SetSentiment(ctx context.Context, comment *models.Comment, label string) error {
	s.labels++
	comment.Sentiment = label
	comment.ReclassifyCount++
	return nil
}

func newTestReclassifyService(store ReclassifyStore, classifier SentimentClassifier) *ReclassifyService {
	return &ReclassifyService{
		store:    store,
		resolver: NewSentimentResolver(classifier),
		cfg:      &config.SentimentConfig{MaxReclassify: 3},
	}
}

func degradedComment(attempts int) *models.Comment {
	return &models.Comment{
		ID:              7,
		Body:            "las clases fueron muy confusas",
		RatingAverage:   1.5,
		Sentiment:       models.SentimentNotAnalyzed,
		ReclassifyCount: attempts,
	}
}

func TestReclassifyService_ProcessUpdatesOnRealLabel(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  string
	}{
		{name: "recognized label", reply: "negative", want: models.SentimentNegative},
		{name: "out of domain reply", reply: "banana", want: models.SentimentNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &stubReclassifyStore{comment: degradedComment(1)}
			classifier := &stubClassifier{reply: tt.reply}
			svc := newTestReclassifyService(store, classifier)

			if err := svc.Process(context.Background(), &SentimentTask{CommentID: 7}); err != nil {
				t.Fatalf("Process() error = %v", err)
			}

			if store.comment.Sentiment != tt.want {
				t.Errorf("Sentiment = %q, expected %q", store.comment.Sentiment, tt.want)
			}
			if store.labels != 1 {
				t.Errorf("label writes = %d, expected 1", store.labels)
			}
			if store.comment.ReclassifyCount != 2 {
				t.Errorf("ReclassifyCount = %d, expected 2", store.comment.ReclassifyCount)
			}
		})
	}
}

func TestReclassifyService_ProcessSkipsClassifiedComment(t *testing.T) {
	comment := degradedComment(0)
	comment.Sentiment = models.SentimentPositive
	store := &stubReclassifyStore{comment: comment}
	classifier := &stubClassifier{reply: "negative"}
	svc := newTestReclassifyService(store, classifier)

	if err := svc.Process(context.Background(), &SentimentTask{CommentID: 7}); err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if classifier.calls != 0 {
		t.Errorf("classifier calls = %d, expected 0", classifier.calls)
	}
	if store.labels != 0 || store.attempts != 0 {
		t.Errorf("store writes = %d/%d, expected none", store.labels, store.attempts)
	}
	if store.comment.Sentiment != models.SentimentPositive {
		t.Errorf("Sentiment = %q, expected unchanged", store.comment.Sentiment)
	}
}

func TestReclassifyService_ProcessRespectsAttemptCap(t *testing.T) {
	tests := []struct {
		name      string
		attempts  int
		wantCalls int
	}{
		{name: "under the cap", attempts: 2, wantCalls: 1},
		{name: "at the cap", attempts: 3, wantCalls: 0},
		{name: "over the cap", attempts: 5, wantCalls: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &stubReclassifyStore{comment: degradedComment(tt.attempts)}
			classifier := &stubClassifier{reply: "positive"}
			svc := newTestReclassifyService(store, classifier)

			if err := svc.Process(context.Background(), &SentimentTask{CommentID: 7}); err != nil {
				t.Fatalf("Process() error = %v", err)
			}

			if classifier.calls != tt.wantCalls {
				t.Errorf("classifier calls = %d, expected %d", classifier.calls, tt.wantCalls)
			}
			if store.labels != tt.wantCalls {
				t.Errorf("label writes = %d, expected %d", store.labels, tt.wantCalls)
			}
		})
	}
}

func TestReclassifyService_ProcessClassifierStillDown(t *testing.T) {
	store := &stubReclassifyStore{comment: degradedComment(1)}
	classifier := &stubClassifier{err: errors.New("timeout")}
	svc := newTestReclassifyService(store, classifier)

	err := svc.Process(context.Background(), &SentimentTask{CommentID: 7})
	if !errors.Is(err, ErrClassifierUnavailable) {
		t.Fatalf("Process() error = %v, expected ErrClassifierUnavailable", err)
	}

	if store.attempts != 1 {
		t.Errorf("attempt writes = %d, expected 1", store.attempts)
	}
	if store.labels != 0 {
		t.Errorf("label writes = %d, expected 0", store.labels)
	}
	if store.comment.Sentiment != models.SentimentNotAnalyzed {
		t.Errorf("Sentiment = %q, expected to stay degraded", store.comment.Sentiment)
	}
	if store.comment.ReclassifyCount != 2 {
		t.Errorf("ReclassifyCount = %d, expected 2", store.comment.ReclassifyCount)
	}
}

func TestReclassifyService_ProcessAttemptWriteFailureStillReturnsResolverError(t *testing.T) {
	store := &stubReclassifyStore{comment: degradedComment(1), countErr: errors.New("database is locked")}
	classifier := &stubClassifier{err: errors.New("timeout")}
	svc := newTestReclassifyService(store, classifier)

	err := svc.Process(context.Background(), &SentimentTask{CommentID: 7})
	if !errors.Is(err, ErrClassifierUnavailable) {
		t.Fatalf("Process() error = %v, expected ErrClassifierUnavailable", err)
	}
	if store.labels != 0 {
		t.Errorf("label writes = %d, expected 0", store.labels)
	}
}

func TestReclassifyService_ProcessMissingComment(t *testing.T) {
	store := &stubReclassifyStore{}
	classifier := &stubClassifier{reply: "positive"}
	svc := newTestReclassifyService(store, classifier)

	if err := svc.Process(context.Background(), &SentimentTask{CommentID: 99}); err != nil {
		t.Fatalf("Process() error = %v, expected missing comments to be skipped", err)
	}
	if classifier.calls != 0 {
		t.Errorf("classifier calls = %d, expected 0", classifier.calls)
	}
}
