package services

import (
	"context"
	"errors"
	"strings"

	"github.com/edupulse/backend/internal/models"
	"github.com/edupulse/backend/pkg/logger"
)

// ErrClassifierUnavailable signals that the classification backend could not
// produce any answer. It is never surfaced to API callers; the ingestion
// layer converts it into the degraded "not analyzed" label. It is kept
// distinct from a neutral result so a dead backend is not mistaken for a
// genuine neutral classification.
var ErrClassifierUnavailable = errors.New("sentiment classification unavailable")

// SentimentResolver orchestrates the rating categorizer and the classifier
// delegate into one deterministic policy.
type SentimentResolver struct {
	classifier SentimentClassifier
}

func NewSentimentResolver(classifier SentimentClassifier) *SentimentResolver {
	return &SentimentResolver{classifier: classifier}
}

// Resolve produces the sentiment label for a comment.
//
// Blank text resolves to neutral without touching the delegate. An
// out-of-domain reply from a live delegate normalizes to neutral. A failed
// delegate call yields ErrClassifierUnavailable.
func (r *SentimentResolver) Resolve(ctx context.Context, text string, ratingAverage float64) (string, error) {
	if strings.TrimSpace(text) == "" {
		return models.SentimentNeutral, nil
	}

	category := CategorizeRating(ratingAverage)

	raw, err := r.classifier.Classify(ctx, text, category)
	if err != nil {
		logger.Warn().Err(err).Msg("sentiment classifier call failed")
		return "", ErrClassifierUnavailable
	}

	label, ok := normalizeSentimentLabel(raw)
	if !ok {
		logger.Warn().Str("reply", raw).Msg("classifier returned out-of-domain label, defaulting to neutral")
		return models.SentimentNeutral, nil
	}

	return label, nil
}

// normalizeSentimentLabel maps a raw classifier reply onto the closed label
// set. Spanish forms are accepted as aliases since earlier deployments ran
// with Spanish-language prompts.
func normalizeSentimentLabel(raw string) (string, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.Trim(s, `."'!`)

	switch s {
	case "positive", "positivo":
		return models.SentimentPositive, true
	case "negative", "negativo":
		return models.SentimentNegative, true
	case "neutral", "neutro":
		return models.SentimentNeutral, true
	}
	return "", false
}
