package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"textlens/internal/classifier"
	"textlens/internal/models"
	"textlens/internal/store"
)

// TextClassifier is one loaded sequence-classification model.
type TextClassifier interface {
	Model() string
	Classify(ctx context.Context, text string) (classifier.Prediction, error)
}

type AnalysisServiceDeps struct {
	Store     store.AnalysisStore
	Emotion   TextClassifier
	Gibberish TextClassifier
	Logger    *logrus.Logger
}

// AnalysisService runs both models over a text and persists the outcome.
type AnalysisService struct {
	store     store.AnalysisStore
	emotion   TextClassifier
	gibberish TextClassifier
	log       *logrus.Logger
}

func NewAnalysisService(deps AnalysisServiceDeps) *AnalysisService {
	log := deps.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &AnalysisService{
		store:     deps.Store,
		emotion:   deps.Emotion,
		gibberish: deps.Gibberish,
		log:       log,
	}
}

// Analyze classifies text with the emotion and gibberish models, stores one
// record and returns it. Nothing is stored unless both inferences succeed.
func (s *AnalysisService) Analyze(ctx context.Context, text string) (*models.AnalysisRecord, error) {
	if s.emotion == nil || s.gibberish == nil {
		return nil, fmt.Errorf("analysis service: %w", classifier.ErrModelNotLoaded)
	}
	start := time.Now()

	emotion, err := s.emotion.Classify(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("emotion analysis failed: %w", err)
	}
	gibberish, err := s.gibberish.Classify(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("gibberish analysis failed: %w", err)
	}

	record := &models.AnalysisRecord{
		Text:              text,
		EmotionLabel:      emotion.Label,
		EmotionConfidence: RoundScore(emotion.Confidence),
		GibberishLabel:    gibberish.Label,
		GibberishScore:    RoundScore(gibberish.Confidence),
	}
	if err := s.store.CreateAnalysis(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save analysis: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"analysis_id":     record.ID,
		"emotion":         record.EmotionLabel,
		"emotion_model":   s.emotion.Model(),
		"gibberish":       record.GibberishLabel,
		"gibberish_model": s.gibberish.Model(),
	}).Infof("Processed request in %.3f seconds", time.Since(start).Seconds())
	return record, nil
}

// GetEntry returns store.ErrNotFound for unknown ids.
func (s *AnalysisService) GetEntry(ctx context.Context, id int64) (*models.AnalysisRecord, error) {
	record, err := s.store.GetAnalysis(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get entry %d: %w", id, err)
	}
	return record, nil
}

func (s *AnalysisService) ListEntries(ctx context.Context) ([]*models.AnalysisRecord, error) {
	records, err := s.store.ListAnalyses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return records, nil
}

// DeleteEntry returns store.ErrNotFound for unknown ids.
func (s *AnalysisService) DeleteEntry(ctx context.Context, id int64) error {
	if err := s.store.DeleteAnalysis(ctx, id); err != nil {
		return fmt.Errorf("delete entry %d: %w", id, err)
	}
	s.log.WithField("analysis_id", id).Info("Deleted entry")
	return nil
}

// Ping reports whether the backing store is reachable.
func (s *AnalysisService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// RoundScore rounds a probability to four decimal places.
func RoundScore(p float64) float64 {
	return math.Round(p*1e4) / 1e4
}
