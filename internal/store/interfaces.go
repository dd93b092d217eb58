package store

import (
	"context"

	"textlens/internal/models"
)

// AnalysisStore persists analyze results. Records are immutable once created.
type AnalysisStore interface {
	CreateAnalysis(ctx context.Context, record *models.AnalysisRecord) error
	GetAnalysis(ctx context.Context, id int64) (*models.AnalysisRecord, error)
	ListAnalyses(ctx context.Context) ([]*models.AnalysisRecord, error)
	DeleteAnalysis(ctx context.Context, id int64) error

	Ping(ctx context.Context) error
}
