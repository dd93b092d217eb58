package primary

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5"

	"textlens/internal/models"
	"textlens/internal/store"
)

// CreateAnalysis inserts a record and sets its ID. The insert runs in its own
// transaction; nothing is visible unless the commit succeeds.
func (s *StoreImpl) CreateAnalysis(ctx context.Context, record *models.AnalysisRecord) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	query := `
		INSERT INTO text_analysis (
			text, emotion_label, emotion_confidence,
			gibberish_label, gibberish_score
		)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err = tx.QueryRow(ctx, query,
		record.Text, record.EmotionLabel, record.EmotionConfidence,
		record.GibberishLabel, record.GibberishScore,
	).Scan(&record.ID)
	if err != nil {
		return fmt.Errorf("failed to insert analysis: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		record.ID = 0
		return fmt.Errorf("failed to commit analysis: %w", err)
	}
	return nil
}

// validID reports whether id fits the SERIAL (int4) id column. Larger ids
// cannot exist and pgx refuses to encode them as an int4 parameter.
func validID(id int64) bool {
	return id >= 1 && id <= math.MaxInt32
}

func (s *StoreImpl) GetAnalysis(ctx context.Context, id int64) (*models.AnalysisRecord, error) {
	if !validID(id) {
		return nil, store.ErrNotFound
	}
	query := `SELECT ` + analysisColumns + ` FROM text_analysis WHERE id = $1`

	record := &models.AnalysisRecord{}
	if err := scanAnalysis(s.db.QueryRow(ctx, query, id), record); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get analysis by id %d: %w", id, err)
	}
	return record, nil
}

// ListAnalyses returns every record ordered by id. There is no pagination.
func (s *StoreImpl) ListAnalyses(ctx context.Context) ([]*models.AnalysisRecord, error) {
	query := `SELECT ` + analysisColumns + ` FROM text_analysis ORDER BY id`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query analyses: %w", err)
	}
	defer rows.Close()

	records := []*models.AnalysisRecord{}
	for rows.Next() {
		record := &models.AnalysisRecord{}
		if err := scanAnalysis(rows, record); err != nil {
			return nil, fmt.Errorf("failed scanning analysis row: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating analysis rows: %w", err)
	}
	return records, nil
}

func (s *StoreImpl) DeleteAnalysis(ctx context.Context, id int64) error {
	if !validID(id) {
		return store.ErrNotFound
	}
	tag, err := s.db.Exec(ctx, `DELETE FROM text_analysis WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete analysis %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
