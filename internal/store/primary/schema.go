package primary

import (
	"context"
	"fmt"
)

const analysisColumns = `id, text, emotion_label, emotion_confidence, gibberish_label, gibberish_score`

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS text_analysis (
		id                 SERIAL PRIMARY KEY,
		text               VARCHAR,
		emotion_label      VARCHAR,
		emotion_confidence DOUBLE PRECISION,
		gibberish_label    VARCHAR,
		gibberish_score    DOUBLE PRECISION
	)`,
	`CREATE INDEX IF NOT EXISTS ix_text_analysis_id ON text_analysis (id)`,
	`CREATE INDEX IF NOT EXISTS ix_text_analysis_text ON text_analysis (text)`,
}

// EnsureSchema creates the text_analysis table and its indexes if missing.
// There are no migrations; existing tables are left as they are.
func (s *StoreImpl) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}
