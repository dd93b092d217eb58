package models

// AnalysisRecord is one persisted analyze result. Rows are created by a
// successful analysis and never updated.
type AnalysisRecord struct {
	ID                int64   `db:"id" json:"id"`
	Text              string  `db:"text" json:"text"`
	EmotionLabel      string  `db:"emotion_label" json:"emotion_label"`
	EmotionConfidence float64 `db:"emotion_confidence" json:"emotion_confidence"`
	GibberishLabel    string  `db:"gibberish_label" json:"gibberish_label"`
	GibberishScore    float64 `db:"gibberish_score" json:"gibberish_score"`
}

// EmotionResult is the emotion half of an analyze response.
type EmotionResult struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// GibberishResult is the gibberish half of an analyze response.
type GibberishResult struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type AnalysisResult struct {
	Emotion   EmotionResult   `json:"emotion"`
	Gibberish GibberishResult `json:"gibberish"`
}

// Result shapes the stored record as an analyze response.
func (r *AnalysisRecord) Result() AnalysisResult {
	return AnalysisResult{
		Emotion:   EmotionResult{Label: r.EmotionLabel, Confidence: r.EmotionConfidence},
		Gibberish: GibberishResult{Label: r.GibberishLabel, Score: r.GibberishScore},
	}
}
