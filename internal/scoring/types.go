package scoring

// AnalysisResult is the classification the service returns for one text
type AnalysisResult struct {
	Gibberish      string  `json:"gibberish"`
	GibberishScore float64 `json:"gibberish_score"`
	Emotion        string  `json:"emotion"`
	EmotionScore   float64 `json:"emotion_score"`
}

// LogEntry is one scored text as stored in the service history.
// ID is assigned by the service and is unique within a history.
type LogEntry struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
	AnalysisResult
}

// ScoreRequest is the body of POST /score
type ScoreRequest struct {
	Text string `json:"text"`
}

// ErrorResponse is the body the service sends with non-2xx statuses
type ErrorResponse struct {
	Error string `json:"error"`
}
