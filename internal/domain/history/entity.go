package history

import "time"

// Record links a user to one past analysis outcome.
type Record struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"user_id"`
	StoredFilename   string    `json:"filename"`
	OriginalFilename string    `json:"original_filename"`
	AnalysisResult   string    `json:"analysis_result,omitempty"` // JSON string of cv.AnalysisResult
	CreatedAt        time.Time `json:"created_at"`
}
