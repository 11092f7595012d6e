package domain

import "time"

// HistoryItem records one successful generation. The JSON shape matches the
// history list kept under the vibegen_history key, newest first.
type HistoryItem struct {
	ID              string `json:"id"`
	Topic           string `json:"topic"`
	Vibestack       string `json:"vibestack"`
	Duration        string `json:"duration,omitempty"`
	ModelID         string `json:"modelId,omitempty"`
	GeneratedPrompt string `json:"generatedPrompt"`
	// Timestamp is Unix milliseconds.
	Timestamp int64 `json:"timestamp"`
}

// Time converts the millisecond timestamp.
func (h HistoryItem) Time() time.Time {
	return time.UnixMilli(h.Timestamp)
}

// PresetVibe is a reusable vibestack fragment.
type PresetVibe struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Value       string `json:"value"`
}
