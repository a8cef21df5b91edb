package logging

import "time"

// #region classification-entry
// ClassificationEntry is a single row in the classification_log table.
type ClassificationEntry struct {
	ID             string
	RunID          string
	ConversationID string
	Label          string
	Tier           string // "metadata" | "assignment" | "heuristic" | "default"
	StatsJSON      string
	Reason         string
	CreatedAt      time.Time
}
// #endregion classification-entry

// #region classification-record
// ClassificationRecord captures the heuristic inputs behind one label.
// Serialized as JSON into classification_log.stats_json.
type ClassificationRecord struct {
	Variance      float64 `json:"variance"`
	PeakDensity   float64 `json:"peak_density"`
	ValleyDensity float64 `json:"valley_density"`
	Pattern       string  `json:"pattern"`
	Purpose       string  `json:"purpose"`
	Functional    bool    `json:"functional"`
	Structured    bool    `json:"structured"`
	Messages      int     `json:"messages"`
}
// #endregion classification-record
