package logging

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const classificationSchema = `CREATE TABLE IF NOT EXISTS classification_log (
	id              TEXT PRIMARY KEY,
	run_id          TEXT,
	conversation_id TEXT NOT NULL,
	label           TEXT NOT NULL,
	tier            TEXT NOT NULL,
	stats_json      TEXT,
	reason          TEXT,
	created_at      TEXT NOT NULL
)`

// EnsureClassificationLog creates the classification_log table if missing.
func EnsureClassificationLog(db *sql.DB) error {
	if _, err := db.Exec(classificationSchema); err != nil {
		return fmt.Errorf("create classification_log: %w", err)
	}
	return nil
}

// #region log-classification
// LogClassification writes one entry to the classification_log table.
// A missing ID is generated and a zero CreatedAt is set to now.
func LogClassification(db *sql.DB, entry ClassificationEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := db.Exec(
		`INSERT INTO classification_log (id, run_id, conversation_id, label, tier, stats_json, reason, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		nullIfEmpty(entry.RunID),
		entry.ConversationID,
		entry.Label,
		entry.Tier,
		nullIfEmpty(entry.StatsJSON),
		nullIfEmpty(entry.Reason),
		entry.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("log classification: %w", err)
	}
	return nil
}
// #endregion log-classification

// #region helpers
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
// #endregion helpers
