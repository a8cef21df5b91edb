package logging

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// #region helpers
func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	db.SetMaxOpenConns(1)
	if err := EnsureClassificationLog(db); err != nil {
		t.Fatalf("create table: %v", err)
	}
	return db
}

// #endregion helpers

// #region log-classification-tests
func TestLogClassification_Success(t *testing.T) {
	db := setupDB(t)
	defer db.Close()

	entry := ClassificationEntry{
		ID:             "row-1",
		RunID:          "run-1",
		ConversationID: "conv-1",
		Label:          "PeakVolatileFunctionalStructuredQAInfoSeeking",
		Tier:           "heuristic",
		StatsJSON:      `{"variance":0.05}`,
		Reason:         "rule 1",
		CreatedAt:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := LogClassification(db, entry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var count int
	db.QueryRow("SELECT COUNT(*) FROM classification_log").Scan(&count)
	if count != 1 {
		t.Errorf("expected 1 row, got %d", count)
	}

	var convID, label, tier string
	db.QueryRow("SELECT conversation_id, label, tier FROM classification_log").Scan(&convID, &label, &tier)
	if convID != "conv-1" {
		t.Errorf("expected conversation_id 'conv-1', got %q", convID)
	}
	if label != entry.Label {
		t.Errorf("expected label %q, got %q", entry.Label, label)
	}
	if tier != "heuristic" {
		t.Errorf("expected tier 'heuristic', got %q", tier)
	}
}

func TestLogClassification_FillsDefaults(t *testing.T) {
	db := setupDB(t)
	defer db.Close()

	before := time.Now().UTC()
	err := LogClassification(db, ClassificationEntry{ConversationID: "c", Label: "x", Tier: "default"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var id, createdAtStr string
	db.QueryRow("SELECT id, created_at FROM classification_log").Scan(&id, &createdAtStr)
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("expected generated uuid, got %q", id)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, createdAtStr)
	if err != nil {
		t.Fatalf("parse created_at: %v", err)
	}
	if createdAt.Before(before) {
		t.Error("expected auto-filled created_at to be >= test start time")
	}
}

func TestLogClassification_EmptyOptionalFields(t *testing.T) {
	db := setupDB(t)
	defer db.Close()

	err := LogClassification(db, ClassificationEntry{ConversationID: "c", Label: "x", Tier: "metadata"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var runID, stats, reason sql.NullString
	db.QueryRow("SELECT run_id, stats_json, reason FROM classification_log").Scan(&runID, &stats, &reason)
	if runID.Valid || stats.Valid || reason.Valid {
		t.Errorf("expected NULL optional columns, got %v %v %v", runID, stats, reason)
	}
}

func TestLogClassification_Error(t *testing.T) {
	db := setupDB(t)
	db.Close() // close to force error

	if err := LogClassification(db, ClassificationEntry{ConversationID: "c", Label: "x", Tier: "default"}); err == nil {
		t.Fatal("expected error on closed db")
	}
}

func TestEnsureClassificationLog_Idempotent(t *testing.T) {
	db := setupDB(t)
	defer db.Close()
	if err := EnsureClassificationLog(db); err != nil {
		t.Fatalf("second ensure: %v", err)
	}
}

// #endregion log-classification-tests

// #region null-if-empty-tests
func TestNullIfEmpty(t *testing.T) {
	if nullIfEmpty("") != nil {
		t.Error("expected nil for empty string")
	}
	if nullIfEmpty("hello") != "hello" {
		t.Error("expected passthrough for non-empty string")
	}
}

// #endregion null-if-empty-tests
