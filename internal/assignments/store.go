package assignments

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielpatrickdp/convo-terrain/internal/cluster"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS cluster_assignments (
	conversation_id TEXT PRIMARY KEY,
	cluster_name    TEXT NOT NULL,
	label           TEXT NOT NULL,
	title           TEXT,
	import_id       TEXT NOT NULL,
	imported_at     TEXT NOT NULL
);
`
// #endregion schema

// #region store-struct
// Store persists assignment tables in SQLite and serves them as a Source.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}
// #endregion store-struct

// #region constructor
// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// single connection: batch builds write classification rows concurrently
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, logger: logger}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for use by other packages (e.g. logging).
func (s *Store) DB() *sql.DB {
	return s.db
}
// #endregion constructor

// #region import
// Import upserts every record of t in one transaction and returns the
// import id and the number of rows written. Cluster names are normalized at
// import time; the raw name is kept alongside the label. Like Resolve, the
// first sorted name claims an id listed under several clusters.
func (s *Store) Import(ctx context.Context, t Table) (string, int, error) {
	importID := uuid.New().String()
	now := time.Now().UTC().Format(time.RFC3339Nano)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)

	var n int
	seen := make(map[string]bool)
	for _, name := range names {
		label := cluster.NormalizeLabel(name, s.logger)
		for _, r := range t[name] {
			if r.ID == "" || seen[r.ID] {
				continue
			}
			seen[r.ID] = true
			_, err := tx.ExecContext(ctx,
				`INSERT INTO cluster_assignments (conversation_id, cluster_name, label, title, import_id, imported_at)
				 VALUES (?, ?, ?, ?, ?, ?)
				 ON CONFLICT(conversation_id) DO UPDATE SET
				   cluster_name = excluded.cluster_name,
				   label = excluded.label,
				   title = excluded.title,
				   import_id = excluded.import_id,
				   imported_at = excluded.imported_at`,
				r.ID, name, string(label), nullIfEmpty(r.Title), importID, now,
			)
			if err != nil {
				return "", 0, fmt.Errorf("insert assignment %s: %w", r.ID, err)
			}
			n++
		}
	}

	if err := tx.Commit(); err != nil {
		return "", 0, fmt.Errorf("commit: %w", err)
	}
	return importID, n, nil
}
// #endregion import

// #region load
// Load implements Source, regrouping stored rows by their raw cluster name.
func (s *Store) Load(ctx context.Context) (Table, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT conversation_id, cluster_name, title FROM cluster_assignments ORDER BY conversation_id`)
	if err != nil {
		return nil, fmt.Errorf("query assignments: %w", err)
	}
	defer rows.Close()

	t := Table{}
	for rows.Next() {
		var id, name string
		var title sql.NullString
		if err := rows.Scan(&id, &name, &title); err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		t[name] = append(t[name], Record{ID: id, Title: title.String})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assignments: %w", err)
	}
	return t, nil
}

// List returns every stored assignment ordered by conversation id.
func (s *Store) List(ctx context.Context) ([]Assignment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT conversation_id, cluster_name, label FROM cluster_assignments ORDER BY conversation_id`)
	if err != nil {
		return nil, fmt.Errorf("query assignments: %w", err)
	}
	defer rows.Close()

	var out []Assignment
	for rows.Next() {
		var a Assignment
		var label string
		if err := rows.Scan(&a.ConversationID, &a.ClusterName, &label); err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		a.Label = cluster.Label(label)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assignments: %w", err)
	}
	return out, nil
}
// #endregion load

// #region helpers
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
// #endregion helpers
