// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package records loads parsed statute records into a SQLite database with
// an FTS5 index and answers full-text and structured queries over them.
package records

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/statute-parser/internal/parse"
	"github.com/pdiddy/statute-parser/pkg/types"
)

const (
	recordsDir = "records"
	indexDir   = "index"
	dbFile     = "statutes.db"

	defaultMaxResults = 20
)

// recordNamespace seeds the name-based UUIDs of stored records, so a
// record keeps its ID across re-ingestion as long as its position holds.
var recordNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("statute-parser/records"))

// RecordID returns the stable identifier of the record at position in law.
func RecordID(lawID string, position int) string {
	return uuid.NewSHA1(recordNamespace, fmt.Appendf(nil, "%s/%d", lawID, position)).String()
}

// Store manages the record database.
type Store struct {
	db          *sql.DB
	statutesDir string
	maxResults  int
}

// NewStore opens or creates the record database at
// statutesDir/index/statutes.db and ensures its schema exists.
func NewStore(cfg types.RecordStoreConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.StatutesDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(dbDir, dbFile)+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{
		db:          db,
		statutesDir: cfg.StatutesDir,
		maxResults:  maxResults,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS laws (
			id TEXT PRIMARY KEY,
			law_number TEXT NOT NULL,
			date TEXT NOT NULL,
			source TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS records (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			law_id TEXT NOT NULL REFERENCES laws(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			law_number TEXT NOT NULL,
			date TEXT NOT NULL,
			section_title TEXT NOT NULL,
			article_title TEXT NOT NULL,
			paragraph_title TEXT NOT NULL,
			content TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_law_id ON records(law_id, position)`,
		`CREATE INDEX IF NOT EXISTS idx_records_law_number ON records(law_number)`,
		`CREATE TABLE IF NOT EXISTS indexing_status (
			law_id TEXT PRIMARY KEY,
			fingerprint TEXT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='records_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}
	if ftsExists > 0 {
		return nil
	}

	ftsStatements := []string{
		`CREATE VIRTUAL TABLE records_fts USING fts5(
			paragraph_title, content,
			content=records, content_rowid=rowid,
			tokenize='unicode61 remove_diacritics 2'
		)`,
		`CREATE TRIGGER records_ai AFTER INSERT ON records BEGIN
			INSERT INTO records_fts(rowid, paragraph_title, content)
			VALUES (new.rowid, new.paragraph_title, new.content);
		END`,
		`CREATE TRIGGER records_ad AFTER DELETE ON records BEGIN
			INSERT INTO records_fts(records_fts, rowid, paragraph_title, content)
			VALUES ('delete', old.rowid, old.paragraph_title, old.content);
		END`,
		`CREATE TRIGGER records_au AFTER UPDATE ON records BEGIN
			INSERT INTO records_fts(records_fts, rowid, paragraph_title, content)
			VALUES ('delete', old.rowid, old.paragraph_title, old.content);
			INSERT INTO records_fts(rowid, paragraph_title, content)
			VALUES (new.rowid, new.paragraph_title, new.content);
		END`,
	}
	for _, stmt := range ftsStatements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("creating FTS infrastructure: %w", err)
		}
	}
	return nil
}

// IngestSummary holds counts from one ingestion run.
type IngestSummary struct {
	Indexed int
	Updated int
	Skipped int
	Removed int
	Failed  int
}

// Total returns the number of record files processed.
func (s IngestSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// Ingest loads every record file in statutesDir/records into the
// database. Files whose content fingerprint matches the last ingestion are
// skipped; laws whose record file is gone are removed. When anything
// changed, export.yaml is rewritten.
func (s *Store) Ingest(ctx context.Context, w io.Writer) (IngestSummary, error) {
	dir := filepath.Join(s.statutesDir, recordsDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("reading records directory %s: %w", dir, err)
	}

	var summary IngestSummary
	seen := make(map[string]bool)

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), parse.RecordsSuffix) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		lawID := strings.TrimSuffix(entry.Name(), parse.RecordsSuffix)
		seen[lawID] = true

		law, data, err := parse.ReadRecords(filepath.Join(dir, entry.Name()))
		if err != nil {
			fmt.Fprintf(w, "failed   %s: %v\n", lawID, err)
			summary.Failed++
			continue
		}
		fingerprint := fmt.Sprintf("%016x", xxhash.Sum64(data))

		var stored string
		err = s.db.QueryRowContext(ctx,
			`SELECT fingerprint FROM indexing_status WHERE law_id = ?`, lawID,
		).Scan(&stored)
		if err == nil && stored == fingerprint {
			fmt.Fprintf(w, "skipped  %s\n", lawID)
			summary.Skipped++
			continue
		}
		isUpdate := err == nil

		if err := s.ingestLaw(ctx, lawID, law, fingerprint); err != nil {
			fmt.Fprintf(w, "failed   %s: %v\n", lawID, err)
			summary.Failed++
			continue
		}

		if isUpdate {
			fmt.Fprintf(w, "updated  %s (%d records)\n", lawID, len(law.Records))
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexing %s (%d records)\n", lawID, len(law.Records))
			summary.Indexed++
		}
	}

	removed, err := s.pruneMissing(ctx, seen)
	if err != nil {
		return summary, err
	}
	for _, id := range removed {
		fmt.Fprintf(w, "removed  %s\n", id)
	}
	summary.Removed = len(removed)

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, removed: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Removed, summary.Failed)

	if summary.Indexed > 0 || summary.Updated > 0 || summary.Removed > 0 {
		if _, err := s.ExportYAML(ctx, QueryOptions{}); err != nil {
			fmt.Fprintf(w, "warning: export.yaml write failed: %v\n", err)
		}
	}
	return summary, nil
}

func (s *Store) ingestLaw(ctx context.Context, lawID string, law types.LawRecords, fingerprint string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records WHERE law_id = ?`, lawID); err != nil {
		return fmt.Errorf("deleting old records: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO laws (id, law_number, date, source) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			law_number=excluded.law_number, date=excluded.date, source=excluded.source`,
		lawID, law.Metadata.LawNumber, law.Metadata.Date, law.Source,
	)
	if err != nil {
		return fmt.Errorf("upserting law: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO records (id, law_id, position, law_number, date,
			section_title, article_title, paragraph_title, content)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range law.Records {
		_, err := stmt.ExecContext(ctx,
			RecordID(lawID, i), lawID, i, r.LawNumber, r.Date,
			r.SectionTitle, r.ArticleTitle, r.ParagraphTitle, r.Content,
		)
		if err != nil {
			return fmt.Errorf("inserting record %d: %w", i, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO indexing_status (law_id, fingerprint) VALUES (?, ?)
		 ON CONFLICT(law_id) DO UPDATE SET fingerprint=excluded.fingerprint`,
		lawID, fingerprint,
	)
	if err != nil {
		return fmt.Errorf("updating indexing status: %w", err)
	}

	return tx.Commit()
}

// pruneMissing deletes indexed laws that are not in seen and returns
// their IDs.
func (s *Store) pruneMissing(ctx context.Context, seen map[string]bool) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT law_id FROM indexing_status ORDER BY law_id`)
	if err != nil {
		return nil, fmt.Errorf("listing indexed laws: %w", err)
	}
	var stale []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning law id: %w", err)
		}
		if !seen[id] {
			stale = append(stale, id)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, id := range stale {
		if err := s.removeLaw(ctx, id); err != nil {
			return nil, fmt.Errorf("removing %s: %w", id, err)
		}
	}
	return stale, nil
}

func (s *Store) removeLaw(ctx context.Context, lawID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, q := range []string{
		`DELETE FROM records WHERE law_id = ?`,
		`DELETE FROM laws WHERE id = ?`,
		`DELETE FROM indexing_status WHERE law_id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, q, lawID); err != nil {
			return err
		}
	}
	return tx.Commit()
}
