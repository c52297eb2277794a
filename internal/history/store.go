package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound reports that no run matches the requested identifier.
var ErrNotFound = errors.New("history entry not found")

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const entryColumns = "run_id, source_path, trim_start, trim_end, output_path, identifier, share_url, state, error_kind, error_message, polls, started_at, finished_at"

// Store manages upload history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// Open initializes or connects to the history database at path.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("history path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path, now: time.Now}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Begin records the start of a run.
func (s *Store) Begin(ctx context.Context, entry Entry) error {
	if strings.TrimSpace(entry.RunID) == "" {
		return errors.New("history begin: run id required")
	}
	started := entry.StartedAt
	if started.IsZero() {
		started = s.now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO uploads (run_id, source_path, trim_start, trim_end, output_path, state, started_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.RunID,
		entry.SourcePath,
		nullableString(entry.Start),
		nullableString(entry.End),
		nullableString(entry.OutputPath),
		StateRunning,
		formatTime(started),
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", entry.RunID, err)
	}
	return nil
}

// Finish stores the outcome of a run started with Begin.
func (s *Store) Finish(ctx context.Context, runID string, outcome Outcome) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE uploads
            SET identifier = ?, share_url = ?, state = ?, error_kind = ?, error_message = ?, polls = ?, finished_at = ?
          WHERE run_id = ?`,
		nullableString(outcome.Identifier),
		nullableString(outcome.ShareURL),
		outcome.State,
		nullableString(outcome.ErrorKind),
		nullableString(outcome.ErrorMessage),
		outcome.Polls,
		formatTime(s.now()),
		runID,
	)
	if err != nil {
		return fmt.Errorf("update run %s: %w", runID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("update run %s: %w", runID, ErrNotFound)
	}
	return nil
}

// Get returns a single run.
func (s *Store) Get(ctx context.Context, runID string) (Entry, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+entryColumns+" FROM uploads WHERE run_id = ?", runID)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("run %s: %w", runID, ErrNotFound)
	}
	if err != nil {
		return Entry{}, fmt.Errorf("get run %s: %w", runID, err)
	}
	return entry, nil
}

// List returns the most recent runs, newest first. A limit <= 0 returns all.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	query := "SELECT " + entryColumns + " FROM uploads ORDER BY started_at DESC, rowid DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return entries, nil
}

func scanEntry(scanner interface{ Scan(dest ...any) error }) (Entry, error) {
	var (
		entry       Entry
		start       sql.NullString
		end         sql.NullString
		output      sql.NullString
		identifier  sql.NullString
		shareURL    sql.NullString
		state       string
		errKind     sql.NullString
		errMessage  sql.NullString
		startedRaw  string
		finishedRaw sql.NullString
	)
	if err := scanner.Scan(
		&entry.RunID,
		&entry.SourcePath,
		&start,
		&end,
		&output,
		&identifier,
		&shareURL,
		&state,
		&errKind,
		&errMessage,
		&entry.Polls,
		&startedRaw,
		&finishedRaw,
	); err != nil {
		return Entry{}, err
	}
	entry.Start = start.String
	entry.End = end.String
	entry.OutputPath = output.String
	entry.Identifier = identifier.String
	entry.ShareURL = shareURL.String
	entry.State = State(state)
	entry.ErrorKind = errKind.String
	entry.ErrorMessage = errMessage.String
	entry.StartedAt = parseTime(startedRaw)
	if finishedRaw.Valid {
		entry.FinishedAt = parseTime(finishedRaw.String)
	}
	return entry, nil
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(raw string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}
