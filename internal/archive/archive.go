// Package archive mirrors the session history into SQLite for external querying.
package archive

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/tukai/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Archive wraps SQLite access for exported history.
type Archive struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Archive, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create archive dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	a := &Archive{db: db}
	if err := a.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, fmt.Errorf("failed to migrate archive: %w", err)
	}
	return a, nil
}

// Close closes the underlying database.
func (a *Archive) Close() error {
	return a.db.Close()
}

func (a *Archive) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY,
			finished_at TEXT NOT NULL,
			duration_s INTEGER NOT NULL,
			average_wpm INTEGER NOT NULL,
			raw_wpm INTEGER NOT NULL,
			accuracy REAL NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_finished_at ON sessions(finished_at);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_duration ON sessions(duration_s);`,
	}
	for _, stmt := range stmts {
		if _, err := a.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// ExportIDKey is the settings key holding the id of the latest export.
const ExportIDKey = "export_id"

// Export replaces the archived history and settings with the given record.
// Session ids follow the chronological order of record.Stats, starting at 1.
// Every export is tagged with a fresh random id stored under ExportIDKey.
func (a *Archive) Export(ctx context.Context, record model.Record) (err error) {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM settings`); err != nil {
		return err
	}

	if len(record.Stats) > 0 {
		stmt, perr := tx.PrepareContext(ctx,
			`INSERT INTO sessions (id, finished_at, duration_s, average_wpm, raw_wpm, accuracy)
			 VALUES (?, ?, ?, ?, ?, ?)`)
		if perr != nil {
			err = perr
			return err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for i, st := range record.Stats {
			if _, err = stmt.ExecContext(ctx,
				i+1,
				st.FinishedAt.UTC().Format(time.RFC3339Nano),
				st.Duration.Seconds(),
				st.AverageWPM,
				st.RawWPM,
				st.Accuracy,
			); err != nil {
				return err
			}
		}
	}

	settings := [][2]string{
		{"typing_duration", record.TypingDuration.String()},
		{"active_theme", record.ActiveTheme},
		{"transparent_background", fmt.Sprintf("%t", record.TransparentBackground)},
		{"language_index", fmt.Sprintf("%d", record.LanguageIndex)},
		{ExportIDKey, uuid.NewString()},
		{"exported_at", time.Now().UTC().Format(time.RFC3339)},
	}
	for _, kv := range settings {
		if _, err = tx.ExecContext(ctx, `INSERT INTO settings (key, value) VALUES (?, ?)`, kv[0], kv[1]); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ListSessions returns archived stats filtered by stats config, oldest first.
func (a *Archive) ListSessions(ctx context.Context, cfg model.StatsConfig) ([]model.Stat, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Duration != 0 {
		clauses = append(clauses, "duration_s = ?")
		args = append(args, cfg.Duration.Seconds())
	}
	if cfg.Since != nil {
		clauses = append(clauses, "finished_at >= ?")
		args = append(args, cfg.Since.UTC().Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT finished_at, duration_s, average_wpm, raw_wpm, accuracy
		FROM sessions
		WHERE %s
		ORDER BY id ASC`, strings.Join(clauses, " AND "))
	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var stats []model.Stat
	for rows.Next() {
		var st model.Stat
		var finishedAt string
		var duration int
		if err := rows.Scan(&finishedAt, &duration, &st.AverageWPM, &st.RawWPM, &st.Accuracy); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, finishedAt)
		if err != nil {
			return nil, err
		}
		st.FinishedAt = parsed
		st.Duration = model.TypingDuration(duration)
		stats = append(stats, st)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if cfg.Last > 0 && len(stats) > cfg.Last {
		stats = stats[len(stats)-cfg.Last:]
	}
	return stats, nil
}

// Setting returns a single exported setting value.
func (a *Archive) Setting(ctx context.Context, key string) (string, error) {
	var value string
	err := a.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", err
	}
	return value, nil
}
