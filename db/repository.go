// repository.go provides the paper notes repository over the SQLite archive.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"paperdesk/core"
)

// timeLayout is the storage format for log_time, matching the
// "YYYY-MM-DD HH:MM:SS" convention of the archive.
const timeLayout = "2006-01-02 15:04:05"

// Repository provides note persistence and retrieval for the knowledge
// archive. Notes are insert-only: nothing updates or deletes a stored note.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a Repository over an open connection.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// InsertNote archives one note and returns its row ID.
//
// There is no dedup key: inserting the same note twice creates two rows.
// LoggedAt defaults to the current time when zero.
func (r *Repository) InsertNote(ctx context.Context, note core.Note) (int64, error) {
	if r.db == nil {
		return 0, fmt.Errorf("database connection is nil")
	}

	loggedAt := note.LoggedAt
	if loggedAt.IsZero() {
		loggedAt = time.Now()
	}

	query := `
		INSERT INTO paper_notes (
			paper_name, question, answer, tags, file_path, summary, log_time
		) VALUES (?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		note.PaperName,
		note.Question,
		note.Answer,
		note.Tags,
		note.FilePath,
		note.Summary,
		loggedAt.Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert note: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}
	return id, nil
}

// ListNotes retrieves archived notes most-recent first. When tagFilter is
// non-empty, only notes whose tag set intersects the filter are returned
// (OR semantics across the selected tags).
func (r *Repository) ListNotes(ctx context.Context, tagFilter []string) ([]core.Note, error) {
	if r.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	query := `
		SELECT id, paper_name, question, answer,
			   COALESCE(tags, ''), COALESCE(file_path, ''), COALESCE(summary, ''),
			   log_time
		FROM paper_notes
		ORDER BY log_time DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	var notes []core.Note
	for rows.Next() {
		var note core.Note
		var loggedAt string
		if err := rows.Scan(
			&note.ID,
			&note.PaperName,
			&note.Question,
			&note.Answer,
			&note.Tags,
			&note.FilePath,
			&note.Summary,
			&loggedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		if t, err := time.Parse(timeLayout, loggedAt); err == nil {
			note.LoggedAt = t
		}

		if len(tagFilter) > 0 && !note.HasAnyTag(tagFilter) {
			continue
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notes: %w", err)
	}
	return notes, nil
}

// AllTags returns the tag universe: the sorted union of every tag observed
// across all stored notes. It is recomputed from the full note set on each
// call, never cached, because the archive can change between renders.
func (r *Repository) AllTags(ctx context.Context) ([]string, error) {
	if r.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	rows, err := r.db.QueryContext(ctx, `SELECT COALESCE(tags, '') FROM paper_notes`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]bool)
	for rows.Next() {
		var tags string
		if err := rows.Scan(&tags); err != nil {
			return nil, fmt.Errorf("failed to scan tags: %w", err)
		}
		for tag := range core.SplitTags(tags) {
			seen[tag] = true
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tags: %w", err)
	}

	all := make([]string, 0, len(seen))
	for tag := range seen {
		all = append(all, tag)
	}
	sort.Strings(all)
	return all, nil
}
