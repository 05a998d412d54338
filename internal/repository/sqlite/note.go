package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"

	"assistor/internal/apperror"
	"assistor/internal/model"
	"assistor/internal/repository"
)

var _ repository.NoteRepository = (*DB)(nil)

func (db *DB) CreateNote(ctx context.Context, note *model.Note) error {
	note.ID = xid.New().String()
	now := time.Now().UTC()
	note.CreatedAt = now
	note.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO notes (id, course_id, title, content, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		note.ID,
		note.CourseID,
		note.Title,
		note.Content,
		note.CreatedAt,
		note.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting note: %w", err)
	}

	return nil
}

func (db *DB) GetNoteByID(ctx context.Context, id string) (*model.Note, error) {
	var n model.Note

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, course_id, title, content, created_at, updated_at
		 FROM notes WHERE id = ?`,
		id,
	).Scan(
		&n.ID,
		&n.CourseID,
		&n.Title,
		&n.Content,
		&n.CreatedAt,
		&n.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("note", id)
		}
		return nil, fmt.Errorf("sqlite: getting note %s: %w", id, err)
	}

	return &n, nil
}

func (db *DB) ListNotesByCourse(ctx context.Context, courseID string, opts repository.ListOptions) ([]model.Note, error) {
	clause, args := limitClause(opts.Limit)
	args = append([]any{courseID}, args...)

	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, course_id, title, content, created_at, updated_at
		 FROM notes
		 WHERE course_id = ?
		 ORDER BY created_at DESC, id DESC`+clause,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing notes: %w", err)
	}
	defer rows.Close()

	notes := []model.Note{}
	for rows.Next() {
		var n model.Note
		if err := rows.Scan(
			&n.ID, &n.CourseID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning note row: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating notes: %w", err)
	}

	return notes, nil
}

func (db *DB) UpdateNote(ctx context.Context, note *model.Note) error {
	note.UpdatedAt = time.Now().UTC()

	result, err := db.conn.ExecContext(ctx,
		`UPDATE notes SET title = ?, content = ?, updated_at = ? WHERE id = ?`,
		note.Title,
		note.Content,
		note.UpdatedAt,
		note.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating note %s: %w", note.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("note", note.ID)
	}

	return nil
}

func (db *DB) DeleteNote(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting note %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("note", id)
	}

	return nil
}
