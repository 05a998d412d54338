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

var _ repository.FileRepository = (*DB)(nil)

func (db *DB) CreateFile(ctx context.Context, file *model.CourseFile) error {
	file.ID = xid.New().String()
	file.CreatedAt = time.Now().UTC()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO files (id, course_id, name, category, blob_ref, content_type, size, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		file.ID,
		file.CourseID,
		file.Name,
		string(file.Category),
		file.BlobRef,
		file.ContentType,
		file.Size,
		file.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting file: %w", err)
	}

	return nil
}

func (db *DB) GetFileByID(ctx context.Context, id string) (*model.CourseFile, error) {
	var f model.CourseFile

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, course_id, name, category, blob_ref, content_type, size, created_at
		 FROM files WHERE id = ?`,
		id,
	).Scan(
		&f.ID,
		&f.CourseID,
		&f.Name,
		&f.Category,
		&f.BlobRef,
		&f.ContentType,
		&f.Size,
		&f.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("file", id)
		}
		return nil, fmt.Errorf("sqlite: getting file %s: %w", id, err)
	}

	return &f, nil
}

func (db *DB) ListFilesByCourse(ctx context.Context, courseID string, opts repository.ListOptions) ([]model.CourseFile, error) {
	clause, args := limitClause(opts.Limit)
	args = append([]any{courseID}, args...)

	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, course_id, name, category, blob_ref, content_type, size, created_at
		 FROM files
		 WHERE course_id = ?
		 ORDER BY created_at DESC, id DESC`+clause,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing files: %w", err)
	}
	defer rows.Close()

	files := []model.CourseFile{}
	for rows.Next() {
		var f model.CourseFile
		if err := rows.Scan(
			&f.ID, &f.CourseID, &f.Name, &f.Category, &f.BlobRef,
			&f.ContentType, &f.Size, &f.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning file row: %w", err)
		}
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating files: %w", err)
	}

	return files, nil
}

// UpdateFile changes a file's name and category. The blob itself is
// immutable — replacing content means uploading a new file.
func (db *DB) UpdateFile(ctx context.Context, file *model.CourseFile) error {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE files SET name = ?, category = ? WHERE id = ?`,
		file.Name,
		string(file.Category),
		file.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating file %s: %w", file.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("file", file.ID)
	}

	return nil
}

func (db *DB) DeleteFile(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx, `DELETE FROM files WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting file %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("file", id)
	}

	return nil
}
