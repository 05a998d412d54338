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

var _ repository.LinkRepository = (*DB)(nil)

func (db *DB) CreateLink(ctx context.Context, link *model.Link) error {
	link.ID = xid.New().String()
	link.CreatedAt = time.Now().UTC()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO links (id, course_id, name, url, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		link.ID,
		link.CourseID,
		link.Name,
		link.URL,
		link.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting link: %w", err)
	}

	return nil
}

func (db *DB) GetLinkByID(ctx context.Context, id string) (*model.Link, error) {
	var l model.Link

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, course_id, name, url, created_at
		 FROM links WHERE id = ?`,
		id,
	).Scan(&l.ID, &l.CourseID, &l.Name, &l.URL, &l.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("link", id)
		}
		return nil, fmt.Errorf("sqlite: getting link %s: %w", id, err)
	}

	return &l, nil
}

func (db *DB) ListLinksByCourse(ctx context.Context, courseID string, opts repository.ListOptions) ([]model.Link, error) {
	clause, args := limitClause(opts.Limit)
	args = append([]any{courseID}, args...)

	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, course_id, name, url, created_at
		 FROM links
		 WHERE course_id = ?
		 ORDER BY created_at DESC, id DESC`+clause,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing links: %w", err)
	}
	defer rows.Close()

	links := []model.Link{}
	for rows.Next() {
		var l model.Link
		if err := rows.Scan(&l.ID, &l.CourseID, &l.Name, &l.URL, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning link row: %w", err)
		}
		links = append(links, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating links: %w", err)
	}

	return links, nil
}

func (db *DB) DeleteLink(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx, `DELETE FROM links WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting link %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("link", id)
	}

	return nil
}
