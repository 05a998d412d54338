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

var _ repository.CourseRepository = (*DB)(nil)

func (db *DB) CreateCourse(ctx context.Context, course *model.Course) error {
	course.ID = xid.New().String()
	now := time.Now().UTC()
	course.CreatedAt = now
	course.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO courses (id, user_id, title, start_date, completion_date, grade, provider, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		course.ID,
		course.UserID,
		course.Title,
		nullTime(course.StartDate),
		nullTime(course.CompletionDate),
		course.Grade,
		course.Provider,
		course.CreatedAt,
		course.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting course: %w", err)
	}

	return nil
}

func (db *DB) GetCourseByID(ctx context.Context, id string) (*model.Course, error) {
	var (
		c          model.Course
		start, end sql.NullTime
	)

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, user_id, title, start_date, completion_date, grade, provider, created_at, updated_at
		 FROM courses WHERE id = ?`,
		id,
	).Scan(
		&c.ID,
		&c.UserID,
		&c.Title,
		&start,
		&end,
		&c.Grade,
		&c.Provider,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("course", id)
		}
		return nil, fmt.Errorf("sqlite: getting course %s: %w", id, err)
	}

	c.StartDate = timePtr(start)
	c.CompletionDate = timePtr(end)
	return &c, nil
}

// ListCoursesByUser returns the user's courses, newest first. The same
// query serves the dashboard preview (Limit 4) and the unbounded list
// page (Limit 0).
func (db *DB) ListCoursesByUser(ctx context.Context, userID string, opts repository.ListOptions) ([]model.Course, error) {
	clause, args := limitClause(opts.Limit)
	args = append([]any{userID}, args...)

	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, user_id, title, start_date, completion_date, grade, provider, created_at, updated_at
		 FROM courses
		 WHERE user_id = ?
		 ORDER BY created_at DESC, id DESC`+clause,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing courses: %w", err)
	}
	defer rows.Close()

	var courses []model.Course
	for rows.Next() {
		var (
			c          model.Course
			start, end sql.NullTime
		)
		if err := rows.Scan(
			&c.ID, &c.UserID, &c.Title, &start, &end,
			&c.Grade, &c.Provider, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning course row: %w", err)
		}
		c.StartDate = timePtr(start)
		c.CompletionDate = timePtr(end)
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating courses: %w", err)
	}

	if courses == nil {
		courses = []model.Course{}
	}
	return courses, nil
}

func (db *DB) UpdateCourse(ctx context.Context, course *model.Course) error {
	course.UpdatedAt = time.Now().UTC()

	result, err := db.conn.ExecContext(ctx,
		`UPDATE courses
		 SET title = ?, start_date = ?, completion_date = ?, grade = ?, provider = ?, updated_at = ?
		 WHERE id = ?`,
		course.Title,
		nullTime(course.StartDate),
		nullTime(course.CompletionDate),
		course.Grade,
		course.Provider,
		course.UpdatedAt,
		course.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating course %s: %w", course.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("course", course.ID)
	}

	return nil
}

// DeleteCourse removes a course and all its notes, files, links, and
// instructors. The children go through ON DELETE CASCADE; the explicit
// transaction guarantees that a mid-cascade failure rolls the whole
// delete back rather than leaving orphans.
func (db *DB) DeleteCourse(ctx context.Context, id string) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning course delete: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `DELETE FROM courses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting course %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("course", id)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing course delete: %w", err)
	}
	return nil
}

// nullTime converts an optional date to its SQL value.
func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

// timePtr converts a scanned nullable column back to the model form.
func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}
