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

var _ repository.InstructorRepository = (*DB)(nil)

var instructorUniqueColumns = map[string]string{
	"instructors.email": "email",
}

func (db *DB) CreateInstructor(ctx context.Context, instructor *model.Instructor) error {
	instructor.ID = xid.New().String()
	instructor.CreatedAt = time.Now().UTC()

	// Empty email stores as NULL so the partial unique index ignores it.
	var email any
	if instructor.Email != "" {
		email = instructor.Email
	}

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO instructors (id, course_id, title, first_name, last_name, email, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		instructor.ID,
		instructor.CourseID,
		string(instructor.Title),
		instructor.FirstName,
		instructor.LastName,
		email,
		instructor.CreatedAt,
	)
	if err != nil {
		if dup := uniqueViolation(err, "instructor", instructorUniqueColumns); dup != nil {
			return dup
		}
		return fmt.Errorf("sqlite: inserting instructor: %w", err)
	}

	return nil
}

func (db *DB) GetInstructorByID(ctx context.Context, id string) (*model.Instructor, error) {
	var (
		i     model.Instructor
		email sql.NullString
	)

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, course_id, title, first_name, last_name, email, created_at
		 FROM instructors WHERE id = ?`,
		id,
	).Scan(&i.ID, &i.CourseID, &i.Title, &i.FirstName, &i.LastName, &email, &i.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("instructor", id)
		}
		return nil, fmt.Errorf("sqlite: getting instructor %s: %w", id, err)
	}

	i.Email = email.String
	return &i, nil
}

func (db *DB) ListInstructorsByCourse(ctx context.Context, courseID string, opts repository.ListOptions) ([]model.Instructor, error) {
	clause, args := limitClause(opts.Limit)
	args = append([]any{courseID}, args...)

	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, course_id, title, first_name, last_name, email, created_at
		 FROM instructors
		 WHERE course_id = ?
		 ORDER BY created_at DESC, id DESC`+clause,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing instructors: %w", err)
	}
	defer rows.Close()

	instructors := []model.Instructor{}
	for rows.Next() {
		var (
			i     model.Instructor
			email sql.NullString
		)
		if err := rows.Scan(
			&i.ID, &i.CourseID, &i.Title, &i.FirstName, &i.LastName, &email, &i.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning instructor row: %w", err)
		}
		i.Email = email.String
		instructors = append(instructors, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating instructors: %w", err)
	}

	return instructors, nil
}

func (db *DB) DeleteInstructor(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx, `DELETE FROM instructors WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting instructor %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("instructor", id)
	}

	return nil
}
