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

var _ repository.ReminderRepository = (*DB)(nil)

func (db *DB) CreateReminder(ctx context.Context, reminder *model.Reminder) error {
	reminder.ID = xid.New().String()
	now := time.Now().UTC()
	reminder.CreatedAt = now
	reminder.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO reminders (id, user_id, name, time, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		reminder.ID,
		reminder.UserID,
		reminder.Name,
		reminder.Time,
		reminder.CreatedAt,
		reminder.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting reminder: %w", err)
	}

	return nil
}

func (db *DB) GetReminderByID(ctx context.Context, id string) (*model.Reminder, error) {
	var r model.Reminder

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, user_id, name, time, created_at, updated_at
		 FROM reminders WHERE id = ?`,
		id,
	).Scan(&r.ID, &r.UserID, &r.Name, &r.Time, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("reminder", id)
		}
		return nil, fmt.Errorf("sqlite: getting reminder %s: %w", id, err)
	}

	return &r, nil
}

// ListRemindersByUser returns reminders soonest-due first — unlike the
// course listing, the interesting order here is the due time, not the
// creation time.
func (db *DB) ListRemindersByUser(ctx context.Context, userID string, opts repository.ListOptions) ([]model.Reminder, error) {
	clause, args := limitClause(opts.Limit)
	args = append([]any{userID}, args...)

	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, user_id, name, time, created_at, updated_at
		 FROM reminders
		 WHERE user_id = ?
		 ORDER BY time ASC, id ASC`+clause,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing reminders: %w", err)
	}
	defer rows.Close()

	reminders := []model.Reminder{}
	for rows.Next() {
		var r model.Reminder
		if err := rows.Scan(
			&r.ID, &r.UserID, &r.Name, &r.Time, &r.CreatedAt, &r.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning reminder row: %w", err)
		}
		reminders = append(reminders, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating reminders: %w", err)
	}

	return reminders, nil
}

// UpdateReminder writes the name and time. created_at is deliberately
// not in the SET list — creation timestamps never change.
func (db *DB) UpdateReminder(ctx context.Context, reminder *model.Reminder) error {
	reminder.UpdatedAt = time.Now().UTC()

	result, err := db.conn.ExecContext(ctx,
		`UPDATE reminders SET name = ?, time = ?, updated_at = ? WHERE id = ?`,
		reminder.Name,
		reminder.Time,
		reminder.UpdatedAt,
		reminder.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating reminder %s: %w", reminder.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("reminder", reminder.ID)
	}

	return nil
}

func (db *DB) DeleteReminder(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx, `DELETE FROM reminders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting reminder %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("reminder", id)
	}

	return nil
}
