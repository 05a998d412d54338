package service

import (
	"context"
	"fmt"
	"log/slog"

	"assistor/internal/apperror"
	"assistor/internal/form"
	"assistor/internal/model"
	"assistor/internal/repository"
)

// ReminderService handles the user's personal reminders. Reminders hang
// directly off the user, so the ownership check is a straight UserID
// comparison rather than a course resolution.
type ReminderService struct {
	reminders repository.ReminderRepository
	logger    *slog.Logger
}

func NewReminderService(reminders repository.ReminderRepository, logger *slog.Logger) *ReminderService {
	return &ReminderService{reminders: reminders, logger: logger}
}

func (s *ReminderService) Create(ctx context.Context, userID string, f *form.Reminder) (*model.Reminder, error) {
	if fields := form.Validate(f); fields != nil {
		return nil, apperror.Invalid(fields)
	}

	reminder := &model.Reminder{
		UserID: userID,
		Name:   f.Name,
		Time:   form.ParseTime(f.Time),
	}

	if err := s.reminders.CreateReminder(ctx, reminder); err != nil {
		s.logger.Error("failed to create reminder",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating reminder: %w", err)
	}

	s.logger.Info("reminder created",
		slog.String("id", reminder.ID),
		slog.String("user_id", userID),
	)

	return reminder, nil
}

// List returns all of the user's reminders, soonest due first.
func (s *ReminderService) List(ctx context.Context, userID string) ([]model.Reminder, error) {
	reminders, err := s.reminders.ListRemindersByUser(ctx, userID, repository.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("listing reminders: %w", err)
	}
	return reminders, nil
}

func (s *ReminderService) Get(ctx context.Context, userID, reminderID string) (*model.Reminder, error) {
	reminder, err := s.reminders.GetReminderByID(ctx, reminderID)
	if err != nil {
		return nil, err
	}
	if reminder.UserID != userID {
		return nil, apperror.NotFound("reminder", reminderID)
	}
	return reminder, nil
}

func (s *ReminderService) Update(ctx context.Context, userID, reminderID string, f *form.Reminder) (*model.Reminder, error) {
	reminder, err := s.Get(ctx, userID, reminderID)
	if err != nil {
		return nil, err
	}

	if fields := form.Validate(f); fields != nil {
		return nil, apperror.Invalid(fields)
	}

	reminder.Name = f.Name
	reminder.Time = form.ParseTime(f.Time)

	if err := s.reminders.UpdateReminder(ctx, reminder); err != nil {
		s.logger.Error("failed to update reminder",
			slog.String("id", reminderID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating reminder: %w", err)
	}

	s.logger.Info("reminder updated", slog.String("id", reminderID))

	return reminder, nil
}

func (s *ReminderService) Delete(ctx context.Context, userID, reminderID string) error {
	if _, err := s.Get(ctx, userID, reminderID); err != nil {
		return err
	}

	if err := s.reminders.DeleteReminder(ctx, reminderID); err != nil {
		return fmt.Errorf("deleting reminder: %w", err)
	}

	s.logger.Info("reminder deleted", slog.String("id", reminderID))
	return nil
}
