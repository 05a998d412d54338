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

// NoteService handles the notes under a course. Every method resolves
// the course first — a note is only reachable through a course its
// caller owns.
type NoteService struct {
	courses repository.CourseRepository
	notes   repository.NoteRepository
	logger  *slog.Logger
}

func NewNoteService(courses repository.CourseRepository, notes repository.NoteRepository, logger *slog.Logger) *NoteService {
	return &NoteService{courses: courses, notes: notes, logger: logger}
}

func (s *NoteService) Create(ctx context.Context, userID, courseID string, f *form.Note) (*model.Note, error) {
	if _, err := resolveCourse(ctx, s.courses, courseID, userID); err != nil {
		return nil, err
	}

	if fields := form.Validate(f); fields != nil {
		return nil, apperror.Invalid(fields)
	}

	note := &model.Note{
		CourseID: courseID,
		Title:    f.Title,
		Content:  f.Content,
	}

	if err := s.notes.CreateNote(ctx, note); err != nil {
		s.logger.Error("failed to create note",
			slog.String("course_id", courseID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating note: %w", err)
	}

	s.logger.Info("note created",
		slog.String("id", note.ID),
		slog.String("course_id", courseID),
	)

	return note, nil
}

func (s *NoteService) List(ctx context.Context, userID, courseID string) ([]model.Note, error) {
	if _, err := resolveCourse(ctx, s.courses, courseID, userID); err != nil {
		return nil, err
	}

	notes, err := s.notes.ListNotesByCourse(ctx, courseID, repository.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}
	return notes, nil
}

// Get resolves a note through its course. The note's own CourseID must
// match the course in the URL — a valid note ID under someone else's
// course (or the wrong course) is a NotFound, same as a missing one.
func (s *NoteService) Get(ctx context.Context, userID, courseID, noteID string) (*model.Note, error) {
	if _, err := resolveCourse(ctx, s.courses, courseID, userID); err != nil {
		return nil, err
	}

	note, err := s.notes.GetNoteByID(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if note.CourseID != courseID {
		return nil, apperror.NotFound("note", noteID)
	}
	return note, nil
}

func (s *NoteService) Update(ctx context.Context, userID, courseID, noteID string, f *form.Note) (*model.Note, error) {
	note, err := s.Get(ctx, userID, courseID, noteID)
	if err != nil {
		return nil, err
	}

	if fields := form.Validate(f); fields != nil {
		return nil, apperror.Invalid(fields)
	}

	note.Title = f.Title
	note.Content = f.Content

	if err := s.notes.UpdateNote(ctx, note); err != nil {
		s.logger.Error("failed to update note",
			slog.String("id", noteID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating note: %w", err)
	}

	s.logger.Info("note updated", slog.String("id", noteID))

	return note, nil
}

func (s *NoteService) Delete(ctx context.Context, userID, courseID, noteID string) error {
	if _, err := s.Get(ctx, userID, courseID, noteID); err != nil {
		return err
	}

	if err := s.notes.DeleteNote(ctx, noteID); err != nil {
		return fmt.Errorf("deleting note: %w", err)
	}

	s.logger.Info("note deleted", slog.String("id", noteID))
	return nil
}
