package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"assistor/internal/apperror"
	"assistor/internal/form"
	"assistor/internal/model"
	"assistor/internal/repository"
)

// InstructorService handles the instructors recorded against a course.
// Like links, instructors are create-and-delete only.
type InstructorService struct {
	courses     repository.CourseRepository
	instructors repository.InstructorRepository
	logger      *slog.Logger
}

func NewInstructorService(courses repository.CourseRepository, instructors repository.InstructorRepository, logger *slog.Logger) *InstructorService {
	return &InstructorService{courses: courses, instructors: instructors, logger: logger}
}

func (s *InstructorService) Create(ctx context.Context, userID, courseID string, f *form.Instructor) (*model.Instructor, error) {
	if _, err := resolveCourse(ctx, s.courses, courseID, userID); err != nil {
		return nil, err
	}

	if fields := form.Validate(f); fields != nil {
		return nil, apperror.Invalid(fields)
	}

	instructor := &model.Instructor{
		CourseID:  courseID,
		Title:     model.InstructorTitle(f.Title),
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
	}

	if err := s.instructors.CreateInstructor(ctx, instructor); err != nil {
		// A duplicate email is a field error; pass it through untouched.
		if errors.Is(err, apperror.ErrValidation) {
			return nil, err
		}
		s.logger.Error("failed to create instructor",
			slog.String("course_id", courseID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating instructor: %w", err)
	}

	s.logger.Info("instructor created",
		slog.String("id", instructor.ID),
		slog.String("course_id", courseID),
	)

	return instructor, nil
}

func (s *InstructorService) List(ctx context.Context, userID, courseID string) ([]model.Instructor, error) {
	if _, err := resolveCourse(ctx, s.courses, courseID, userID); err != nil {
		return nil, err
	}

	instructors, err := s.instructors.ListInstructorsByCourse(ctx, courseID, repository.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("listing instructors: %w", err)
	}
	return instructors, nil
}

func (s *InstructorService) Get(ctx context.Context, userID, courseID, instructorID string) (*model.Instructor, error) {
	if _, err := resolveCourse(ctx, s.courses, courseID, userID); err != nil {
		return nil, err
	}

	instructor, err := s.instructors.GetInstructorByID(ctx, instructorID)
	if err != nil {
		return nil, err
	}
	if instructor.CourseID != courseID {
		return nil, apperror.NotFound("instructor", instructorID)
	}
	return instructor, nil
}

func (s *InstructorService) Delete(ctx context.Context, userID, courseID, instructorID string) error {
	if _, err := s.Get(ctx, userID, courseID, instructorID); err != nil {
		return err
	}

	if err := s.instructors.DeleteInstructor(ctx, instructorID); err != nil {
		return fmt.Errorf("deleting instructor: %w", err)
	}

	s.logger.Info("instructor deleted", slog.String("id", instructorID))
	return nil
}
