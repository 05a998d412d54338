package service

import (
	"context"
	"fmt"
	"log/slog"

	"assistor/internal/apperror"
	"assistor/internal/blob"
	"assistor/internal/form"
	"assistor/internal/model"
	"assistor/internal/repository"
)

// PreviewLimit is how many of each resource the dashboard and the
// course detail page show. The full lists live behind their own
// endpoints; the previews exist so the landing pages stay one screen.
const PreviewLimit = 4

// CourseService handles the course lifecycle plus the two composite
// read views (dashboard and course detail) that join in child
// resources.
type CourseService struct {
	courses     repository.CourseRepository
	notes       repository.NoteRepository
	files       repository.FileRepository
	links       repository.LinkRepository
	instructors repository.InstructorRepository
	reminders   repository.ReminderRepository
	blobs       *blob.Store
	logger      *slog.Logger
}

func NewCourseService(
	courses repository.CourseRepository,
	notes repository.NoteRepository,
	files repository.FileRepository,
	links repository.LinkRepository,
	instructors repository.InstructorRepository,
	reminders repository.ReminderRepository,
	blobs *blob.Store,
	logger *slog.Logger,
) *CourseService {
	return &CourseService{
		courses:     courses,
		notes:       notes,
		files:       files,
		links:       links,
		instructors: instructors,
		reminders:   reminders,
		blobs:       blobs,
		logger:      logger,
	}
}

// Dashboard is the landing-page view: a preview of the user's newest
// courses and soonest reminders.
type Dashboard struct {
	Courses   []model.Course   `json:"courses"`
	Reminders []model.Reminder `json:"reminders"`
}

// CourseDetail is the course-page view: the course itself, a preview of
// its notes and files, and all of its instructors and links.
type CourseDetail struct {
	Course      model.Course       `json:"course"`
	Notes       []model.Note       `json:"notes"`
	Files       []model.CourseFile `json:"files"`
	Instructors []model.Instructor `json:"instructors"`
	Links       []model.Link       `json:"links"`
}

func (s *CourseService) Create(ctx context.Context, userID string, f *form.Course) (*model.Course, error) {
	if fields := form.Validate(f); fields != nil {
		return nil, apperror.Invalid(fields)
	}

	course := &model.Course{
		UserID:         userID,
		Title:          f.Title,
		StartDate:      form.ParseDate(f.StartDate),
		CompletionDate: form.ParseDate(f.CompletionDate),
		Grade:          f.Grade,
		Provider:       f.Provider,
	}

	if err := s.courses.CreateCourse(ctx, course); err != nil {
		s.logger.Error("failed to create course",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating course: %w", err)
	}

	s.logger.Info("course created",
		slog.String("id", course.ID),
		slog.String("user_id", userID),
	)

	return course, nil
}

// List returns all of the user's courses, newest first.
func (s *CourseService) List(ctx context.Context, userID string) ([]model.Course, error) {
	courses, err := s.courses.ListCoursesByUser(ctx, userID, repository.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("listing courses: %w", err)
	}
	return courses, nil
}

func (s *CourseService) Get(ctx context.Context, userID, courseID string) (*model.Course, error) {
	return resolveCourse(ctx, s.courses, courseID, userID)
}

// Detail composes the course page: the course plus a preview of its
// notes and files and the full instructor and link lists. Instructors
// and links are small create-only sets, so they are never truncated.
func (s *CourseService) Detail(ctx context.Context, userID, courseID string) (*CourseDetail, error) {
	course, err := resolveCourse(ctx, s.courses, courseID, userID)
	if err != nil {
		return nil, err
	}

	notes, err := s.notes.ListNotesByCourse(ctx, courseID, repository.ListOptions{Limit: PreviewLimit})
	if err != nil {
		return nil, fmt.Errorf("loading course detail: %w", err)
	}
	files, err := s.files.ListFilesByCourse(ctx, courseID, repository.ListOptions{Limit: PreviewLimit})
	if err != nil {
		return nil, fmt.Errorf("loading course detail: %w", err)
	}
	instructors, err := s.instructors.ListInstructorsByCourse(ctx, courseID, repository.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("loading course detail: %w", err)
	}
	links, err := s.links.ListLinksByCourse(ctx, courseID, repository.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("loading course detail: %w", err)
	}

	return &CourseDetail{
		Course:      *course,
		Notes:       notes,
		Files:       files,
		Instructors: instructors,
		Links:       links,
	}, nil
}

func (s *CourseService) Update(ctx context.Context, userID, courseID string, f *form.Course) (*model.Course, error) {
	course, err := resolveCourse(ctx, s.courses, courseID, userID)
	if err != nil {
		return nil, err
	}

	if fields := form.Validate(f); fields != nil {
		return nil, apperror.Invalid(fields)
	}

	course.Title = f.Title
	course.StartDate = form.ParseDate(f.StartDate)
	course.CompletionDate = form.ParseDate(f.CompletionDate)
	course.Grade = f.Grade
	course.Provider = f.Provider

	if err := s.courses.UpdateCourse(ctx, course); err != nil {
		s.logger.Error("failed to update course",
			slog.String("id", courseID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating course: %w", err)
	}

	s.logger.Info("course updated", slog.String("id", courseID))

	return course, nil
}

// Delete removes a course and everything under it. The database cascade
// takes the notes, files, links and instructors in the same transaction
// as the course row; the uploaded blobs are removed afterwards, since
// the filesystem can't join the transaction. A blob that fails to
// delete is logged and left behind — an orphan file on disk is
// recoverable, a dangling database row is not.
func (s *CourseService) Delete(ctx context.Context, userID, courseID string) error {
	if _, err := resolveCourse(ctx, s.courses, courseID, userID); err != nil {
		return err
	}

	files, err := s.files.ListFilesByCourse(ctx, courseID, repository.ListOptions{})
	if err != nil {
		return fmt.Errorf("deleting course: %w", err)
	}

	if err := s.courses.DeleteCourse(ctx, courseID); err != nil {
		return fmt.Errorf("deleting course: %w", err)
	}

	for _, f := range files {
		if err := s.blobs.Remove(f.BlobRef); err != nil {
			s.logger.Warn("failed to remove blob for deleted course",
				slog.String("course_id", courseID),
				slog.String("file_id", f.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	s.logger.Info("course deleted",
		slog.String("id", courseID),
		slog.Int("files_removed", len(files)),
	)

	return nil
}

// DashboardFor assembles the landing-page preview: the user's
// PreviewLimit newest courses and PreviewLimit soonest reminders.
func (s *CourseService) DashboardFor(ctx context.Context, userID string) (*Dashboard, error) {
	courses, err := s.courses.ListCoursesByUser(ctx, userID, repository.ListOptions{Limit: PreviewLimit})
	if err != nil {
		return nil, fmt.Errorf("loading dashboard: %w", err)
	}
	reminders, err := s.reminders.ListRemindersByUser(ctx, userID, repository.ListOptions{Limit: PreviewLimit})
	if err != nil {
		return nil, fmt.Errorf("loading dashboard: %w", err)
	}

	return &Dashboard{Courses: courses, Reminders: reminders}, nil
}
