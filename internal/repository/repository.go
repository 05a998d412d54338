// Package repository declares the storage interfaces consumed by the
// service layer. Services depend on these interfaces, never on the
// sqlite package directly — tests swap in hand-written mocks, and the
// storage engine could change without touching business logic.
//
// Method names carry the entity (CreateCourse, not Create) because a
// single storage type implements ALL of these interfaces — Go does not
// allow a type to have two Create methods with different signatures.
package repository

import (
	"context"

	"assistor/internal/model"
)

// ListOptions bounds a list query. Limit 0 means unbounded.
//
// The dashboard's 4-row preview and the full list pages run the SAME
// query through this knob — the preview window is a parameter, not a
// second hardcoded query.
type ListOptions struct {
	Limit int
}

type UserRepository interface {
	// CreateUser inserts a user. Unique violations on username or
	// email come back as field errors (apperror.Duplicate), not faults.
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	// DeleteUser removes the user and cascades to all owned courses,
	// their children, and the user's reminders in one transaction.
	DeleteUser(ctx context.Context, id string) error
}

type CourseRepository interface {
	CreateCourse(ctx context.Context, course *model.Course) error
	GetCourseByID(ctx context.Context, id string) (*model.Course, error)
	ListCoursesByUser(ctx context.Context, userID string, opts ListOptions) ([]model.Course, error)
	UpdateCourse(ctx context.Context, course *model.Course) error
	// DeleteCourse removes the course and cascades to its notes,
	// files, links, and instructors in one transaction.
	DeleteCourse(ctx context.Context, id string) error
}

type NoteRepository interface {
	CreateNote(ctx context.Context, note *model.Note) error
	GetNoteByID(ctx context.Context, id string) (*model.Note, error)
	ListNotesByCourse(ctx context.Context, courseID string, opts ListOptions) ([]model.Note, error)
	UpdateNote(ctx context.Context, note *model.Note) error
	DeleteNote(ctx context.Context, id string) error
}

type FileRepository interface {
	CreateFile(ctx context.Context, file *model.CourseFile) error
	GetFileByID(ctx context.Context, id string) (*model.CourseFile, error)
	ListFilesByCourse(ctx context.Context, courseID string, opts ListOptions) ([]model.CourseFile, error)
	UpdateFile(ctx context.Context, file *model.CourseFile) error
	DeleteFile(ctx context.Context, id string) error
}

type LinkRepository interface {
	CreateLink(ctx context.Context, link *model.Link) error
	GetLinkByID(ctx context.Context, id string) (*model.Link, error)
	ListLinksByCourse(ctx context.Context, courseID string, opts ListOptions) ([]model.Link, error)
	DeleteLink(ctx context.Context, id string) error
}

type InstructorRepository interface {
	// CreateInstructor inserts an instructor. A duplicate non-empty
	// email comes back as a field error.
	CreateInstructor(ctx context.Context, instructor *model.Instructor) error
	GetInstructorByID(ctx context.Context, id string) (*model.Instructor, error)
	ListInstructorsByCourse(ctx context.Context, courseID string, opts ListOptions) ([]model.Instructor, error)
	DeleteInstructor(ctx context.Context, id string) error
}

type ReminderRepository interface {
	CreateReminder(ctx context.Context, reminder *model.Reminder) error
	GetReminderByID(ctx context.Context, id string) (*model.Reminder, error)
	ListRemindersByUser(ctx context.Context, userID string, opts ListOptions) ([]model.Reminder, error)
	UpdateReminder(ctx context.Context, reminder *model.Reminder) error
	DeleteReminder(ctx context.Context, id string) error
}
