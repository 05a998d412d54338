package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"assistor/internal/apperror"
	"assistor/internal/model"
	"assistor/internal/repository"
)

// mockStore is a hand-written in-memory implementation of every
// repository interface — the same shape as sqlite.DB, minus the SQL.
// Slices (not maps) keep insertion order, so "first N" preview tests
// are deterministic.
//
// Compile-time checks that the mock keeps up with the interfaces:
var (
	_ repository.UserRepository       = (*mockStore)(nil)
	_ repository.CourseRepository     = (*mockStore)(nil)
	_ repository.NoteRepository       = (*mockStore)(nil)
	_ repository.FileRepository       = (*mockStore)(nil)
	_ repository.LinkRepository       = (*mockStore)(nil)
	_ repository.InstructorRepository = (*mockStore)(nil)
	_ repository.ReminderRepository   = (*mockStore)(nil)
)

type mockStore struct {
	users       []*model.User
	courses     []*model.Course
	notes       []*model.Note
	files       []*model.CourseFile
	links       []*model.Link
	instructors []*model.Instructor
	reminders   []*model.Reminder

	nextID int

	// Error injection for failure-path tests.
	createFileErr error
}

func newMockStore() *mockStore {
	return &mockStore{}
}

func (m *mockStore) id(prefix string) string {
	m.nextID++
	return fmt.Sprintf("%s-%d", prefix, m.nextID)
}

// limited applies the ListOptions contract: limit 0 means unbounded.
func limited[T any](items []T, opts repository.ListOptions) []T {
	if opts.Limit > 0 && opts.Limit < len(items) {
		items = items[:opts.Limit]
	}
	out := make([]T, len(items))
	copy(out, items)
	return out
}

// --- users ---

func (m *mockStore) CreateUser(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Username == user.Username {
			return apperror.Duplicate("user", "username")
		}
		if u.Email == user.Email {
			return apperror.Duplicate("user", "email")
		}
	}
	user.ID = m.id("user")
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	m.users = append(m.users, &stored)
	return nil
}

func (m *mockStore) GetUserByID(_ context.Context, id string) (*model.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			result := *u
			return &result, nil
		}
	}
	return nil, apperror.NotFound("user", id)
}

func (m *mockStore) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			result := *u
			return &result, nil
		}
	}
	return nil, apperror.NotFound("user", username)
}

func (m *mockStore) DeleteUser(_ context.Context, id string) error {
	for i, u := range m.users {
		if u.ID == id {
			m.users = append(m.users[:i], m.users[i+1:]...)
			return nil
		}
	}
	return apperror.NotFound("user", id)
}

// --- courses ---

func (m *mockStore) CreateCourse(_ context.Context, course *model.Course) error {
	course.ID = m.id("course")
	course.CreatedAt = time.Now()
	course.UpdatedAt = course.CreatedAt
	stored := *course
	m.courses = append(m.courses, &stored)
	return nil
}

func (m *mockStore) GetCourseByID(_ context.Context, id string) (*model.Course, error) {
	for _, c := range m.courses {
		if c.ID == id {
			result := *c
			return &result, nil
		}
	}
	return nil, apperror.NotFound("course", id)
}

func (m *mockStore) ListCoursesByUser(_ context.Context, userID string, opts repository.ListOptions) ([]model.Course, error) {
	var out []model.Course
	for _, c := range m.courses {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return limited(out, opts), nil
}

func (m *mockStore) UpdateCourse(_ context.Context, course *model.Course) error {
	for i, c := range m.courses {
		if c.ID == course.ID {
			stored := *course
			m.courses[i] = &stored
			return nil
		}
	}
	return apperror.NotFound("course", course.ID)
}

func (m *mockStore) DeleteCourse(_ context.Context, id string) error {
	for i, c := range m.courses {
		if c.ID == id {
			m.courses = append(m.courses[:i], m.courses[i+1:]...)
			// Cascade, same as the schema does.
			m.notes = filter(m.notes, func(n *model.Note) bool { return n.CourseID != id })
			m.files = filter(m.files, func(f *model.CourseFile) bool { return f.CourseID != id })
			m.links = filter(m.links, func(l *model.Link) bool { return l.CourseID != id })
			m.instructors = filter(m.instructors, func(in *model.Instructor) bool { return in.CourseID != id })
			return nil
		}
	}
	return apperror.NotFound("course", id)
}

func filter[T any](items []*T, keep func(*T) bool) []*T {
	out := items[:0]
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// --- notes ---

func (m *mockStore) CreateNote(_ context.Context, note *model.Note) error {
	note.ID = m.id("note")
	note.CreatedAt = time.Now()
	note.UpdatedAt = note.CreatedAt
	stored := *note
	m.notes = append(m.notes, &stored)
	return nil
}

func (m *mockStore) GetNoteByID(_ context.Context, id string) (*model.Note, error) {
	for _, n := range m.notes {
		if n.ID == id {
			result := *n
			return &result, nil
		}
	}
	return nil, apperror.NotFound("note", id)
}

func (m *mockStore) ListNotesByCourse(_ context.Context, courseID string, opts repository.ListOptions) ([]model.Note, error) {
	var out []model.Note
	for _, n := range m.notes {
		if n.CourseID == courseID {
			out = append(out, *n)
		}
	}
	return limited(out, opts), nil
}

func (m *mockStore) UpdateNote(_ context.Context, note *model.Note) error {
	for i, n := range m.notes {
		if n.ID == note.ID {
			stored := *note
			m.notes[i] = &stored
			return nil
		}
	}
	return apperror.NotFound("note", note.ID)
}

func (m *mockStore) DeleteNote(_ context.Context, id string) error {
	for i, n := range m.notes {
		if n.ID == id {
			m.notes = append(m.notes[:i], m.notes[i+1:]...)
			return nil
		}
	}
	return apperror.NotFound("note", id)
}

// --- files ---

func (m *mockStore) CreateFile(_ context.Context, file *model.CourseFile) error {
	if m.createFileErr != nil {
		return m.createFileErr
	}
	file.ID = m.id("file")
	file.CreatedAt = time.Now()
	stored := *file
	m.files = append(m.files, &stored)
	return nil
}

func (m *mockStore) GetFileByID(_ context.Context, id string) (*model.CourseFile, error) {
	for _, f := range m.files {
		if f.ID == id {
			result := *f
			return &result, nil
		}
	}
	return nil, apperror.NotFound("file", id)
}

func (m *mockStore) ListFilesByCourse(_ context.Context, courseID string, opts repository.ListOptions) ([]model.CourseFile, error) {
	var out []model.CourseFile
	for _, f := range m.files {
		if f.CourseID == courseID {
			out = append(out, *f)
		}
	}
	return limited(out, opts), nil
}

func (m *mockStore) UpdateFile(_ context.Context, file *model.CourseFile) error {
	for i, f := range m.files {
		if f.ID == file.ID {
			stored := *file
			m.files[i] = &stored
			return nil
		}
	}
	return apperror.NotFound("file", file.ID)
}

func (m *mockStore) DeleteFile(_ context.Context, id string) error {
	for i, f := range m.files {
		if f.ID == id {
			m.files = append(m.files[:i], m.files[i+1:]...)
			return nil
		}
	}
	return apperror.NotFound("file", id)
}

// --- links ---

func (m *mockStore) CreateLink(_ context.Context, link *model.Link) error {
	link.ID = m.id("link")
	link.CreatedAt = time.Now()
	stored := *link
	m.links = append(m.links, &stored)
	return nil
}

func (m *mockStore) GetLinkByID(_ context.Context, id string) (*model.Link, error) {
	for _, l := range m.links {
		if l.ID == id {
			result := *l
			return &result, nil
		}
	}
	return nil, apperror.NotFound("link", id)
}

func (m *mockStore) ListLinksByCourse(_ context.Context, courseID string, opts repository.ListOptions) ([]model.Link, error) {
	var out []model.Link
	for _, l := range m.links {
		if l.CourseID == courseID {
			out = append(out, *l)
		}
	}
	return limited(out, opts), nil
}

func (m *mockStore) DeleteLink(_ context.Context, id string) error {
	for i, l := range m.links {
		if l.ID == id {
			m.links = append(m.links[:i], m.links[i+1:]...)
			return nil
		}
	}
	return apperror.NotFound("link", id)
}

// --- instructors ---

func (m *mockStore) CreateInstructor(_ context.Context, instructor *model.Instructor) error {
	if instructor.Email != "" {
		for _, in := range m.instructors {
			if in.Email == instructor.Email {
				return apperror.Duplicate("instructor", "email")
			}
		}
	}
	instructor.ID = m.id("instructor")
	instructor.CreatedAt = time.Now()
	stored := *instructor
	m.instructors = append(m.instructors, &stored)
	return nil
}

func (m *mockStore) GetInstructorByID(_ context.Context, id string) (*model.Instructor, error) {
	for _, in := range m.instructors {
		if in.ID == id {
			result := *in
			return &result, nil
		}
	}
	return nil, apperror.NotFound("instructor", id)
}

func (m *mockStore) ListInstructorsByCourse(_ context.Context, courseID string, opts repository.ListOptions) ([]model.Instructor, error) {
	var out []model.Instructor
	for _, in := range m.instructors {
		if in.CourseID == courseID {
			out = append(out, *in)
		}
	}
	return limited(out, opts), nil
}

func (m *mockStore) DeleteInstructor(_ context.Context, id string) error {
	for i, in := range m.instructors {
		if in.ID == id {
			m.instructors = append(m.instructors[:i], m.instructors[i+1:]...)
			return nil
		}
	}
	return apperror.NotFound("instructor", id)
}

// --- reminders ---

func (m *mockStore) CreateReminder(_ context.Context, reminder *model.Reminder) error {
	reminder.ID = m.id("reminder")
	reminder.CreatedAt = time.Now()
	reminder.UpdatedAt = reminder.CreatedAt
	stored := *reminder
	m.reminders = append(m.reminders, &stored)
	return nil
}

func (m *mockStore) GetReminderByID(_ context.Context, id string) (*model.Reminder, error) {
	for _, r := range m.reminders {
		if r.ID == id {
			result := *r
			return &result, nil
		}
	}
	return nil, apperror.NotFound("reminder", id)
}

func (m *mockStore) ListRemindersByUser(_ context.Context, userID string, opts repository.ListOptions) ([]model.Reminder, error) {
	var out []model.Reminder
	for _, r := range m.reminders {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	return limited(out, opts), nil
}

func (m *mockStore) UpdateReminder(_ context.Context, reminder *model.Reminder) error {
	for i, r := range m.reminders {
		if r.ID == reminder.ID {
			stored := *reminder
			stored.CreatedAt = r.CreatedAt
			m.reminders[i] = &stored
			return nil
		}
	}
	return apperror.NotFound("reminder", reminder.ID)
}

func (m *mockStore) DeleteReminder(_ context.Context, id string) error {
	for i, r := range m.reminders {
		if r.ID == id {
			m.reminders = append(m.reminders[:i], m.reminders[i+1:]...)
			return nil
		}
	}
	return apperror.NotFound("reminder", id)
}

// --- shared test helpers ---

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func seedCourse(t *testing.T, store *mockStore, userID, title string) *model.Course {
	t.Helper()
	course := &model.Course{UserID: userID, Title: title}
	if err := store.CreateCourse(context.Background(), course); err != nil {
		t.Fatalf("seeding course: %v", err)
	}
	return course
}
