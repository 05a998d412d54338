package service

import (
	"context"
	"errors"
	"testing"

	"assistor/internal/apperror"
	"assistor/internal/form"
)

func newTestInstructorService(t *testing.T) (*InstructorService, *mockStore) {
	t.Helper()
	store := newMockStore()
	return NewInstructorService(store, store, testLogger()), store
}

func TestInstructorCreate_DuplicateEmail(t *testing.T) {
	svc, store := newTestInstructorService(t)
	course := seedCourse(t, store, "user-1", "course")
	ctx := context.Background()

	f := &form.Instructor{Title: "Prof.", FirstName: "Grace", Email: "grace@example.com"}
	if _, err := svc.Create(ctx, "user-1", course.ID, f); err != nil {
		t.Fatalf("first Create() error = %v", err)
	}

	_, err := svc.Create(ctx, "user-1", course.ID,
		&form.Instructor{Title: "Dr.", FirstName: "Other", Email: "grace@example.com"})

	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Field != "email" {
		t.Fatalf("Create() error = %v, want duplicate on email field", err)
	}
	if len(store.instructors) != 1 {
		t.Errorf("store holds %d instructors, want 1", len(store.instructors))
	}
}

func TestInstructorCreate_BadTitle(t *testing.T) {
	svc, store := newTestInstructorService(t)
	course := seedCourse(t, store, "user-1", "course")

	_, err := svc.Create(context.Background(), "user-1", course.ID,
		&form.Instructor{Title: "Captain", FirstName: "Grace"})

	var verr *apperror.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Create() error = %v, want *ValidationError", err)
	}
	if _, ok := verr.Fields["title"]; !ok {
		t.Errorf("field errors = %v, want an entry for title", verr.Fields)
	}
	if len(store.instructors) != 0 {
		t.Errorf("store holds %d instructors after rejected create, want 0", len(store.instructors))
	}
}

func TestInstructorDelete_ForeignUserMasked(t *testing.T) {
	svc, store := newTestInstructorService(t)
	course := seedCourse(t, store, "owner", "course")
	ctx := context.Background()

	created, err := svc.Create(ctx, "owner", course.ID,
		&form.Instructor{Title: "Dr.", FirstName: "Grace"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := svc.Delete(ctx, "intruder", course.ID, created.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Delete() as non-owner: error = %v, want ErrNotFound", err)
	}
	if len(store.instructors) != 1 {
		t.Error("instructor was deleted by a non-owner")
	}
}
